// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// HashLength is the length in bytes of a Hash.
const HashLength = 32

var (
	ErrNoPrefix          = errors.New("could not byteify non 0x prefixed string")
	ErrInvalidHashLength = errors.New("invalid hash length")
)

// Hash is a blake2b-256 digest, used to fingerprint chain definitions.
type Hash [HashLength]byte

// EmptyHash is the zero hash.
var EmptyHash = Hash{}

// IsEmpty returns true if the hash is the zero hash.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// String returns the 0x prefixed hex string of the hash.
func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// MarshalJSON encodes the hash as a 0x prefixed hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a 0x prefixed hex string.
func (h *Hash) UnmarshalJSON(data []byte) (err error) {
	var s string
	if err = json.Unmarshal(data, &s); err != nil {
		return err
	}
	*h, err = HexToHash(s)
	return err
}

// HexToHash turns a 0x prefixed hex string of 32 bytes into a Hash.
func HexToHash(in string) (h Hash, err error) {
	if !strings.HasPrefix(in, "0x") {
		return h, fmt.Errorf("%w: %q", ErrNoPrefix, in)
	}

	decoded, err := hex.DecodeString(in[2:])
	if err != nil {
		return h, err
	}
	if len(decoded) != HashLength {
		return h, fmt.Errorf("%w: %d bytes", ErrInvalidHashLength, len(decoded))
	}
	copy(h[:], decoded)
	return h, nil
}
