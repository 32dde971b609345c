// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import "fmt"

// CatalogEntry is a named type definition.
type CatalogEntry struct {
	Name       string
	Definition TypeDefinition
}

// Catalog maps type names to definitions, keeping declaration order.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

// NewCatalog creates a catalog from the given entries.
// Entry names must be non-empty and unique.
func NewCatalog(entries ...CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, schemaError(ErrMissingName, "", "catalog entry has no type name")
		}
		if previous, ok := c.index[entry.Name]; ok {
			return nil, schemaError(ErrDuplicateType, entry.Name,
				fmt.Sprintf("already declared as entry %d", previous))
		}
		c.index[entry.Name] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return c, nil
}

// Lookup returns the definition of a type name.
func (c *Catalog) Lookup(name string) (def TypeDefinition, ok bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].Definition, true
}

// Entries returns the catalog entries in declaration order.
func (c *Catalog) Entries() []CatalogEntry {
	entries := make([]CatalogEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }
