// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChainSafe/chain-overrides/chain/peerplays"
	cfg "github.com/ChainSafe/chain-overrides/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against an empty configuration file,
// so the configuration file of the user is never read.
func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, nil, 0600))

	rootCmd, err := NewRootCommand()
	require.NoError(t, err)

	out := bytes.NewBuffer(nil)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--" + ConfigFlag, configPath}, args...))

	err = rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestValidateCommand(t *testing.T) {
	good := writeFile(t, "peerplays.json", peerplays.Definition())
	bad := writeFile(t, "bad.json", []byte(`{"types": [{"minmax": [0, null], "types": {"A": "Missing"}}]}`))

	out, err := execute(t, context.Background(), "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok, 6 namespaces, 1 version scopes\n", out)

	out, err = execute(t, context.Background(), "validate", good, bad)
	require.ErrorIs(t, err, errInvalidDefinitions)
	assert.EqualError(t, err, "invalid chain definitions: 1 of 2")
	assert.Contains(t, out, good+": ok")
	assert.Contains(t, out, bad+": ")
	assert.Contains(t, out, "unresolved type")

	_, err = execute(t, context.Background(), "validate", filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMethodsCommand(t *testing.T) {
	out, err := execute(t, context.Background(), "methods", "fractionalNft")
	require.NoError(t, err)
	assert.Contains(t, out,
		"fractionalNft_owner(collection_id: CollectionId, item_id: ItemId): Option<AccountId>\n")
	assert.NotContains(t, out, "referral_")

	out, err = execute(t, context.Background(), "methods")
	require.NoError(t, err)
	assert.Contains(t, out, "referral_activeReferralsCount(account: AccountId): u32\n")
	assert.True(t, strings.HasPrefix(out, "techcommitteemanager_"))

	_, err = execute(t, context.Background(), "methods", "--chain", "unknown")
	assert.EqualError(t, err, "chain not found: unknown")
}

func TestMethodsCommand_builtinDisabled(t *testing.T) {
	_, err := execute(t, context.Background(), "--builtin=false", "methods")
	assert.EqualError(t, err, "chain not found: peerplays")
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, context.Background(), "resolve", "BTreeSet<CollectionId>")
	require.NoError(t, err)
	assert.Contains(t, out, "set")
	assert.Contains(t, out, "CollectionId u32")

	out, err = execute(t, context.Background(), "resolve", "--json", "Option<TreeNode<AccountId>>")
	require.NoError(t, err)

	var resolved map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &resolved))
	assert.Equal(t, "option", resolved["kind"])
	assert.Contains(t, resolved, "elem")

	_, err = execute(t, context.Background(), "resolve", "NoSuchType")
	assert.ErrorContains(t, err, "unresolved type")
}

func TestFingerprintCommand(t *testing.T) {
	first, err := execute(t, context.Background(), "fingerprint", "--spec-version", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "0x"))

	second, err := execute(t, context.Background(), "fingerprint", "--spec-version", "1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := execute(t, context.Background(), "fingerprint", "--spec-version", "2")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestConfiguredChain(t *testing.T) {
	document := writeFile(t, "custom.json", []byte(`{
		"rpc": {"custom": {"ping": {"params": [], "type": "Pong"}}},
		"types": [{"minmax": [0, null], "types": {"Pong": "u16"}}]}`))

	configPath := writeFile(t, "config.toml", []byte(`
[registry]
builtin = false

[[registry.chains]]
name = "custom"
path = "`+filepath.Base(document)+`"
`))

	rootCmd, err := NewRootCommand()
	require.NoError(t, err)
	out := bytes.NewBuffer(nil)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", configPath, "--base-path", filepath.Dir(document),
		"methods", "--chain", "custom"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "custom_ping(): Pong\n", out.String())
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, context.Background(), "--cache-size", "42", "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	written, err := cfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), written.Registry.CacheSize)
	assert.Equal(t, cfg.DefaultRPCPort, written.RPC.Port)

	_, err = execute(t, context.Background(), "config", "init", path)
	require.ErrorIs(t, err, errConfigExists)

	_, err = execute(t, context.Background(), "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestConfigInitCommand_env(t *testing.T) {
	t.Setenv("OVERRIDES_RPC_PORT", "9944")
	t.Setenv("OVERRIDES_LOG_FORMAT", "")
	t.Setenv("OVERRIDESLOG_FORMAT", "json")
	InitEnv("OVERRIDES")

	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := execute(t, context.Background(), "config", "init", path)
	require.NoError(t, err)

	written, err := cfg.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(9944), written.RPC.Port)
	assert.Equal(t, "json", written.Log.Format)
}

func TestParseConfig_invalid(t *testing.T) {
	previous := config

	_, err := execute(t, context.Background(), "--log", "loud", "methods")
	assert.ErrorContains(t, err, "invalid configuration")
	require.NotNil(t, config)
	assert.Same(t, previous, config)

	_, err = execute(t, context.Background(), "methods", "fractionalNft")
	require.NoError(t, err)
}

func TestServeCommand(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execute(t, ctx, "serve", "--rpc=false")
	require.NoError(t, err)
}
