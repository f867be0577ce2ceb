package registers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vikey/internal/config"
)

func openTestBank(t *testing.T) *Bank {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registers.db")
	bank, err := OpenBank(config.RegistersConfig{DBPath: path, CacheTTLSeconds: 60})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bank.Close() })
	return bank
}

func TestBankSetThenGetRoundTrips(t *testing.T) {
	bank := openTestBank(t)

	require.NoError(t, bank.Set('a', "hello world", false))

	text, linewise, ok, err := bank.Get('a')
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, linewise)
	require.Equal(t, "hello world", text)
}

func TestBankGetMissingRegisterReturnsNotOK(t *testing.T) {
	bank := openTestBank(t)

	_, _, ok, err := bank.Get('z')
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBankSetOverwritesPreviousContent(t *testing.T) {
	bank := openTestBank(t)

	require.NoError(t, bank.Set(DefaultRegister, "first", false))
	require.NoError(t, bank.Set(DefaultRegister, "second", true))

	text, linewise, ok, err := bank.Get(DefaultRegister)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, linewise)
	require.Equal(t, "second", text)
}

func TestBankGetServesFromCacheWithoutTouchingStoreAgain(t *testing.T) {
	bank := openTestBank(t)
	require.NoError(t, bank.Set('b', "cached", false))

	// Close the underlying store connection; a cache hit must not need it.
	require.NoError(t, bank.store.Close())

	text, _, ok, err := bank.Get('b')
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "cached", text)
}

func TestBankPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registers.db")

	bank1, err := OpenBank(config.RegistersConfig{DBPath: path, CacheTTLSeconds: 60})
	require.NoError(t, err)
	require.NoError(t, bank1.Set('q', "durable", false))
	require.NoError(t, bank1.Close())

	bank2, err := OpenBank(config.RegistersConfig{DBPath: path, CacheTTLSeconds: 60})
	require.NoError(t, err)
	defer bank2.Close()

	text, _, ok, err := bank2.Get('q')
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "durable", text)
}
