package secrets

import (
	"testing"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/internal/config"
)

type fakeVault struct {
	secrets map[string]string
	reads   int
}

func (f *fakeVault) Read(path string) (*vaultapi.Secret, error) {
	f.reads++

	value, ok := f.secrets[path]
	if !ok {
		return nil, nil
	}

	return &vaultapi.Secret{
		Data: map[string]interface{}{
			keyData: map[string]interface{}{
				keyValue: value,
			},
		},
	}, nil
}

func TestUnitStoreGet(t *testing.T) {
	vault := &fakeVault{secrets: map[string]string{
		"secret/openchain/etherscan_api_key": "ES-KEY",
	}}
	store := NewStore(vault, "secret/openchain/")

	t.Run("reads and caches", func(t *testing.T) {
		value, err := store.Get(pathEtherscanKey)
		require.NoError(t, err)
		assert.Equal(t, "ES-KEY", value)

		_, err = store.Get(pathEtherscanKey)
		require.NoError(t, err)
		assert.Equal(t, 1, vault.reads)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := store.Get("unknown")
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})
}

func TestUnitFillAPIKeys(t *testing.T) {
	vault := &fakeVault{secrets: map[string]string{
		"/" + pathEtherscanKey: "ES-KEY",
		"/" + pathGeminiKey:    "GM-KEY",
	}}
	store := NewStore(vault, "/")

	cfg := config.App{}
	cfg.AI.OpenAIAPIKey = "from-env"

	store.FillAPIKeys(&cfg)

	assert.Equal(t, "ES-KEY", cfg.Etherscan.APIKey)
	assert.Equal(t, "GM-KEY", cfg.AI.GeminiAPIKey)
	// Environment-provided keys win over Vault.
	assert.Equal(t, "from-env", cfg.AI.OpenAIAPIKey)
	assert.Equal(t, 2, vault.reads)
}

func TestUnitStoreBadShape(t *testing.T) {
	store := NewStore(badVault{}, "/")

	_, err := store.Get("anything")
	assert.ErrorIs(t, err, ErrUnableToCastData)
}

type badVault struct{}

func (badVault) Read(_ string) (*vaultapi.Secret, error) {
	return &vaultapi.Secret{Data: map[string]interface{}{keyData: "not-a-map"}}, nil
}
