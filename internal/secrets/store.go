package secrets

import (
	"errors"
	"fmt"
	"sync"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/internal/config"
	"github.com/openchain-labs/openchain-ir/internal/metrics"
)

const (
	keyData  = "data"
	keyValue = "value"

	pathEtherscanKey = "etherscan_api_key"
	pathGeminiKey    = "gemini_api_key"
	pathOpenAIKey    = "openai_api_key"
)

var (
	ErrUnableToCastData = errors.New("failed to cast data")
	ErrSecretNotFound   = errors.New("secret not found")
)

type vaultReader interface {
	Read(path string) (*vaultapi.Secret, error)
}

// Store reads API credentials from Vault. Values are cached after the
// first read.
type Store struct {
	cli      vaultReader
	basePath string

	cache map[string]string
	mux   sync.Mutex
}

func NewStore(cli vaultReader, basePath string) *Store {
	return &Store{
		cli:      cli,
		basePath: basePath,
		cache:    make(map[string]string),
	}
}

func (s *Store) getPath(name string) string {
	return fmt.Sprintf("%s%s", s.basePath, name)
}

// Get reads one named secret, consulting the cache first.
func (s *Store) Get(name string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if value, ok := s.cache[name]; ok {
		return value, nil
	}

	sec, err := s.cli.Read(s.getPath(name))
	if err != nil {
		return "", err
	}

	if sec == nil {
		return "", ErrSecretNotFound
	}

	data, ok := sec.Data[keyData].(map[string]interface{})
	if !ok {
		return "", ErrUnableToCastData
	}

	value, ok := data[keyValue].(string)
	if !ok {
		return "", ErrUnableToCastData
	}

	s.cache[name] = value

	return value, nil
}

// FillAPIKeys resolves any API keys missing from the environment. A key
// absent from Vault too is left empty and logged, not treated as fatal.
func (s *Store) FillAPIKeys(cfg *config.App) {
	fill := func(target *string, name string) {
		defer func() {
			state := 0.0
			if *target != "" {
				state = 1
			}
			metrics.CollectKeyState("api_key", name, state)
		}()

		if *target != "" {
			return
		}

		value, err := s.Get(name)
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("vault secret lookup failed")

			return
		}

		*target = value
	}

	fill(&cfg.Etherscan.APIKey, pathEtherscanKey)
	fill(&cfg.AI.GeminiAPIKey, pathGeminiKey)
	fill(&cfg.AI.OpenAIAPIKey, pathOpenAIKey)
}
