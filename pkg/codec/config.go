package codec

import (
	"encoding/base64"
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

type Config struct {
	EncryptionKey string `env:"TFA_ENCRYPTION_KEY,required"` // Base64-encoded 32-byte master key for the default profile
}

// LoadConfig loads the codec configuration from the environment.
// The result is cached for the lifetime of the process.
func LoadConfig() (Config, error) {
	configLoadFunc := func() (Config, error) {
		var cfg Config
		if err := env.Parse(&cfg); err != nil {
			return Config{}, err
		}
		if cfg.EncryptionKey == "" {
			return Config{}, ErrEncryptionKeyNotSet
		}
		return cfg, nil
	}

	var err error
	once.Do(func() {
		cfg, err = configLoadFunc()
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewResolverFromConfig builds a StaticResolver exposing the configured
// master key under the default profile name.
func NewResolverFromConfig(cfg Config) (StaticResolver, error) {
	if cfg.EncryptionKey == "" {
		return nil, ErrEncryptionKeyNotSet
	}

	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidKeyLength, err)
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	return StaticResolver{DefaultProfile: key}, nil
}
