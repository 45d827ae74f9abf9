package tfa

import (
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

// Config carries the per-deployment tuning for the validation methods.
type Config struct {
	// CodeValidityPeriod bounds how long an emailed code stays valid.
	// Must be whole minutes between 1 and 5, matching the admin options.
	CodeValidityPeriod time.Duration `env:"TFA_CODE_VALIDITY_PERIOD" envDefault:"5m"`
	CodeLength         int           `env:"TFA_CODE_LENGTH" envDefault:"9"`
	RecoveryBatchSize  int           `env:"TFA_RECOVERY_BATCH_SIZE" envDefault:"10"`
	RecoveryCodeLength int           `env:"TFA_RECOVERY_CODE_LENGTH" envDefault:"9"`
	TOTPIssuer         string        `env:"TFA_TOTP_ISSUER" envDefault:"tfakit"`
}

// Validate checks the configured values stay inside the supported ranges.
func (c Config) Validate() error {
	if c.CodeValidityPeriod < time.Minute || c.CodeValidityPeriod > 5*time.Minute {
		return ErrInvalidValidityPeriod
	}
	if c.CodeValidityPeriod%time.Minute != 0 {
		return ErrInvalidValidityPeriod
	}
	return nil
}

// LoadConfig loads the configuration from the environment.
// The result is cached for the lifetime of the process.
func LoadConfig() (Config, error) {
	configLoadFunc := func() (Config, error) {
		var cfg Config
		if err := env.Parse(&cfg); err != nil {
			return Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, err
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
