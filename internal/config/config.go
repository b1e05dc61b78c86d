package config

import (
	"errors"
	"fmt"

	env "github.com/caarlos0/env/v11"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	Source           string `env:"SOURCE" envDefault:"csv"`
	AccountsFile     string `env:"ACCOUNTS_FILE" envDefault:"./data/account_balances.csv"`
	TransactionsFile string `env:"TRANSACTIONS_FILE" envDefault:"./data/transactions.csv"`
	OutputFile       string `env:"OUTPUT_FILE"`

	Shuffle     bool   `env:"SHUFFLE" envDefault:"false"`
	ShuffleSeed uint64 `env:"SHUFFLE_SEED" envDefault:"0"`
	StrictLoad  bool   `env:"STRICT_LOAD" envDefault:"false"`

	DatabaseURL        string `env:"DATABASE_URL"`
	DBMaxOpenConns     int    `env:"DB_MAX_OPEN_CONNS" envDefault:"5"`
	DBMaxIdleConns     int    `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	DBConnMaxLifetimeS int    `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int    `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

type GenerateConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	NumberOfAccounts          int    `env:"NUMBER_OF_ACCOUNTS" envDefault:"10"`
	MinTransactionsPerAccount int    `env:"MIN_TRANSACTIONS_PER_ACCOUNT" envDefault:"0"`
	MaxTransactionsPerAccount int    `env:"MAX_TRANSACTIONS_PER_ACCOUNT" envDefault:"3"`
	CorruptRows               bool   `env:"CORRUPT_ROWS" envDefault:"true"`
	Seed                      uint64 `env:"GENERATE_SEED" envDefault:"0"`
	AccountsFile              string `env:"ACCOUNTS_FILE" envDefault:"./data/generated_account_balances.csv"`
	TransactionsFile          string `env:"TRANSACTIONS_FILE" envDefault:"./data/generated_transactions.csv"`

	// When set, generated rows are also inserted into the import tables.
	DatabaseURL string `env:"DATABASE_URL"`
}

var ErrInvalidConfig = errors.New("invalid config")

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceCSV:
		if c.AccountsFile == "" || c.TransactionsFile == "" {
			return fmt.Errorf("ACCOUNTS_FILE and TRANSACTIONS_FILE are required for csv source: %w", ErrInvalidConfig)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres source: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown SOURCE %q: %w", c.Source, ErrInvalidConfig)
	}
	return nil
}

func LoadGenerate() (*GenerateConfig, error) {
	cfg, err := env.ParseAs[GenerateConfig]()
	if err != nil {
		return nil, fmt.Errorf("config.LoadGenerate: %w", err)
	}
	if cfg.NumberOfAccounts < 0 || cfg.MinTransactionsPerAccount < 0 || cfg.MaxTransactionsPerAccount < cfg.MinTransactionsPerAccount {
		return nil, fmt.Errorf("config.LoadGenerate: account and transaction counts out of range: %w", ErrInvalidConfig)
	}
	return &cfg, nil
}
