package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App         AppSettings         `mapstructure:"app"`
	Validator   ValidatorSettings   `mapstructure:"validator"`
	Fingerprint FingerprintSettings `mapstructure:"fingerprint"`
	History     HistorySettings     `mapstructure:"history"`
	Redis       RedisSettings       `mapstructure:"redis"`
	Postgres    PostgresSettings    `mapstructure:"postgres"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// ValidatorSettings tunes the ordered password checks.
type ValidatorSettings struct {
	MinLength      int           `mapstructure:"min_length"`
	HistoryTimeout time.Duration `mapstructure:"history_timeout"`
}

// FingerprintSettings selects and configures the fingerprint scheme.
type FingerprintSettings struct {
	Scheme string         `mapstructure:"scheme"`
	Argon2 Argon2Settings `mapstructure:"argon2"`
}

// Argon2Settings configures Argon2id fingerprint derivation parameters.
type Argon2Settings struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
	KeyLength   uint32 `mapstructure:"key_length"`
}

// HistorySettings selects the history backend and its locator.
type HistorySettings struct {
	Backend string `mapstructure:"backend"`
	Locator string `mapstructure:"locator"`
}

// RedisSettings configures the Redis history backend.
type RedisSettings struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	DB        int    `mapstructure:"db"`
	Password  string `mapstructure:"password"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// PostgresSettings configures the PostgreSQL history backend.
type PostgresSettings struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// DSN renders the settings as a pgx connection string.
func (s PostgresSettings) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		s.User, s.Password, s.Host, s.Port, s.Database, s.SSLMode, s.MaxConns,
	)
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("CREDCHECK")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"validator.min_length",
		"validator.history_timeout",
		"fingerprint.scheme",
		"fingerprint.argon2.memory",
		"fingerprint.argon2.iterations",
		"fingerprint.argon2.parallelism",
		"fingerprint.argon2.key_length",
		"history.backend",
		"history.locator",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.key_prefix",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "credcheck")
	v.SetDefault("app.env", "development")

	v.SetDefault("validator.min_length", 5)
	v.SetDefault("validator.history_timeout", "5s")

	v.SetDefault("fingerprint.scheme", "argon2id")
	v.SetDefault("fingerprint.argon2.memory", 65536) // 64 MB
	v.SetDefault("fingerprint.argon2.iterations", 3)
	v.SetDefault("fingerprint.argon2.parallelism", 4)
	v.SetDefault("fingerprint.argon2.key_length", 32)

	v.SetDefault("history.backend", "file")
	v.SetDefault("history.locator", "past_hashes.txt")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.key_prefix", "credcheck:history:")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "credcheck")
	v.SetDefault("postgres.password", "credcheck_password")
	v.SetDefault("postgres.database", "credcheck")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 4)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "CREDCHECK_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
