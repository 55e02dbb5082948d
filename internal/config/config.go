package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	SecurityConfig
	StoreConfig
}

type mainConfig struct {
	EnvVars
	Security
	Store
}

// LookupFunc reads a single setting, reporting whether it was present
type LookupFunc func(key string) (string, bool)

// get returns the value of key or defaultValue when it is unset or empty
func (l LookupFunc) get(key, defaultValue string) string {
	value, ok := l(key)
	if !ok || value == "" {
		return defaultValue
	}
	return value
}

// New loads .env files (missing ones are skipped) and then reads the environment.
func New(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return NewFromLookup(os.LookupEnv)
}

// NewFromLookup builds the configuration from any key/value source.
func NewFromLookup(lookup LookupFunc) (Config, error) {
	env, err := loadEnvVars(lookup)
	if err != nil {
		return nil, err
	}
	security, err := loadSecurity(lookup, env.IsDev())
	if err != nil {
		return nil, err
	}
	store, err := loadStore(lookup)
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars: env, Security: security, Store: store}, nil
}

// FromMap is a convenience for tests
func FromMap(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}
