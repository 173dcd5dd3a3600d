package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadOption tunes a single Load call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	files  []string
	prefix string
	vars   map[string]string
}

// WithDotenv loads the given dotenv files before parsing.
// Missing files are skipped.
func WithDotenv(files ...string) LoadOption {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvironment replaces the process environment as the variable source.
func WithEnvironment(vars map[string]string) LoadOption {
	return func(o *loadOptions) { o.vars = vars }
}

// Load parses the environment into a new T.
func Load[T any](opts ...LoadOption) (T, error) {
	var (
		cfg T
		o   loadOptions
	)
	for _, opt := range opts {
		opt(&o)
	}

	for _, f := range o.files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Join(ErrLoadingDotenv, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: o.prefix, Environment: o.vars}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load for startup code that cannot run without configuration.
func MustLoad[T any](opts ...LoadOption) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}
