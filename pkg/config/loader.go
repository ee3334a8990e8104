package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no file is given. Its absence is not an error.
const DefaultEnvFile = ".env"

// Load reads env files into the process environment and parses it into v
// according to its `env` struct tags.
//
// Variables already present in the environment win over values from files,
// and earlier files win over later ones. With no files, DefaultEnvFile is
// loaded if it exists.
//
// Example:
//
//	type SMTPConfig struct {
//		Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
//		Port int    `env:"SMTP_PORT" envDefault:"465"`
//	}
//
//	var cfg SMTPConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := LoadEnv(files...); err != nil {
		return err
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, files ...string) {
	if err := Load(v, files...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads env files without overriding variables that are already set.
// Explicit files must exist; the implicit DefaultEnvFile may be missing.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Join(ErrEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}
