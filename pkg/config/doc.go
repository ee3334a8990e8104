// Package config loads environment-based configuration into tagged structs.
//
// Values come from the process environment, optionally seeded from .env files
// via godotenv, and are decoded with caarlos0/env. Struct tags describe names,
// defaults and required fields:
//
//	type Config struct {
//		File  string `env:"RECIPIENTS_FILE" envDefault:"recipients.xlsx"`
//		Email string `env:"SENDER_EMAIL,required"`
//	}
//
// Parsing failures wrap ErrParsingConfig so callers can tell them apart from
// runtime errors.
package config
