// Package config loads env-tagged structs from the process environment.
//
// Values in optional dotenv files are applied first; variables already set in
// the environment take precedence over them.
//
//	type Config struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config](config.WithDotenv(".env"))
package config
