// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"address"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn"`

	// JWTSecret is the HMAC key used to sign session tokens.
	JWTSecret string `json:"jwt_secret"`

	// TokenTTLHours is the session token lifetime in hours.
	TokenTTLHours int `json:"token_ttl_hours"`

	// AdminUsername is the bootstrap administrator login. The account is
	// created at startup if it does not exist yet.
	AdminUsername string `json:"admin_username"`

	// AdminPassword is the bootstrap administrator password. Sourced from
	// the environment, never compiled into the binary.
	AdminPassword string `json:"-"`

	// CleanerIntervalMinutes is how often expired secrets are purged.
	CleanerIntervalMinutes int `json:"cleaner_interval_minutes"`

	// Config is the path to the JSON config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "jwt signing secret")
	flag.IntVar(&options.TokenTTLHours, "t", 24, "token ttl in hours")
	flag.StringVar(&options.AdminUsername, "u", "admin", "bootstrap admin username")
	flag.IntVar(&options.CleanerIntervalMinutes, "i", 60, "expired secret cleaner interval in minutes")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file and the
// environment to produce the effective configuration. Environment variables
// take precedence over the file, which takes precedence over flag defaults.
func Parse() *Options {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if username := os.Getenv("ADMIN_USERNAME"); username != "" {
		options.AdminUsername = username
	}
	options.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	return options
}

// TokenTTL returns the configured token lifetime as a duration.
func (o *Options) TokenTTL() time.Duration {
	return time.Duration(o.TokenTTLHours) * time.Hour
}

// CleanerInterval returns the configured purge interval as a duration.
func (o *Options) CleanerInterval() time.Duration {
	return time.Duration(o.CleanerIntervalMinutes) * time.Minute
}
