package config

import (
	"time"

	"github.com/wake/snikket-web-portal/internal/muc"
)

// Config represents the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Prosody ProsodyConfig `yaml:"prosody"`
	Domains DomainsConfig `yaml:"domains"`
	Log     LogConfig     `yaml:"log"`
	Audit   AuditConfig   `yaml:"audit"`
	Auth    AuthConfig    `yaml:"auth"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required"`
	ReadTimeout  time.Duration `yaml:"readTimeout" validate:"gt=0"`
	// WriteTimeout must exceed prosody.commandTimeout plus prosody.killGrace
	// so a slow shell still gets its JSON error response written.
	WriteTimeout time.Duration `yaml:"writeTimeout" validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idleTimeout" validate:"gt=0"`
	// AllowNonLoopback permits binding outside the loopback interface.
	// The API has no authentication of its own unless Auth is enabled.
	AllowNonLoopback bool `yaml:"allowNonLoopback"`
}

// ProsodyConfig describes how the administration shell is reached.
type ProsodyConfig struct {
	Runtime        string        `yaml:"runtime" validate:"required"`
	Container      string        `yaml:"container" validate:"required"`
	Shell          []string      `yaml:"shell" validate:"min=1,dive,required"`
	CommandTimeout time.Duration `yaml:"commandTimeout" validate:"gt=0"`
	KillGrace      time.Duration `yaml:"killGrace" validate:"gte=0"`
}

// DomainsConfig holds the XMPP domains identifiers are checked against.
type DomainsConfig struct {
	Base string `yaml:"base" validate:"required,hostname"`
	User string `yaml:"user" validate:"required,hostname"`
	Room string `yaml:"room" validate:"required,hostname"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// AuditConfig holds audit trail settings.
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir" validate:"required_if=Enabled true"`
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
}

// AuthConfig holds optional bearer token settings.
type AuthConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Algorithm    string `yaml:"algorithm" validate:"omitempty,oneof=HS256 RS256"`
	SecretKey    string `yaml:"secretKey"`
	PublicKeyPEM string `yaml:"publicKeyPEM"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         "127.0.0.1:5999",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Prosody: ProsodyConfig{
			Runtime:        "docker",
			Container:      "snikket",
			Shell:          []string{"prosodyctl", "shell"},
			CommandTimeout: 30 * time.Second,
			KillGrace:      5 * time.Second,
		},
		Domains: DomainsConfig{
			Base: muc.DefaultBaseDomain,
			User: muc.DefaultUserDomain,
			Room: muc.DefaultRoomDomain,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Audit: AuditConfig{
			Enabled:    true,
			Dir:        "logs",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Auth: AuthConfig{
			Algorithm: "HS256",
		},
	}
}

// MucDomains builds the identifier validator for the configured domains.
func (c *Config) MucDomains() *muc.Domains {
	return muc.NewDomains(c.Domains.Base, c.Domains.User, c.Domains.Room)
}
