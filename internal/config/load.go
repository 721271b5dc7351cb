//
//
package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/Netflix/go-env"
	"gopkg.in/yaml.v2"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "MUCAPI_CONFIG"

// envOverrides lists the settings that can be overridden from the
// environment. Unset variables leave the field nil.
type envOverrides struct {
	Addr           *string        `env:"MUCAPI_ADDR"`
	WriteTimeout   *time.Duration `env:"MUCAPI_WRITE_TIMEOUT"`
	Runtime        *string        `env:"MUCAPI_RUNTIME"`
	Container      *string        `env:"MUCAPI_CONTAINER"`
	CommandTimeout *time.Duration `env:"MUCAPI_COMMAND_TIMEOUT"`
	KillGrace      *time.Duration `env:"MUCAPI_KILL_GRACE"`
	BaseDomain     *string        `env:"MUCAPI_BASE_DOMAIN"`
	UserDomain     *string        `env:"MUCAPI_USER_DOMAIN"`
	RoomDomain     *string        `env:"MUCAPI_ROOM_DOMAIN"`
	LogLevel       *string        `env:"MUCAPI_LOG_LEVEL"`
	LogFormat      *string        `env:"MUCAPI_LOG_FORMAT"`
	AuditEnabled   *bool          `env:"MUCAPI_AUDIT_ENABLED"`
	AuditDir       *string        `env:"MUCAPI_AUDIT_DIR"`
	AuthEnabled    *bool          `env:"MUCAPI_AUTH_ENABLED"`
	AuthSecret     *string        `env:"MUCAPI_AUTH_SECRET"`
}

// Load merges defaults, the YAML file at path (or $MUCAPI_CONFIG when path
// is empty) and MUCAPI_* environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg.
func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// applyEnvOverrides applies MUCAPI_* environment variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	var o envOverrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return err
	}

	setString(&cfg.Server.Addr, o.Addr)
	setDuration(&cfg.Server.WriteTimeout, o.WriteTimeout)
	setString(&cfg.Prosody.Runtime, o.Runtime)
	setString(&cfg.Prosody.Container, o.Container)
	setDuration(&cfg.Prosody.CommandTimeout, o.CommandTimeout)
	setDuration(&cfg.Prosody.KillGrace, o.KillGrace)
	setString(&cfg.Domains.Base, o.BaseDomain)
	setString(&cfg.Domains.User, o.UserDomain)
	setString(&cfg.Domains.Room, o.RoomDomain)
	setString(&cfg.Log.Level, o.LogLevel)
	setString(&cfg.Log.Format, o.LogFormat)
	setBool(&cfg.Audit.Enabled, o.AuditEnabled)
	setString(&cfg.Audit.Dir, o.AuditDir)
	setBool(&cfg.Auth.Enabled, o.AuthEnabled)
	setString(&cfg.Auth.SecretKey, o.AuthSecret)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *time.Duration) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
