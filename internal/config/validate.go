//
//
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the cross-field rules the struct
// tags cannot express.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	if err := validateListener(cfg.Server); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}

	if err := validateTimeouts(cfg.Server, cfg.Prosody); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}

	if err := validateAuth(cfg.Auth); err != nil {
		return fmt.Errorf("auth validation failed: %w", err)
	}

	return nil
}

// validateListener enforces the loopback bind unless explicitly waived.
func validateListener(s ServerConfig) error {
	host, port, err := net.SplitHostPort(s.Addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", s.Addr, err)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("invalid port in address %q", s.Addr)
	}
	if s.AllowNonLoopback || host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("address %q is not a loopback address; set server.allowNonLoopback to expose the API", s.Addr)
	}
	return nil
}

// validateTimeouts keeps the HTTP write deadline beyond the longest a shell
// command can run, including the time it is given to exit after cancellation.
func validateTimeouts(s ServerConfig, p ProsodyConfig) error {
	if budget := p.CommandTimeout + p.KillGrace; s.WriteTimeout <= budget {
		return fmt.Errorf("writeTimeout %s must exceed commandTimeout plus killGrace (%s)", s.WriteTimeout, budget)
	}
	return nil
}

// validateAuth checks key material when authentication is enabled.
func validateAuth(a AuthConfig) error {
	if !a.Enabled {
		return nil
	}

	switch a.Algorithm {
	case "HS256":
		if a.SecretKey == "" {
			return errors.New("HS256 requires secretKey")
		}
	case "RS256":
		if a.PublicKeyPEM == "" {
			return errors.New("RS256 requires publicKeyPEM")
		}
	default:
		return fmt.Errorf("unsupported algorithm %q", a.Algorithm)
	}
	return nil
}
