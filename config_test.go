/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/presidle/games/presidents"
)

func validConfig() *Config {
	return &Config{
		attempts:     presidents.DefaultAttempts,
		bind:         "127.0.0.1",
		dataURL:      presidents.DefaultURL,
		failureDelay: presidents.DefaultFailureDelay,
		fetchTimeout: time.Second,
		port:         8080,
		successDelay: presidents.DefaultSuccessDelay,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "tls pair", mutate: func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }},
		{name: "cert without key", mutate: func(c *Config) { c.tlsCert = "cert.pem" }, wantErr: "--tls-cert and --tls-key"},
		{name: "key without cert", mutate: func(c *Config) { c.tlsKey = "key.pem" }, wantErr: "--tls-cert and --tls-key"},
		{name: "port zero", mutate: func(c *Config) { c.port = 0 }, wantErr: "invalid port"},
		{name: "port too high", mutate: func(c *Config) { c.port = 65536 }, wantErr: "invalid port"},
		{name: "no attempts", mutate: func(c *Config) { c.attempts = 0 }, wantErr: "invalid attempts"},
		{name: "zero success delay", mutate: func(c *Config) { c.successDelay = 0 }, wantErr: "must be positive"},
		{name: "negative failure delay", mutate: func(c *Config) { c.failureDelay = -time.Second }, wantErr: "must be positive"},
		{name: "zero fetch timeout", mutate: func(c *Config) { c.fetchTimeout = 0 }, wantErr: "invalid fetch timeout"},
		{name: "relative data url", mutate: func(c *Config) { c.dataURL = "/presidents" }, wantErr: "invalid data url"},
		{name: "ftp data url", mutate: func(c *Config) { c.dataURL = "ftp://example.com/presidents" }, wantErr: "invalid data url"},
		{name: "unparseable data url", mutate: func(c *Config) { c.dataURL = "http://[::1" }, wantErr: "invalid data url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate() = %v, want nil", err)
				}
				return
			}

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	if got := cfg.scheme(); got != "http" {
		t.Errorf("scheme() = %q, want http", got)
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if got := cfg.scheme(); got != "https" {
		t.Errorf("scheme() = %q, want https", got)
	}
}

func TestConfigGameOptions(t *testing.T) {
	cfg := validConfig()
	cfg.attempts = 3

	opts := cfg.gameOptions()
	if opts.Attempts != 3 || opts.Variant != presidents.VariantBonus {
		t.Errorf("gameOptions() = %+v, want 3 attempts in bonus variant", opts)
	}

	cfg.classic = true
	if got := cfg.gameOptions().Variant; got != presidents.VariantClassic {
		t.Errorf("classic gameOptions().Variant = %v, want classic", got)
	}
}

func TestNewCmdDefaults(t *testing.T) {
	cfg := &Config{}
	_ = newCmd(cfg)

	if cfg.port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.port)
	}
	if cfg.attempts != presidents.DefaultAttempts {
		t.Errorf("attempts = %d, want %d", cfg.attempts, presidents.DefaultAttempts)
	}
	if cfg.dataURL != presidents.DefaultURL {
		t.Errorf("dataURL = %q, want %q", cfg.dataURL, presidents.DefaultURL)
	}
	if cfg.sessionTimeout != time.Hour {
		t.Errorf("sessionTimeout = %s, want 1h", cfg.sessionTimeout)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestNewCmdEnvironment(t *testing.T) {
	t.Setenv("PRESIDLE_PORT", "9090")
	t.Setenv("PRESIDLE_ATTEMPTS", "3")
	t.Setenv("PRESIDLE_CLASSIC", "true")
	t.Setenv("PRESIDLE_SUCCESS_DELAY", "500ms")
	t.Setenv("PRESIDLE_DATA_URL", "http://localhost:3000/presidents")

	cfg := &Config{}
	_ = newCmd(cfg)

	if cfg.port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.port)
	}
	if cfg.attempts != 3 {
		t.Errorf("attempts = %d, want 3", cfg.attempts)
	}
	if !cfg.classic {
		t.Error("classic = false, want true")
	}
	if cfg.successDelay != 500*time.Millisecond {
		t.Errorf("successDelay = %s, want 500ms", cfg.successDelay)
	}
	if cfg.dataURL != "http://localhost:3000/presidents" {
		t.Errorf("dataURL = %q", cfg.dataURL)
	}
}

func TestNewCmdVersion(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v", err)
	}

	if got, want := out.String(), "presidle v"+releaseVersion+"\n"; got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestNewCmdRejectsInvalidFlags(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)
	cmd.SetArgs([]string{"--attempts", "0"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid attempts") {
		t.Fatalf("Execute() = %v, want invalid attempts error", err)
	}
}
