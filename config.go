// Copyright 2021 The httptimeout Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httptimeout

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// A Config holds the three timeouts of a Connector. Its zero value
// means no timeouts.
//
// In YAML, durations are written as Go duration strings:
//
//	connectTimeout: 5s
//	readTimeout: 30s
//	writeTimeout: 30s
type Config struct {
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
}

// ParseConfig decodes a YAML document into a Config. Omitted timeouts
// are zero. Negative timeouts are rejected.
func ParseConfig(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("httptimeout: invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error if any timeout is negative.
func (cfg Config) Validate() error {
	if cfg.ConnectTimeout < 0 {
		return fmt.Errorf("httptimeout: negative connect timeout %v", cfg.ConnectTimeout)
	}
	if cfg.ReadTimeout < 0 {
		return fmt.Errorf("httptimeout: negative read timeout %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout < 0 {
		return fmt.Errorf("httptimeout: negative write timeout %v", cfg.WriteTimeout)
	}
	return nil
}

// Apply sets all three timeouts on c.
func (cfg Config) Apply(c *Connector) {
	c.SetConnectTimeout(cfg.ConnectTimeout)
	c.SetReadTimeout(cfg.ReadTimeout)
	c.SetWriteTimeout(cfg.WriteTimeout)
}

// NewConnector constructs a Connector which dials with d and enforces
// the configured timeouts.
func (cfg Config) NewConnector(d Dialer) *Connector {
	c := NewConnector(d)
	cfg.Apply(c)
	return c
}
