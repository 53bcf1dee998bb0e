/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config loads the provider configuration of the OAuth client from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/oauthclient/internal/system/constants"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

// HTTPConfig holds the transport settings shared by every provider.
type HTTPConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	// RateLimit is the allowed number of requests per second. Zero disables throttling.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// StrategyConfig describes a provider that is not part of the built-in catalogue.
type StrategyConfig struct {
	Version            string `yaml:"version"`
	RequestTokenURL    string `yaml:"request_token_url"`
	RequestTokenVerb   string `yaml:"request_token_verb"`
	AuthorizeURL       string `yaml:"authorize_url"`
	ScopedAuthorizeURL string `yaml:"scoped_authorize_url"`
	AccessTokenURL     string `yaml:"access_token_url"`
	AccessTokenVerb    string `yaml:"access_token_verb"`
	TokenFormat        string `yaml:"token_format"`
	SignatureType      string `yaml:"signature_type"`
	BearerParameter    string `yaml:"bearer_parameter"`
	RSAPrivateKeyFile  string `yaml:"rsa_private_key_file"`
}

// ProviderConfig holds the credentials and options of one provider.
type ProviderConfig struct {
	Name                 string          `yaml:"name"`
	APIKey               string          `yaml:"api_key"`
	APISecret            string          `yaml:"api_secret"`
	Callback             string          `yaml:"callback"`
	Scope                string          `yaml:"scope"`
	SignatureType        string          `yaml:"signature_type"`
	ProtectedResourceURL string          `yaml:"protected_resource_url"`
	Strategy             *StrategyConfig `yaml:"strategy"`
}

// Config is the root of the configuration file.
type Config struct {
	HTTP      HTTPConfig       `yaml:"http"`
	Providers []ProviderConfig `yaml:"providers"`
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadConfig loads the configuration from the specified YAML file. ${NAME} references are
// replaced with environment variables before parsing.
func LoadConfig(path string) (*Config, error) {
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// LoadConfigFromEnv loads the file named by the OAUTH_CLIENT_CONFIG environment variable.
func LoadConfigFromEnv() (*Config, error) {
	path := os.Getenv(constants.ConfigPathEnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("environment variable %s is not set", constants.ConfigPathEnvironmentVariable)
	}
	return LoadConfig(path)
}

// ParseConfig parses and validates YAML configuration data.
func ParseConfig(data []byte) (*Config, error) {
	expanded := expandEnv(data)

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(expanded))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.HTTP.ConnectTimeout < 0 {
		err = multierr.Append(err, errors.New("http.connect_timeout must not be negative"))
	}
	if c.HTTP.ReadTimeout < 0 {
		err = multierr.Append(err, errors.New("http.read_timeout must not be negative"))
	}
	if c.HTTP.RateLimit < 0 || c.HTTP.RateBurst < 0 {
		err = multierr.Append(err, errors.New("http.rate_limit and http.rate_burst must not be negative"))
	}

	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			err = multierr.Append(err, fmt.Errorf("providers[%d]: name is required", i))
			continue
		}
		if seen[name] {
			err = multierr.Append(err, fmt.Errorf("providers[%d]: duplicate provider %q", i, p.Name))
		}
		seen[name] = true

		// Credentials may come from the command line, the service builder checks them.
		if p.Strategy != nil && p.Strategy.Version != "1.0a" && p.Strategy.Version != "2.0" {
			err = multierr.Append(err, fmt.Errorf("provider %q: strategy.version must be 1.0a or 2.0, got %q",
				p.Name, p.Strategy.Version))
		}
	}
	return err
}

// Provider returns the provider configured under the given name, ignoring case.
func (c *Config) Provider(name string) (*ProviderConfig, bool) {
	for i := range c.Providers {
		if strings.EqualFold(strings.TrimSpace(c.Providers[i].Name), strings.TrimSpace(name)) {
			return &c.Providers[i], true
		}
	}
	return nil, false
}

// ProviderNames returns the configured provider names in file order.
func (c *Config) ProviderNames() []string {
	names := make([]string, len(c.Providers))
	for i, p := range c.Providers {
		names[i] = p.Name
	}
	return names
}

// String returns a printable form of the provider with the secret masked.
func (p ProviderConfig) String() string {
	return fmt.Sprintf("Provider[name=%s, apiKey=%s, apiSecret=%s, callback=%s, scope=%s]",
		p.Name, p.APIKey, log.MaskString(p.APISecret), p.Callback, p.Scope)
}

func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}
