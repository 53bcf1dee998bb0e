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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/service"
	"github.com/asgardeo/oauthclient/internal/system/config"
	"github.com/asgardeo/oauthclient/internal/system/constants"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

const loggerComponentName = "OAuthFlowCLI"

// cliOptions holds the flags shared by every subcommand.
type cliOptions struct {
	configPath string
	apiKey     string
	apiSecret  string
	callback   string
	scope      string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	cmd := &cobra.Command{
		Use:   "oauthflow",
		Short: "Run OAuth 1.0a and OAuth 2.0 authorization flows against a provider",
		Long: `Run OAuth 1.0a and OAuth 2.0 authorization flows against a provider.

Providers come from the built-in catalogue or from the configuration file, which
may also describe providers with custom endpoints.

Examples:
  # List providers
  oauthflow providers --config oauth.yaml

  # Print the authorization URL of a configured provider
  oauthflow authorize baidu --config oauth.yaml

  # Trade the code for an access token
  oauthflow exchange baidu --verifier 4a8d2c --config oauth.yaml

  # Call a protected resource
  oauthflow fetch baidu --token 24.6c5e --url https://openapi.baidu.com/rest/2.0/passport/users/getInfo

  # Walk through the whole flow interactively
  oauthflow run twitter --api-key CK --api-secret CS`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv(constants.ConfigPathEnvironmentVariable),
		"Path to the provider configuration file")
	flags.StringVar(&opts.apiKey, "api-key", "", "Consumer key or client id, overrides the configuration")
	flags.StringVar(&opts.apiSecret, "api-secret", "", "Consumer secret or client secret, overrides the configuration")
	flags.StringVar(&opts.callback, "callback", "", "Callback or redirect URI, overrides the configuration")
	flags.StringVar(&opts.scope, "scope", "", "Requested scope, overrides the configuration")

	cmd.AddCommand(
		newProvidersCmd(opts),
		newAuthorizeCmd(opts),
		newExchangeCmd(opts),
		newFetchCmd(opts),
		newRunCmd(opts),
	)
	return cmd
}

// loadConfig reads the configuration file, if any, and registers the providers it describes
// with custom endpoints.
func (o *cliOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return &config.Config{}, nil
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration %s: %w", o.configPath, err)
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	for _, provider := range cfg.Providers {
		if provider.Strategy == nil {
			continue
		}
		strategy, err := api.FromConfig(provider)
		if err != nil {
			return nil, err
		}
		if err := api.Register(strategy); err != nil {
			return nil, err
		}
		logger.Debug("Registered configured provider", log.String(log.LoggerKeyProvider, provider.Name))
	}
	return cfg, nil
}

// provider returns the settings of the named provider with the command line overrides applied.
// Catalogue providers need no configuration entry when the credentials are given as flags.
func (o *cliOptions) provider(cfg *config.Config, name string) config.ProviderConfig {
	provider := config.ProviderConfig{Name: name}
	if configured, ok := cfg.Provider(name); ok {
		provider = *configured
	}
	if o.apiKey != "" {
		provider.APIKey = o.apiKey
	}
	if o.apiSecret != "" {
		provider.APISecret = o.apiSecret
	}
	if o.callback != "" {
		provider.Callback = o.callback
	}
	if o.scope != "" {
		provider.Scope = o.scope
	}
	return provider
}

// buildService creates the OAuth service of the named provider.
func (o *cliOptions) buildService(name string) (service.OAuthServiceInterface, config.ProviderConfig, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, config.ProviderConfig{}, err
	}
	provider := o.provider(cfg, name)
	svc, err := service.NewServiceBuilderFromConfig(cfg.HTTP, provider).Build()
	if err != nil {
		return nil, provider, err
	}
	return svc, provider, nil
}
