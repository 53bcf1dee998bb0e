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

package service

import (
	"errors"
	"time"

	"go.uber.org/multierr"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/signature"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	httpservice "github.com/asgardeo/oauthclient/internal/system/http"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

const builderLoggerComponentName = "OAuthServiceBuilder"

// ServiceBuilder collects the settings of an OAuth service. Setters record problems and Build
// reports all of them at once.
type ServiceBuilder struct {
	api            api.API
	apiKey         string
	apiSecret      string
	callback       string
	scope          string
	signatureType  model.SignatureType
	httpClient     httpservice.HTTPClientInterface
	connectTimeout time.Duration
	readTimeout    time.Duration
	rateLimit      float64
	rateBurst      int
	errs           error
}

// NewServiceBuilder creates an empty builder.
func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{}
}

// Provider sets the provider strategy.
func (b *ServiceBuilder) Provider(strategy api.API) *ServiceBuilder {
	b.api = strategy
	return b
}

// ProviderName sets the provider strategy registered under the given name.
func (b *ServiceBuilder) ProviderName(name string) *ServiceBuilder {
	strategy, err := api.Lookup(name)
	if err != nil {
		b.errs = multierr.Append(b.errs, err)
		return b
	}
	return b.Provider(strategy)
}

// APIKey sets the consumer key or client id.
func (b *ServiceBuilder) APIKey(apiKey string) *ServiceBuilder {
	b.apiKey = apiKey
	return b
}

// APISecret sets the consumer secret or client secret.
func (b *ServiceBuilder) APISecret(apiSecret string) *ServiceBuilder {
	b.apiSecret = apiSecret
	return b
}

// Callback sets the callback or redirect URI. OAuth 1.0a defaults to "oob".
func (b *ServiceBuilder) Callback(callback string) *ServiceBuilder {
	b.callback = callback
	return b
}

// Scope sets the requested scope.
func (b *ServiceBuilder) Scope(scope string) *ServiceBuilder {
	b.scope = scope
	return b
}

// SignatureType overrides where the strategy places signatures and bearer tokens.
func (b *ServiceBuilder) SignatureType(signatureType model.SignatureType) *ServiceBuilder {
	b.signatureType = signatureType
	return b
}

// HTTPClient sets the transport. The caller owns its lifecycle.
func (b *ServiceBuilder) HTTPClient(client httpservice.HTTPClientInterface) *ServiceBuilder {
	b.httpClient = client
	return b
}

// Timeouts sets the connect and read timeouts applied to requests sent by the service.
func (b *ServiceBuilder) Timeouts(connectTimeout, readTimeout time.Duration) *ServiceBuilder {
	b.connectTimeout = connectTimeout
	b.readTimeout = readTimeout
	return b
}

// RateLimit throttles requests sent by the service to requestsPerSecond with the given burst.
func (b *ServiceBuilder) RateLimit(requestsPerSecond float64, burst int) *ServiceBuilder {
	b.rateLimit = requestsPerSecond
	b.rateBurst = burst
	return b
}

// Build validates the settings and creates the service for the strategy's protocol version.
func (b *ServiceBuilder) Build() (OAuthServiceInterface, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, builderLoggerComponentName))

	if err := b.validate(); err != nil {
		logger.Debug("Invalid OAuth service configuration", log.Error(err))
		return nil, err
	}

	callback := b.callback
	if callback == "" && b.api.Version() == api.Version10a {
		callback = constants.OutOfBand
	}
	cfg := model.NewOAuthConfig(b.apiKey, b.apiSecret, callback, b.scope, b.signatureType)

	client := b.httpClient
	if client == nil {
		client = httpservice.NewHTTPClient()
	}
	if b.rateLimit > 0 {
		burst := b.rateBurst
		if burst < 1 {
			burst = 1
		}
		client = httpservice.NewRateLimitedHTTPClientPerSecond(client, b.rateLimit, burst)
	}

	base := baseService{
		api:            b.api,
		config:         cfg,
		httpClient:     client,
		connectTimeout: b.connectTimeout,
		readTimeout:    b.readTimeout,
	}
	logger.Debug("Created OAuth service", log.String(log.LoggerKeyProvider, b.api.Name()),
		log.String(log.LoggerKeyOAuthVersion, string(b.api.Version())), log.String("config", cfg.String()))

	if b.api.Version() == api.Version10a {
		return &oauth10aService{baseService: base}, nil
	}
	return &oauth20Service{baseService: base}, nil
}

func (b *ServiceBuilder) validate() error {
	errs := b.errs
	if b.api == nil {
		if errs == nil {
			errs = multierr.Append(errs, errors.New("provider is required"))
		}
	} else if err := b.api.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if b.apiKey == "" {
		errs = multierr.Append(errs, errors.New("api key is required"))
	}
	if b.apiSecret == "" && !b.signsWithPrivateKey() {
		errs = multierr.Append(errs, errors.New("api secret is required"))
	}
	if b.api != nil && b.api.Version() == api.Version20 && b.callback == "" {
		errs = multierr.Append(errs, errors.New("callback is required for OAuth 2.0"))
	}
	if _, err := model.ParseSignatureType(string(b.signatureType)); err != nil {
		errs = multierr.Append(errs, err)
	}
	if b.connectTimeout < 0 || b.readTimeout < 0 {
		errs = multierr.Append(errs, errors.New("timeouts must not be negative"))
	}
	if errs == nil {
		return nil
	}
	return serviceerror.WrapServiceError(constants.ErrorInvalidConfiguration, errs,
		"The OAuth service configuration is incomplete")
}

// signsWithPrivateKey reports whether the strategy signs with RSA-SHA1, which needs no secret.
func (b *ServiceBuilder) signsWithPrivateKey() bool {
	if b.api == nil || b.api.Version() != api.Version10a {
		return false
	}
	signer := b.api.Signer()
	return signer != nil && signer.Method() == signature.MethodRSASHA1
}

// BuildService is a shortcut for building a service from a strategy and credentials.
func BuildService(strategy api.API, apiKey, apiSecret, callback, scope string) (OAuthServiceInterface, error) {
	return NewServiceBuilder().
		Provider(strategy).
		APIKey(apiKey).
		APISecret(apiSecret).
		Callback(callback).
		Scope(scope).
		Build()
}
