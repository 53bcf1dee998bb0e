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

package api

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/encoder"
	"github.com/asgardeo/oauthclient/internal/oauth/extractor"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/signature"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// OAuth20API is an OAuth 2.0 authorization code strategy. Zero valued optional fields fall
// back to GET token requests, form encoded responses, header bearer tokens and the
// access_token query parameter.
type OAuth20API struct {
	ProviderName string
	// AuthorizeURLTemplate holds two %s: the api key and the encoded callback.
	AuthorizeURLTemplate string
	// ScopedAuthorizeURLTemplate adds a third %s for the encoded scope. When empty,
	// "&scope=%s" is appended to AuthorizeURLTemplate.
	ScopedAuthorizeURLTemplate string
	AccessTokenURL             string
	AccessTokenHTTPVerb        model.Verb
	TokenFormat                extractor.Format
	DefaultSignatureType       model.SignatureType
	BearerParameterName        string
}

var _ API = (*OAuth20API)(nil)

// Name returns the provider name.
func (a *OAuth20API) Name() string {
	return a.ProviderName
}

// Version returns Version20.
func (a *OAuth20API) Version() Version {
	return Version20
}

// RequestTokenEndpoint is empty, OAuth 2.0 has no request token step.
func (a *OAuth20API) RequestTokenEndpoint() string {
	return ""
}

// RequestTokenVerb is empty, OAuth 2.0 has no request token step.
func (a *OAuth20API) RequestTokenVerb() model.Verb {
	return ""
}

// AccessTokenEndpoint returns the token endpoint.
func (a *OAuth20API) AccessTokenEndpoint() string {
	return a.AccessTokenURL
}

// AccessTokenVerb returns the verb of the token call.
func (a *OAuth20API) AccessTokenVerb() model.Verb {
	return verbOrDefault(a.AccessTokenHTTPVerb, model.VerbGet)
}

// AuthorizationURL substitutes the api key, the encoded callback and, when configured, the
// encoded scope into the authorize template.
func (a *OAuth20API) AuthorizationURL(cfg *model.OAuthConfig, _ *model.Token) (string, error) {
	if cfg == nil {
		return "", serviceerror.CustomServiceError(constants.ErrorInvalidConfiguration,
			"An OAuth configuration is required to build the authorization URL")
	}
	if cfg.Callback() == "" {
		return "", serviceerror.CustomServiceError(constants.ErrorInvalidConfiguration,
			"OAuth 2.0 requires a callback URL")
	}

	if cfg.HasScope() {
		return fmt.Sprintf(a.scopedTemplate(), cfg.APIKey(), encoder.Encode(cfg.Callback()),
			encoder.Encode(cfg.Scope())), nil
	}
	return fmt.Sprintf(a.AuthorizeURLTemplate, cfg.APIKey(), encoder.Encode(cfg.Callback())), nil
}

// RequestTokenExtractor is nil, OAuth 2.0 has no request token step.
func (a *OAuth20API) RequestTokenExtractor() extractor.TokenExtractor {
	return nil
}

// AccessTokenExtractor returns the extractor of the configured token format.
func (a *OAuth20API) AccessTokenExtractor() extractor.TokenExtractor {
	tokenExtractor, err := extractor.ForFormat(a.tokenFormat())
	if err != nil {
		return &extractor.FormExtractor{}
	}
	return tokenExtractor
}

// SignatureType returns where the bearer token is placed, the header by default.
func (a *OAuth20API) SignatureType() model.SignatureType {
	if a.DefaultSignatureType == "" {
		return model.SignatureTypeHeader
	}
	return a.DefaultSignatureType
}

// AccessTokenParameterName returns the bearer query parameter, access_token by default.
func (a *OAuth20API) AccessTokenParameterName() string {
	if a.BearerParameterName == "" {
		return constants.ParamAccessToken
	}
	return a.BearerParameterName
}

// Signer is nil, OAuth 2.0 requests carry no signature.
func (a *OAuth20API) Signer() signature.Signer {
	return nil
}

// TimestampService is nil, OAuth 2.0 requests carry no nonce.
func (a *OAuth20API) TimestampService() signature.TimestampServiceInterface {
	return nil
}

// BaseStringExtractor is nil, OAuth 2.0 requests carry no signature.
func (a *OAuth20API) BaseStringExtractor() signature.BaseStringExtractorInterface {
	return nil
}

// HeaderExtractor is nil, OAuth 2.0 bearer headers are built by the service.
func (a *OAuth20API) HeaderExtractor() signature.HeaderExtractorInterface {
	return nil
}

// Validate reports every missing endpoint, bad template or unknown token format.
func (a *OAuth20API) Validate() error {
	var err error
	if a.ProviderName == "" {
		err = multierr.Append(err, fmt.Errorf("provider name is required"))
	}
	err = multierr.Append(err, validateEndpoint("access token URL", a.AccessTokenURL))
	if strings.Count(a.AuthorizeURLTemplate, "%s") != 2 {
		err = multierr.Append(err, fmt.Errorf("authorize URL template must hold exactly two %%s: %q",
			a.AuthorizeURLTemplate))
	}
	if a.ScopedAuthorizeURLTemplate != "" && strings.Count(a.ScopedAuthorizeURLTemplate, "%s") != 3 {
		err = multierr.Append(err, fmt.Errorf("scoped authorize URL template must hold exactly three %%s: %q",
			a.ScopedAuthorizeURLTemplate))
	}
	if _, formatErr := extractor.ForFormat(a.tokenFormat()); formatErr != nil {
		err = multierr.Append(err, fmt.Errorf("unknown token format: %q", a.TokenFormat))
	}
	return wrapValidation(a.ProviderName, err)
}

func (a *OAuth20API) scopedTemplate() string {
	if a.ScopedAuthorizeURLTemplate != "" {
		return a.ScopedAuthorizeURLTemplate
	}
	return a.AuthorizeURLTemplate + "&scope=%s"
}

func (a *OAuth20API) tokenFormat() extractor.Format {
	if a.TokenFormat == "" {
		return extractor.FormatForm
	}
	return a.TokenFormat
}
