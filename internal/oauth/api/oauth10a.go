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

// OAuth10aAPI is an OAuth 1.0a provider strategy. Zero valued optional fields fall back to
// POST token requests, Authorization header signatures, HMAC-SHA1 and the system clock.
type OAuth10aAPI struct {
	ProviderName         string
	RequestTokenURL      string
	RequestTokenHTTPVerb model.Verb
	AccessTokenURL       string
	AccessTokenHTTPVerb  model.Verb
	// AuthorizeURLTemplate holds one %s that receives the encoded request token.
	AuthorizeURLTemplate string
	DefaultSignatureType model.SignatureType
	SignatureMethod      signature.Signer
	Timestamps           signature.TimestampServiceInterface
}

var _ API = (*OAuth10aAPI)(nil)

// Name returns the provider name.
func (a *OAuth10aAPI) Name() string {
	return a.ProviderName
}

// Version returns Version10a.
func (a *OAuth10aAPI) Version() Version {
	return Version10a
}

// RequestTokenEndpoint returns the temporary credential endpoint.
func (a *OAuth10aAPI) RequestTokenEndpoint() string {
	return a.RequestTokenURL
}

// RequestTokenVerb returns the verb of the request token call.
func (a *OAuth10aAPI) RequestTokenVerb() model.Verb {
	return verbOrDefault(a.RequestTokenHTTPVerb, model.VerbPost)
}

// AccessTokenEndpoint returns the token credential endpoint.
func (a *OAuth10aAPI) AccessTokenEndpoint() string {
	return a.AccessTokenURL
}

// AccessTokenVerb returns the verb of the access token call.
func (a *OAuth10aAPI) AccessTokenVerb() model.Verb {
	return verbOrDefault(a.AccessTokenHTTPVerb, model.VerbPost)
}

// AuthorizationURL substitutes the encoded request token into the authorize template.
func (a *OAuth10aAPI) AuthorizationURL(_ *model.OAuthConfig, requestToken *model.Token) (string, error) {
	if requestToken == nil || requestToken.Token() == "" {
		return "", serviceerror.CustomServiceError(constants.ErrorInvalidParameter,
			"A request token is required to build an OAuth 1.0a authorization URL")
	}
	return fmt.Sprintf(a.AuthorizeURLTemplate, encoder.Encode(requestToken.Token())), nil
}

// RequestTokenExtractor parses oauth_token and oauth_token_secret responses.
func (a *OAuth10aAPI) RequestTokenExtractor() extractor.TokenExtractor {
	return &extractor.OAuth1FormExtractor{}
}

// AccessTokenExtractor parses oauth_token and oauth_token_secret responses.
func (a *OAuth10aAPI) AccessTokenExtractor() extractor.TokenExtractor {
	return &extractor.OAuth1FormExtractor{}
}

// SignatureType returns where the signature is placed, the header by default.
func (a *OAuth10aAPI) SignatureType() model.SignatureType {
	if a.DefaultSignatureType == "" {
		return model.SignatureTypeHeader
	}
	return a.DefaultSignatureType
}

// AccessTokenParameterName returns oauth_token.
func (a *OAuth10aAPI) AccessTokenParameterName() string {
	return constants.ParamToken
}

// Signer returns the signature method, HMAC-SHA1 by default.
func (a *OAuth10aAPI) Signer() signature.Signer {
	if a.SignatureMethod == nil {
		return signature.NewHMACSHA1Signer()
	}
	return a.SignatureMethod
}

// TimestampService returns the nonce and timestamp source.
func (a *OAuth10aAPI) TimestampService() signature.TimestampServiceInterface {
	if a.Timestamps == nil {
		return signature.NewTimestampService()
	}
	return a.Timestamps
}

// BaseStringExtractor returns the RFC 5849 base string builder.
func (a *OAuth10aAPI) BaseStringExtractor() signature.BaseStringExtractorInterface {
	return signature.NewBaseStringExtractor()
}

// HeaderExtractor returns the Authorization header builder.
func (a *OAuth10aAPI) HeaderExtractor() signature.HeaderExtractorInterface {
	return signature.NewHeaderExtractor()
}

// Validate reports every missing endpoint or template.
func (a *OAuth10aAPI) Validate() error {
	var err error
	if a.ProviderName == "" {
		err = multierr.Append(err, fmt.Errorf("provider name is required"))
	}
	err = multierr.Append(err, validateEndpoint("request token URL", a.RequestTokenURL))
	err = multierr.Append(err, validateEndpoint("access token URL", a.AccessTokenURL))
	if strings.Count(a.AuthorizeURLTemplate, "%s") != 1 {
		err = multierr.Append(err, fmt.Errorf("authorize URL template must hold exactly one %%s: %q",
			a.AuthorizeURLTemplate))
	}
	return wrapValidation(a.ProviderName, err)
}
