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
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/extractor"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	sysconst "github.com/asgardeo/oauthclient/internal/system/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

const oauth20LoggerComponentName = "OAuth20Service"

// oauth20Service implements the OAuth 2.0 authorization code flow.
type oauth20Service struct {
	baseService
}

func (s *oauth20Service) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, oauth20LoggerComponentName),
		log.String(log.LoggerKeyProvider, s.api.Name()))
}

// GetRequestToken is not part of OAuth 2.0.
func (s *oauth20Service) GetRequestToken() (*model.Token, error) {
	return nil, serviceerror.CustomServiceError(constants.ErrorUnsupportedOperation,
		"OAuth 2.0 does not use request tokens, call GetAuthorizationURL directly")
}

// GetAuthorizationURL returns the provider authorize URL. The request token is ignored.
func (s *oauth20Service) GetAuthorizationURL(_ *model.Token) (string, error) {
	return s.api.AuthorizationURL(s.config, nil)
}

// GetAccessToken trades the authorization code for an access token. The request token is ignored.
func (s *oauth20Service) GetAccessToken(_ *model.Token, verifier model.Verifier) (*model.Token, error) {
	logger := s.logger()
	if strings.TrimSpace(verifier.Value()) == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidParameter,
			"An authorization code is required to obtain an access token")
	}
	logger.Debug("Exchanging authorization code for an access token",
		log.String("endpoint", s.api.AccessTokenEndpoint()))

	// Body parameters travel in the query string for GET and in a form body for POST.
	req := model.NewRequest(s.api.AccessTokenVerb(), s.api.AccessTokenEndpoint())
	req.AddBodyParameter(constants.ParamClientID, s.config.APIKey())
	req.AddBodyParameter(constants.ParamClientSecret, s.config.APISecret())
	req.AddBodyParameter(constants.ParamCode, verifier.Value())
	req.AddBodyParameter(constants.ParamRedirectURI, s.config.Callback())
	req.AddBodyParameter(constants.ParamGrantType, constants.GrantTypeAuthorizationCode)
	if s.config.HasScope() {
		req.AddBodyParameter(constants.ParamScope, s.config.Scope())
	}

	tokenExtractor := s.api.AccessTokenExtractor()
	if _, isJSON := tokenExtractor.(*extractor.JSONExtractor); isJSON {
		req.AddHeader(sysconst.AcceptHeaderName, sysconst.ContentTypeJSON)
	}

	token, err := s.exchange(req, tokenExtractor, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Obtained access token", log.String("token", log.MaskString(token.Token())))
	return token, nil
}

// SignRequest attaches the bearer token as an Authorization header or a query parameter.
// Material added by an earlier call is replaced.
func (s *oauth20Service) SignRequest(accessToken *model.Token, req *model.Request) error {
	if req == nil {
		return serviceerror.CustomServiceError(constants.ErrorSigning, "Cannot sign a nil request")
	}
	if accessToken == nil || accessToken.Token() == "" {
		return serviceerror.CustomServiceError(constants.ErrorSigning,
			"An access token is required to sign OAuth 2.0 requests")
	}

	paramName := s.api.AccessTokenParameterName()
	req.RemoveHeader(sysconst.AuthorizationHeaderName)
	req.RemoveQueryParameter(paramName)

	switch s.signatureType() {
	case model.SignatureTypeQueryString:
		req.AddQueryParameter(paramName, accessToken.Token())
	default:
		req.AddHeader(sysconst.AuthorizationHeaderName, sysconst.TokenTypeBearer+" "+accessToken.Token())
	}
	return nil
}
