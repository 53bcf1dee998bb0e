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

// Package service drives the OAuth flows: authorization URL, token exchange and signing of
// protected resource requests.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/extractor"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	httpservice "github.com/asgardeo/oauthclient/internal/system/http"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

// OAuthServiceInterface is the flow every OAuth version exposes to callers.
type OAuthServiceInterface interface {
	// Version returns the protocol version of the underlying strategy.
	Version() api.Version
	// GetRequestToken obtains OAuth 1.0a temporary credentials.
	GetRequestToken() (*model.Token, error)
	// GetAuthorizationURL returns the URL the end user must visit to authorize the application.
	GetAuthorizationURL(requestToken *model.Token) (string, error)
	// GetAccessToken trades the verifier, and for OAuth 1.0a the request token, for an access token.
	GetAccessToken(requestToken *model.Token, verifier model.Verifier) (*model.Token, error)
	// SignRequest adds the credentials of the access token to the request. Signing again
	// replaces the material added by the previous call.
	SignRequest(accessToken *model.Token, req *model.Request) error
	// Send sends a request with the service's HTTP client and timeouts.
	Send(req *model.Request) (*model.Response, error)
}

// baseService holds what both protocol versions share.
type baseService struct {
	api            api.API
	config         *model.OAuthConfig
	httpClient     httpservice.HTTPClientInterface
	connectTimeout time.Duration
	readTimeout    time.Duration
}

func (s *baseService) Version() api.Version {
	return s.api.Version()
}

// Send applies the service timeouts to requests that have none and sends them.
func (s *baseService) Send(req *model.Request) (*model.Response, error) {
	if req == nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidParameter, "Cannot send a nil request")
	}
	if req.ConnectTimeout() == 0 && s.connectTimeout > 0 {
		req.SetConnectTimeout(s.connectTimeout)
	}
	if req.ReadTimeout() == 0 && s.readTimeout > 0 {
		req.SetReadTimeout(s.readTimeout)
	}
	return req.Send(s.httpClient)
}

// signatureType returns the configured override or the strategy default.
func (s *baseService) signatureType() model.SignatureType {
	if st := s.config.SignatureType(); st != "" {
		return st
	}
	return s.api.SignatureType()
}

// exchange sends a token request and extracts the token from the response. A response outside
// the 2xx and 3xx range fails even when its body happens to parse.
func (s *baseService) exchange(req *model.Request, tokenExtractor extractor.TokenExtractor,
	logger *log.Logger) (*model.Token, error) {
	resp, err := s.Send(req)
	if err != nil {
		return nil, err
	}

	token, extractErr := tokenExtractor.Extract(resp.Body())
	if !resp.IsSuccessful() {
		logger.Debug("Token endpoint returned an error status", log.Int("status", resp.Code()))

		var providerErr *extractor.ProviderError
		if errors.As(extractErr, &providerErr) {
			return nil, serviceerror.WrapServiceError(constants.ErrorTokenExchange, providerErr,
				fmt.Sprintf("Token endpoint returned status %d with error: %s", resp.Code(), providerErr.Code))
		}
		return nil, serviceerror.CustomServiceError(constants.ErrorTokenExchange,
			fmt.Sprintf("Token endpoint returned status %d %s", resp.Code(), resp.Message()))
	}
	if extractErr != nil {
		logger.Debug("Failed to extract a token from the token endpoint response", log.Error(extractErr))
		return nil, extractErr
	}
	return token, nil
}
