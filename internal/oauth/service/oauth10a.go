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
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	sysconst "github.com/asgardeo/oauthclient/internal/system/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

const oauth10aLoggerComponentName = "OAuth10aService"

// oauth10aService implements the OAuth 1.0a three-legged flow.
type oauth10aService struct {
	baseService
}

func (s *oauth10aService) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, oauth10aLoggerComponentName),
		log.String(log.LoggerKeyProvider, s.api.Name()))
}

// GetRequestToken obtains temporary credentials, signed with the consumer credentials only.
func (s *oauth10aService) GetRequestToken() (*model.Token, error) {
	logger := s.logger()
	logger.Debug("Obtaining request token", log.String("endpoint", s.api.RequestTokenEndpoint()))

	req := model.NewRequest(s.api.RequestTokenVerb(), s.api.RequestTokenEndpoint())
	callback := s.config.Callback()
	if callback == "" {
		callback = constants.OutOfBand
	}
	if err := req.AddOAuthParameter(constants.ParamCallback, callback); err != nil {
		return nil, err
	}
	if s.config.HasScope() {
		if err := req.AddOAuthParameter(constants.ParamScope, s.config.Scope()); err != nil {
			return nil, err
		}
	}
	if err := s.addSignature(req, model.EmptyToken()); err != nil {
		return nil, err
	}

	token, err := s.exchange(req, s.api.RequestTokenExtractor(), logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Obtained request token", log.String("token", log.MaskString(token.Token())))
	return token, nil
}

// GetAuthorizationURL returns the provider page that authorizes the request token.
func (s *oauth10aService) GetAuthorizationURL(requestToken *model.Token) (string, error) {
	return s.api.AuthorizationURL(s.config, requestToken)
}

// GetAccessToken trades the request token and verifier for token credentials.
func (s *oauth10aService) GetAccessToken(requestToken *model.Token, verifier model.Verifier) (*model.Token, error) {
	logger := s.logger()
	if requestToken.IsEmpty() || requestToken.Token() == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidParameter,
			"A request token is required to obtain an OAuth 1.0a access token")
	}
	if verifier.Value() == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidParameter,
			"A verifier is required to obtain an access token")
	}
	logger.Debug("Obtaining access token", log.String("endpoint", s.api.AccessTokenEndpoint()))

	req := model.NewRequest(s.api.AccessTokenVerb(), s.api.AccessTokenEndpoint())
	if err := req.AddOAuthParameter(constants.ParamToken, requestToken.Token()); err != nil {
		return nil, err
	}
	if err := req.AddOAuthParameter(constants.ParamVerifier, verifier.Value()); err != nil {
		return nil, err
	}
	if err := s.addSignature(req, requestToken); err != nil {
		return nil, err
	}

	token, err := s.exchange(req, s.api.AccessTokenExtractor(), logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Obtained access token", log.String("token", log.MaskString(token.Token())))
	return token, nil
}

// SignRequest signs the request with the access token. An empty token signs with the consumer
// credentials only. Earlier signatures are removed first.
func (s *oauth10aService) SignRequest(accessToken *model.Token, req *model.Request) error {
	if req == nil {
		return serviceerror.CustomServiceError(constants.ErrorSigning, "Cannot sign a nil request")
	}
	clearOAuth1Material(req)

	if accessToken == nil {
		accessToken = model.EmptyToken()
	}
	if accessToken.Token() != "" {
		if err := req.AddOAuthParameter(constants.ParamToken, accessToken.Token()); err != nil {
			return err
		}
	}
	return s.addSignature(req, accessToken)
}

// addSignature adds the protocol parameters, computes the signature over them and places
// everything in the header or the query string.
func (s *oauth10aService) addSignature(req *model.Request, token *model.Token) error {
	logger := s.logger()
	signer := s.api.Signer()
	timestamps := s.api.TimestampService()

	protocolParams := []model.Parameter{
		{Key: constants.ParamConsumerKey, Value: s.config.APIKey()},
		{Key: constants.ParamSignatureMethod, Value: signer.Method()},
		{Key: constants.ParamTimestamp, Value: timestamps.Timestamp()},
		{Key: constants.ParamNonce, Value: timestamps.Nonce()},
		{Key: constants.ParamVersion, Value: constants.Version10a},
	}
	for _, p := range protocolParams {
		if err := req.AddOAuthParameter(p.Key, p.Value); err != nil {
			return err
		}
	}

	baseString, err := s.api.BaseStringExtractor().Extract(req)
	if err != nil {
		return err
	}
	sig, err := signer.Sign(baseString, s.config.APISecret(), token.Secret())
	if err != nil {
		return err
	}
	if err := req.AddOAuthParameter(constants.ParamSignature, sig); err != nil {
		return err
	}
	if logger.IsDebugEnabled() {
		logger.Debug("Signed request", log.String("request", req.String()), log.String("baseString", baseString))
	}

	switch s.signatureType() {
	case model.SignatureTypeQueryString:
		for _, p := range req.OAuthParameters().Params() {
			req.AddQueryParameter(p.Key, p.Value)
		}
	default:
		header, err := s.api.HeaderExtractor().Extract(req)
		if err != nil {
			return err
		}
		req.AddHeader(sysconst.AuthorizationHeaderName, header)
	}
	return nil
}

// clearOAuth1Material removes what a previous signing call added to the request.
func clearOAuth1Material(req *model.Request) {
	oauthKeys := make(map[string]bool)
	for _, p := range req.OAuthParameters().Params() {
		oauthKeys[p.Key] = true
	}
	req.RemoveQueryParametersIf(func(p model.Parameter) bool {
		return oauthKeys[p.Key] && strings.HasPrefix(p.Key, constants.ParamPrefix)
	})
	req.RemoveOAuthParameters()
	req.RemoveHeader(sysconst.AuthorizationHeaderName)
}
