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

// Package interop converts between the engine's tokens and strategies and the
// golang.org/x/oauth2 types, so OAuth 2.0 tokens obtained here can drive x/oauth2 clients.
package interop

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	sysconst "github.com/asgardeo/oauthclient/internal/system/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	httpservice "github.com/asgardeo/oauthclient/internal/system/http"
)

// paramExpires is the legacy name some providers use instead of expires_in.
const paramExpires = "expires"

// ToOAuth2Token converts an OAuth 2.0 access token. Expiry is computed from expires_in
// relative to now, and every extra parameter is kept as token extra data.
func ToOAuth2Token(token *model.Token, now time.Time) (*oauth2.Token, error) {
	if token == nil || token.Token() == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidParameter,
			"An access token is required for the conversion")
	}
	if token.Secret() != "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorUnsupportedOperation,
			"OAuth 1.0a tokens cannot be used as OAuth 2.0 bearer tokens")
	}

	params := token.Params()
	tokenType, ok := params[constants.ParamTokenType]
	if !ok || tokenType == "" {
		tokenType = sysconst.TokenTypeBearer
	}

	converted := &oauth2.Token{
		AccessToken:  token.Token(),
		TokenType:    tokenType,
		RefreshToken: params[constants.ParamRefreshToken],
	}
	if seconds, ok := expiresIn(params); ok {
		converted.ExpiresIn = seconds
		converted.Expiry = now.Add(time.Duration(seconds) * time.Second)
	}

	extra := make(map[string]interface{}, len(params))
	for k, v := range params {
		extra[k] = v
	}
	return converted.WithExtra(extra), nil
}

// FromOAuth2Token converts an x/oauth2 token. The remaining lifetime is recorded as
// expires_in relative to now.
func FromOAuth2Token(token *oauth2.Token, now time.Time) *model.Token {
	if token == nil {
		return model.EmptyToken()
	}
	params := make(map[string]string)
	if token.TokenType != "" {
		params[constants.ParamTokenType] = token.TokenType
	}
	if token.RefreshToken != "" {
		params[constants.ParamRefreshToken] = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		remaining := int64(token.Expiry.Sub(now).Round(time.Second) / time.Second)
		if remaining < 0 {
			remaining = 0
		}
		params[constants.ParamExpiresIn] = strconv.FormatInt(remaining, 10)
	}
	return model.NewTokenWithParams(token.AccessToken, "", "", params)
}

// Endpoint returns the x/oauth2 endpoint of an OAuth 2.0 strategy. The authorize URL is the
// template without its query string. Client credentials travel in the request parameters as
// the engine sends them.
func Endpoint(strategy api.API) (oauth2.Endpoint, error) {
	if strategy == nil || strategy.Version() != api.Version20 {
		return oauth2.Endpoint{}, serviceerror.CustomServiceError(constants.ErrorUnsupportedOperation,
			"Only OAuth 2.0 strategies have an x/oauth2 endpoint")
	}
	cfg := model.NewOAuthConfig("", "", "http://localhost", "", "")
	authURL, err := strategy.AuthorizationURL(cfg, nil)
	if err != nil {
		return oauth2.Endpoint{}, err
	}
	authURL, _, _ = strings.Cut(authURL, "?")

	return oauth2.Endpoint{
		AuthURL:   authURL,
		TokenURL:  strategy.AccessTokenEndpoint(),
		AuthStyle: oauth2.AuthStyleInParams,
	}, nil
}

// Config returns an x/oauth2 configuration for an OAuth 2.0 strategy. Scopes are split on
// spaces and commas.
func Config(strategy api.API, apiKey, apiSecret, callback, scope string) (*oauth2.Config, error) {
	endpoint, err := Endpoint(strategy)
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     apiKey,
		ClientSecret: apiSecret,
		RedirectURL:  callback,
		Scopes: strings.FieldsFunc(scope, func(r rune) bool {
			return r == ' ' || r == ','
		}),
		Endpoint: endpoint,
	}, nil
}

// Client returns a transport that adds the access token to every request through x/oauth2.
// A nil base client uses http.DefaultClient for the underlying calls.
func Client(ctx context.Context, token *model.Token, base *http.Client) (httpservice.HTTPClientInterface, error) {
	converted, err := ToOAuth2Token(token, time.Now())
	if err != nil {
		return nil, err
	}
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	return httpservice.NewHTTPClientWithConfig(oauth2.NewClient(ctx, oauth2.StaticTokenSource(converted))), nil
}

func expiresIn(params map[string]string) (int64, bool) {
	for _, key := range []string{constants.ParamExpiresIn, paramExpires} {
		raw, ok := params[key]
		if !ok {
			continue
		}
		seconds, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err == nil && seconds > 0 {
			return seconds, true
		}
	}
	return 0, false
}
