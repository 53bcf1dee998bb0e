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

package extractor

import (
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
)

// OAuth1FormExtractor reads oauth_token and oauth_token_secret from a form encoded body.
type OAuth1FormExtractor struct{}

// Extract parses the body. The token must be non-empty and the secret present; any
// other pair is kept as a token parameter.
func (e *OAuth1FormExtractor) Extract(body string) (*model.Token, error) {
	params, ok := parseForm(body)
	if !ok {
		return nil, tokenExchangeError(body, providerErrorFromBody(body))
	}

	token := params[constants.ParamToken]
	secret, hasSecret := params[constants.ParamTokenSecret]
	if token == "" || !hasSecret {
		return nil, tokenExchangeError(body, providerError(body, params))
	}
	delete(params, constants.ParamToken)
	delete(params, constants.ParamTokenSecret)

	return model.NewTokenWithParams(token, secret, body, params), nil
}

// FormExtractor reads access_token from a form encoded OAuth 2.0 body.
type FormExtractor struct{}

// Extract parses the body. Every pair other than access_token is kept as a token parameter.
func (e *FormExtractor) Extract(body string) (*model.Token, error) {
	params, ok := parseForm(body)
	if !ok {
		return nil, tokenExchangeError(body, providerErrorFromBody(body))
	}

	token := params[constants.ParamAccessToken]
	if token == "" {
		return nil, tokenExchangeError(body, providerError(body, params))
	}
	delete(params, constants.ParamAccessToken)

	return model.NewTokenWithParams(token, "", body, params), nil
}

// parseForm decodes a form body into a map keeping the first value of each key.
func parseForm(body string) (map[string]string, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, false
	}
	list := &model.ParameterList{}
	if err := list.AddQueryString(body); err != nil {
		return nil, false
	}

	params := make(map[string]string, list.Size())
	for _, p := range list.Params() {
		if _, exists := params[p.Key]; !exists {
			params[p.Key] = p.Value
		}
	}
	return params, true
}

func providerError(body string, params map[string]string) *ProviderError {
	if providerErr := providerErrorFromParams(params); providerErr != nil {
		return providerErr
	}
	return providerErrorFromBody(body)
}

func providerErrorFromParams(params map[string]string) *ProviderError {
	if code := params[constants.ParamError]; code != "" {
		return &ProviderError{Code: code, Description: params[constants.ParamErrorDesc]}
	}
	if problem := params[constants.ParamProblem]; problem != "" {
		return &ProviderError{Code: problem, Description: params[constants.ParamProblemAdvice]}
	}
	return nil
}

// providerErrorFromBody looks for an error reported in a JSON or JSONP body, which some
// providers return from form encoded endpoints when a request fails.
func providerErrorFromBody(body string) *ProviderError {
	fields, err := parseJSONObject(body)
	if err != nil {
		return nil
	}
	return providerErrorFromParams(fields)
}
