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

// Package extractor parses token endpoint responses into tokens.
package extractor

import (
	"fmt"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// Format is the encoding of a token endpoint response.
type Format string

const (
	// FormatOAuth1Form is a form encoded OAuth 1.0a response with oauth_token and oauth_token_secret.
	FormatOAuth1Form Format = "oauth1_form"
	// FormatForm is a form encoded OAuth 2.0 response with access_token.
	FormatForm Format = "form"
	// FormatJSON is a JSON object OAuth 2.0 response with access_token.
	FormatJSON Format = "json"
)

// maxBodyInError bounds how much of a response body is quoted in error descriptions.
const maxBodyInError = 256

// TokenExtractor turns a raw response body into a token.
type TokenExtractor interface {
	Extract(body string) (*model.Token, error)
}

// ForFormat returns the extractor for a response format.
func ForFormat(format Format) (TokenExtractor, error) {
	switch format {
	case FormatOAuth1Form:
		return &OAuth1FormExtractor{}, nil
	case FormatForm:
		return &FormExtractor{}, nil
	case FormatJSON:
		return &JSONExtractor{}, nil
	}
	return nil, serviceerror.CustomServiceError(constants.ErrorInvalidConfiguration,
		fmt.Sprintf("Unknown token response format: %q", format))
}

// ProviderError is the error a provider reported in a token response.
type ProviderError struct {
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

func tokenExchangeError(body string, providerErr *ProviderError) error {
	if providerErr != nil {
		return serviceerror.WrapServiceError(constants.ErrorTokenExchange, providerErr,
			"The provider rejected the token request with error: "+providerErr.Code)
	}
	if body == "" {
		return serviceerror.CustomServiceError(constants.ErrorTokenExchange,
			"Cannot extract a token from an empty response")
	}
	return serviceerror.CustomServiceError(constants.ErrorTokenExchange,
		fmt.Sprintf("Response body is incorrect. Cannot extract a token from this: '%s'", truncate(body)))
}

func truncate(body string) string {
	if len(body) <= maxBodyInError {
		return body
	}
	return body[:maxBodyInError] + "..."
}
