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

package model

import (
	"fmt"

	"github.com/asgardeo/oauthclient/internal/system/log"
)

// Token is an opaque credential returned by a provider: a request token or an access token.
// The secret is only set for OAuth 1.0a tokens. Tokens are immutable.
type Token struct {
	token       string
	secret      string
	rawResponse string
	params      map[string]string
}

// NewToken creates a token.
func NewToken(token, secret, rawResponse string) *Token {
	return NewTokenWithParams(token, secret, rawResponse, nil)
}

// NewTokenWithParams creates a token that also carries the additional fields the provider
// returned alongside it, such as expires_in or refresh_token.
func NewTokenWithParams(token, secret, rawResponse string, params map[string]string) *Token {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return &Token{
		token:       token,
		secret:      secret,
		rawResponse: rawResponse,
		params:      copied,
	}
}

// EmptyToken returns a token with no value and no secret. It is used for OAuth 1.0a requests
// signed with consumer credentials only.
func EmptyToken() *Token {
	return NewToken("", "", "")
}

// Token returns the token value.
func (t *Token) Token() string {
	return t.token
}

// Secret returns the token secret.
func (t *Token) Secret() string {
	return t.secret
}

// RawResponse returns the unparsed body the token was extracted from.
func (t *Token) RawResponse() string {
	return t.rawResponse
}

// Param returns an additional field returned with the token.
func (t *Token) Param(name string) (string, bool) {
	v, ok := t.params[name]
	return v, ok
}

// Params returns a copy of the additional fields returned with the token.
func (t *Token) Params() map[string]string {
	copied := make(map[string]string, len(t.params))
	for k, v := range t.params {
		copied[k] = v
	}
	return copied
}

// IsEmpty reports whether the token has neither a value nor a secret.
func (t *Token) IsEmpty() bool {
	return t == nil || (t.token == "" && t.secret == "")
}

// String returns a printable form of the token with the secret masked.
func (t *Token) String() string {
	return fmt.Sprintf("Token[%s , %s]", t.token, log.MaskString(t.secret))
}

// Verifier is the one-time proof returned after the user authorized the application:
// the oauth_verifier for OAuth 1.0a or the authorization code for OAuth 2.0.
type Verifier struct {
	value string
}

// NewVerifier creates a verifier.
func NewVerifier(value string) Verifier {
	return Verifier{value: value}
}

// Value returns the verifier value.
func (v Verifier) Value() string {
	return v.value
}
