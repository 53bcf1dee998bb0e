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

// OAuthConfig holds the caller supplied credentials and options of an OAuth service.
type OAuthConfig struct {
	apiKey        string
	apiSecret     string
	callback      string
	scope         string
	signatureType SignatureType
}

// NewOAuthConfig creates an OAuth configuration. An empty signature type means the
// strategy default is used.
func NewOAuthConfig(apiKey, apiSecret, callback, scope string, signatureType SignatureType) *OAuthConfig {
	return &OAuthConfig{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		callback:      callback,
		scope:         scope,
		signatureType: signatureType,
	}
}

// APIKey returns the consumer key / client id.
func (c *OAuthConfig) APIKey() string {
	return c.apiKey
}

// APISecret returns the consumer secret / client secret.
func (c *OAuthConfig) APISecret() string {
	return c.apiSecret
}

// Callback returns the callback / redirect URI.
func (c *OAuthConfig) Callback() string {
	return c.callback
}

// Scope returns the requested scope.
func (c *OAuthConfig) Scope() string {
	return c.scope
}

// HasScope reports whether a scope was configured.
func (c *OAuthConfig) HasScope() bool {
	return c.scope != ""
}

// SignatureType returns the signature type override, or an empty value.
func (c *OAuthConfig) SignatureType() SignatureType {
	return c.signatureType
}

// String returns a printable form of the configuration with the secret masked.
func (c *OAuthConfig) String() string {
	return fmt.Sprintf("OAuthConfig[apiKey=%s, apiSecret=%s, callback=%s, scope=%s, signatureType=%s]",
		c.apiKey, log.MaskString(c.apiSecret), c.callback, c.scope, c.signatureType)
}
