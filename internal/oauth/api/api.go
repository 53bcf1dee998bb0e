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

// Package api defines the provider strategies of the OAuth client engine. A strategy is data:
// endpoints, URL templates, verbs and the token response format of one provider.
package api

import (
	"github.com/asgardeo/oauthclient/internal/oauth/extractor"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/signature"
)

// Version is the OAuth protocol version a strategy speaks.
type Version string

const (
	// Version10a is OAuth 1.0a.
	Version10a Version = "1.0a"
	// Version20 is OAuth 2.0.
	Version20 Version = "2.0"
)

// API is the capability set every provider strategy supplies to the engine.
type API interface {
	Name() string
	Version() Version

	// RequestTokenEndpoint and RequestTokenVerb are empty for OAuth 2.0 strategies.
	RequestTokenEndpoint() string
	RequestTokenVerb() model.Verb
	AccessTokenEndpoint() string
	AccessTokenVerb() model.Verb

	// AuthorizationURL returns the URL the end user is sent to. OAuth 1.0a strategies need the
	// request token; OAuth 2.0 strategies ignore it.
	AuthorizationURL(cfg *model.OAuthConfig, requestToken *model.Token) (string, error)

	RequestTokenExtractor() extractor.TokenExtractor
	AccessTokenExtractor() extractor.TokenExtractor

	// SignatureType is the default placement of signature or bearer material.
	SignatureType() model.SignatureType
	// AccessTokenParameterName is the query parameter carrying an OAuth 2.0 bearer token.
	AccessTokenParameterName() string

	Signer() signature.Signer
	TimestampService() signature.TimestampServiceInterface
	BaseStringExtractor() signature.BaseStringExtractorInterface
	HeaderExtractor() signature.HeaderExtractorInterface

	// Validate reports every missing or invalid field of the strategy.
	Validate() error
}
