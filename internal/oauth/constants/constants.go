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

// Package constants defines the protocol constants and error definitions of the OAuth client engine.
package constants

// OAuth 1.0a protocol parameters.
const (
	ParamPrefix          = "oauth_"
	ParamToken           = "oauth_token"
	ParamTokenSecret     = "oauth_token_secret"
	ParamCallback        = "oauth_callback"
	ParamVerifier        = "oauth_verifier"
	ParamConsumerKey     = "oauth_consumer_key"
	ParamSignature       = "oauth_signature"
	ParamSignatureMethod = "oauth_signature_method"
	ParamTimestamp       = "oauth_timestamp"
	ParamNonce           = "oauth_nonce"
	ParamVersion         = "oauth_version"
	ParamCallbackConfirm = "oauth_callback_confirmed"
	ParamRealm           = "realm"
)

// OAuth 2.0 protocol parameters.
const (
	ParamClientID     = "client_id"
	ParamClientSecret = "client_secret"
	ParamRedirectURI  = "redirect_uri"
	ParamCode         = "code"
	ParamGrantType    = "grant_type"
	ParamAccessToken  = "access_token"
	ParamRefreshToken = "refresh_token"
	ParamExpiresIn    = "expires_in"
	ParamTokenType    = "token_type"
	ParamError        = "error"
	ParamErrorDesc    = "error_description"

	// OAuth 1.0a problem reporting extension.
	ParamProblem       = "oauth_problem"
	ParamProblemAdvice = "oauth_problem_advice"
)

// ParamScope is the scope parameter shared by both protocol versions.
const ParamScope = "scope"

// GrantTypeAuthorizationCode is the OAuth 2.0 authorization code grant type.
const GrantTypeAuthorizationCode = "authorization_code"

// Version10a is the value sent in the oauth_version parameter.
const Version10a = "1.0"

// OutOfBand is the callback value used when the provider shows the verifier to the user
// instead of redirecting.
const OutOfBand = "oob"

// AuthorizationHeaderPrefix prefixes the OAuth 1.0a Authorization header value.
const AuthorizationHeaderPrefix = "OAuth "
