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

package constants

import "github.com/asgardeo/oauthclient/internal/system/error/serviceerror"

// Client errors for the OAuth client engine.
var (
	// ErrorInvalidURL is the error when a URL cannot accept query parameters.
	ErrorInvalidURL = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1001",
		Message:          "Invalid URL",
		ErrorDescription: "The URL is not a valid absolute URL",
	}
	// ErrorMalformedURL is the error when the request URL cannot be parsed.
	ErrorMalformedURL = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1002",
		Message:          "Malformed URL",
		ErrorDescription: "The request URL could not be parsed",
	}
	// ErrorInvalidConfiguration is the error when required service configuration is missing.
	ErrorInvalidConfiguration = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1003",
		Message:          "Invalid configuration",
		ErrorDescription: "The OAuth service configuration is invalid or incomplete",
	}
	// ErrorSigning is the error when a request cannot be signed.
	ErrorSigning = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1004",
		Message:          "Signing failed",
		ErrorDescription: "The request could not be signed",
	}
	// ErrorRequestAlreadySent is the error when a request instance is sent a second time.
	ErrorRequestAlreadySent = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1005",
		Message:          "Request already sent",
		ErrorDescription: "A request can only be sent once, create a new request to retry",
	}
	// ErrorUnsupportedOperation is the error when an operation does not apply to the protocol version.
	ErrorUnsupportedOperation = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1006",
		Message:          "Unsupported operation",
		ErrorDescription: "The operation is not supported by this OAuth version",
	}
	// ErrorInvalidParameter is the error when a parameter is not allowed in its position.
	ErrorInvalidParameter = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1007",
		Message:          "Invalid parameter",
		ErrorDescription: "The parameter is not valid for this request",
	}
	// ErrorUnknownProvider is the error when no strategy is registered under a provider name.
	ErrorUnknownProvider = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "OAUTH-1008",
		Message:          "Unknown provider",
		ErrorDescription: "No OAuth provider is registered with the given name",
	}
)

// Server errors for the OAuth client engine.
var (
	// ErrorConnection is the error when the transport fails to reach the provider.
	ErrorConnection = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "OAUTH-5001",
		Message:          "Connection failed",
		ErrorDescription: "An error occurred while communicating with the remote server",
	}
	// ErrorTokenExchange is the error when the provider rejects or garbles a token request.
	ErrorTokenExchange = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "OAUTH-5002",
		Message:          "Token exchange failed",
		ErrorDescription: "The token endpoint did not return a usable token",
	}
)
