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
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// SignatureType defines where the signature or access token is placed on a signed request.
type SignatureType string

const (
	// SignatureTypeHeader places the credentials in the Authorization header.
	SignatureTypeHeader SignatureType = "header"
	// SignatureTypeQueryString places the credentials in query string parameters.
	SignatureTypeQueryString SignatureType = "query_string"
)

// ParseSignatureType parses a signature type name. An empty name yields an empty type,
// meaning the strategy default applies.
func ParseSignatureType(name string) (SignatureType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "header":
		return SignatureTypeHeader, nil
	case "query_string", "querystring", "query":
		return SignatureTypeQueryString, nil
	}
	return "", serviceerror.CustomServiceError(constants.ErrorInvalidParameter, "Unknown signature type: "+name)
}
