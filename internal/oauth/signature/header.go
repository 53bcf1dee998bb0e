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

package signature

import (
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// HeaderExtractorInterface renders the OAuth parameters of a request as an Authorization header.
type HeaderExtractorInterface interface {
	Extract(req *model.Request) (string, error)
}

// HeaderExtractor renders OAuth 1.0a Authorization headers.
type HeaderExtractor struct{}

// NewHeaderExtractor creates a header extractor.
func NewHeaderExtractor() HeaderExtractorInterface {
	return &HeaderExtractor{}
}

// Extract returns `OAuth k1="v1", k2="v2"` with the OAuth parameters sorted and encoded.
func (h *HeaderExtractor) Extract(req *model.Request) (string, error) {
	if req == nil {
		return "", serviceerror.CustomServiceError(constants.ErrorSigning, "Cannot build a header for a nil request")
	}
	params := req.OAuthParameters()
	if params.Size() == 0 {
		return "", serviceerror.CustomServiceError(constants.ErrorSigning,
			"Cannot build an Authorization header for a request without OAuth parameters")
	}

	sorted := params.Sort().Params()
	pairs := make([]string, len(sorted))
	for i, p := range sorted {
		pairs[i] = p.EncodeQuoted()
	}
	return constants.AuthorizationHeaderPrefix + strings.Join(pairs, ", "), nil
}
