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

// Package signature implements OAuth 1.0a request signing: the signature base string, the
// signature methods, the Authorization header and the nonce and timestamp sources.
package signature

import (
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/encoder"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// BaseStringExtractorInterface builds the signature base string of a request.
type BaseStringExtractorInterface interface {
	Extract(req *model.Request) (string, error)
}

// BaseStringExtractor builds base strings as defined in RFC 5849 section 3.4.1.
type BaseStringExtractor struct{}

// NewBaseStringExtractor creates a base string extractor.
func NewBaseStringExtractor() BaseStringExtractorInterface {
	return &BaseStringExtractor{}
}

// Extract returns VERB&encode(url)&encode(params) where url is the sanitized request URL and
// params holds the query string, form body and OAuth parameters sorted by key and value.
// oauth_signature and realm never take part in the base string.
func (b *BaseStringExtractor) Extract(req *model.Request) (string, error) {
	if req == nil || req.OAuthParameters().Size() == 0 {
		return "", serviceerror.CustomServiceError(constants.ErrorSigning,
			"Cannot build a base string for a request without OAuth parameters")
	}

	sanitizedURL, err := req.SanitizedURL()
	if err != nil {
		return "", serviceerror.WrapServiceError(constants.ErrorSigning, err,
			"Cannot build a base string for URL: "+req.URL())
	}

	params, err := req.QueryStringParameters()
	if err != nil {
		return "", serviceerror.WrapServiceError(constants.ErrorSigning, err,
			"Cannot read the query string of URL: "+req.URL())
	}
	params.AddAll(req.FormParameters())
	params.AddAll(req.OAuthParameters())
	params.RemoveIf(func(p model.Parameter) bool {
		return p.Key == constants.ParamSignature || p.Key == constants.ParamRealm
	})

	return strings.Join([]string{
		encoder.Encode(strings.ToUpper(req.Verb().String())),
		encoder.Encode(sanitizedURL),
		encoder.Encode(params.AsOAuthBaseString()),
	}, "&"), nil
}
