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

package api

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/extractor"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/signature"
	"github.com/asgardeo/oauthclient/internal/system/config"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// FromConfig resolves the strategy of a configured provider. Providers without a strategy
// section are looked up in the registry, the others are built from their endpoints.
func FromConfig(provider config.ProviderConfig) (API, error) {
	if provider.Strategy == nil {
		return Lookup(provider.Name)
	}

	s := provider.Strategy
	var errs error
	parseVerb := func(field, name string) model.Verb {
		if name == "" {
			return ""
		}
		verb, err := model.ParseVerb(name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return verb
	}
	signatureType, err := model.ParseSignatureType(s.SignatureType)
	if err != nil {
		errs = multierr.Append(errs, err)
	}

	var strategy API
	switch Version(s.Version) {
	case Version10a:
		oauth1 := &OAuth10aAPI{
			ProviderName:         provider.Name,
			RequestTokenURL:      s.RequestTokenURL,
			RequestTokenHTTPVerb: parseVerb("request_token_verb", s.RequestTokenVerb),
			AccessTokenURL:       s.AccessTokenURL,
			AccessTokenHTTPVerb:  parseVerb("access_token_verb", s.AccessTokenVerb),
			AuthorizeURLTemplate: s.AuthorizeURL,
			DefaultSignatureType: signatureType,
		}
		if s.RSAPrivateKeyFile != "" {
			key, err := signature.LoadRSAPrivateKey(s.RSAPrivateKeyFile)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("rsa_private_key_file: %w", err))
			} else {
				oauth1.SignatureMethod = signature.NewRSASHA1Signer(key)
			}
		}
		strategy = oauth1
	case Version20:
		strategy = &OAuth20API{
			ProviderName:               provider.Name,
			AuthorizeURLTemplate:       s.AuthorizeURL,
			ScopedAuthorizeURLTemplate: s.ScopedAuthorizeURL,
			AccessTokenURL:             s.AccessTokenURL,
			AccessTokenHTTPVerb:        parseVerb("access_token_verb", s.AccessTokenVerb),
			TokenFormat:                extractor.Format(s.TokenFormat),
			DefaultSignatureType:       signatureType,
			BearerParameterName:        s.BearerParameter,
		}
	default:
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidConfiguration,
			fmt.Sprintf("Unsupported OAuth version %q for provider %q", s.Version, provider.Name))
	}

	if errs != nil {
		return nil, wrapValidation(provider.Name, errs)
	}
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	return strategy, nil
}
