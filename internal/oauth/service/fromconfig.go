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

package service

import (
	"go.uber.org/multierr"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/system/config"
)

// NewServiceBuilderFromConfig creates a builder holding the settings of a configured provider
// and the shared HTTP settings. Further setters may still override them before Build.
func NewServiceBuilderFromConfig(httpCfg config.HTTPConfig, provider config.ProviderConfig) *ServiceBuilder {
	b := NewServiceBuilder().
		APIKey(provider.APIKey).
		APISecret(provider.APISecret).
		Callback(provider.Callback).
		Scope(provider.Scope).
		Timeouts(httpCfg.ConnectTimeout, httpCfg.ReadTimeout).
		RateLimit(httpCfg.RateLimit, httpCfg.RateBurst)

	if strategy, err := api.FromConfig(provider); err != nil {
		b.errs = multierr.Append(b.errs, err)
	} else {
		b.Provider(strategy)
	}

	if signatureType, err := model.ParseSignatureType(provider.SignatureType); err != nil {
		b.errs = multierr.Append(b.errs, err)
	} else {
		b.SignatureType(signatureType)
	}
	return b
}
