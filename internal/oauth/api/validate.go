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
	"net/url"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

func verbOrDefault(verb, fallback model.Verb) model.Verb {
	if verb == "" {
		return fallback
	}
	return verb
}

func validateEndpoint(name, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%s is required", name)
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s is not an absolute URL: %q", name, endpoint)
	}
	return nil
}

func wrapValidation(provider string, err error) error {
	if err == nil {
		return nil
	}
	return serviceerror.WrapServiceError(constants.ErrorInvalidConfiguration, err,
		fmt.Sprintf("Invalid strategy for provider %q", provider))
}
