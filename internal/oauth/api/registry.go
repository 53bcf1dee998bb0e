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
	"sort"
	"strings"
	"sync"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

const loggerComponentName = "ProviderRegistry"

var (
	registryMu sync.RWMutex
	registry   = map[string]API{}
)

func init() {
	for _, strategy := range []API{
		BaiduAPI(), QQAPI(), WeiboAPI(), GitHubAPI(), GoogleAPI(), FacebookAPI(),
		TwitterAPI(), FlickrAPI(),
	} {
		registry[strategy.Name()] = strategy
	}
}

// Register adds a strategy under its provider name, replacing any strategy registered under
// the same name. The strategy must validate.
func Register(strategy API) error {
	if strategy == nil {
		return serviceerror.CustomServiceError(constants.ErrorInvalidConfiguration, "Cannot register a nil strategy")
	}
	if err := strategy.Validate(); err != nil {
		return err
	}

	name := normalize(strategy.Name())
	registryMu.Lock()
	_, replaced := registry[name]
	registry[name] = strategy
	registryMu.Unlock()

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Registered OAuth provider", log.String(log.LoggerKeyProvider, name),
		log.String(log.LoggerKeyOAuthVersion, string(strategy.Version())), log.Bool("replaced", replaced))
	return nil
}

// Lookup returns the strategy registered under the given provider name, ignoring case.
func Lookup(name string) (API, error) {
	registryMu.RLock()
	strategy, ok := registry[normalize(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, serviceerror.CustomServiceError(constants.ErrorUnknownProvider, "Unknown OAuth provider: "+name)
	}
	return strategy, nil
}

// Names returns the registered provider names in sorted order.
func Names() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()

	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
