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

package http

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedHTTPClient delays outbound requests so that they do not exceed the limiter's rate.
// Requests are never retried; a request whose context ends while waiting fails immediately.
type RateLimitedHTTPClient struct {
	next    HTTPClientInterface
	limiter *rate.Limiter
}

// NewRateLimitedHTTPClient wraps the given client with the limiter.
func NewRateLimitedHTTPClient(next HTTPClientInterface, limiter *rate.Limiter) HTTPClientInterface {
	if next == nil {
		next = NewHTTPClient()
	}
	return &RateLimitedHTTPClient{
		next:    next,
		limiter: limiter,
	}
}

// NewRateLimitedHTTPClientPerSecond wraps the given client allowing requestsPerSecond requests
// per second with the given burst.
func NewRateLimitedHTTPClientPerSecond(next HTTPClientInterface, requestsPerSecond float64,
	burst int) HTTPClientInterface {
	return NewRateLimitedHTTPClient(next, rate.NewLimiter(rate.Limit(requestsPerSecond), burst))
}

// Do waits for the limiter and then executes the request with the wrapped client.
func (c *RateLimitedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.next.Do(req)
}

// WithTimeouts applies the timeouts to the wrapped client and keeps sharing the same limiter.
func (c *RateLimitedHTTPClient) WithTimeouts(connectTimeout, readTimeout time.Duration) HTTPClientInterface {
	tc, ok := c.next.(TimeoutConfigurable)
	if !ok {
		return c
	}
	return &RateLimitedHTTPClient{
		next:    tc.WithTimeouts(connectTimeout, readTimeout),
		limiter: c.limiter,
	}
}
