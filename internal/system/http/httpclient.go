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

// Package http provides the HTTP transport used for outbound OAuth requests.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is the overall timeout applied by NewHTTPClient.
const DefaultTimeout = 30 * time.Second

// HTTPClientInterface defines the interface for HTTP client operations.
type HTTPClientInterface interface {
	// Do executes an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// TimeoutConfigurable is implemented by clients that can derive a copy of themselves
// with connect and read timeouts applied.
type TimeoutConfigurable interface {
	// WithTimeouts returns a client using the given timeouts. A zero duration leaves
	// the corresponding timeout unchanged.
	WithTimeouts(connectTimeout, readTimeout time.Duration) HTTPClientInterface
}

// HTTPClient implements HTTPClientInterface on top of net/http.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new HTTPClient with default settings.
func NewHTTPClient() HTTPClientInterface {
	return NewHTTPClientWithTimeout(DefaultTimeout)
}

// NewHTTPClientWithTimeout creates a new HTTPClient with a custom timeout.
func NewHTTPClientWithTimeout(timeout time.Duration) HTTPClientInterface {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewHTTPClientWithConfig creates a new HTTPClient with custom configuration.
func NewHTTPClientWithConfig(client *http.Client) HTTPClientInterface {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{
		client: client,
	}
}

// Do executes an HTTP request and returns an HTTP response.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// WithTimeouts returns a copy of the client that bounds the connection phase by connectTimeout
// and waiting for the response by readTimeout. When a read timeout is set the overall client
// timeout becomes their sum; a connect timeout alone never limits reading the response.
func (c *HTTPClient) WithTimeouts(connectTimeout, readTimeout time.Duration) HTTPClientInterface {
	if connectTimeout <= 0 && readTimeout <= 0 {
		return c
	}

	var transport *http.Transport
	switch t := c.client.Transport.(type) {
	case nil:
		transport = http.DefaultTransport.(*http.Transport).Clone()
	case *http.Transport:
		transport = t.Clone()
	default:
		// Wrapping round trippers are kept as they are, only the overall timeout applies.
		return &HTTPClient{
			client: &http.Client{
				Transport:     c.client.Transport,
				CheckRedirect: c.client.CheckRedirect,
				Jar:           c.client.Jar,
				Timeout:       c.overallTimeout(connectTimeout, readTimeout),
			},
		}
	}

	if connectTimeout > 0 {
		dialer := &net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}
		transport.DialContext = dialer.DialContext
		transport.TLSHandshakeTimeout = connectTimeout
	}
	if readTimeout > 0 {
		transport.ResponseHeaderTimeout = readTimeout
	}

	return &HTTPClient{
		client: &http.Client{
			Transport:     transport,
			CheckRedirect: c.client.CheckRedirect,
			Jar:           c.client.Jar,
			Timeout:       c.overallTimeout(connectTimeout, readTimeout),
		},
	}
}

func (c *HTTPClient) overallTimeout(connectTimeout, readTimeout time.Duration) time.Duration {
	if readTimeout <= 0 {
		return c.client.Timeout
	}
	if connectTimeout < 0 {
		connectTimeout = 0
	}
	return connectTimeout + readTimeout
}
