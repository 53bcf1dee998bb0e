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
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/time/rate"
)

// HTTPClientTestSuite defines the test suite for HTTP client service.
type HTTPClientTestSuite struct {
	suite.Suite
}

// TestHTTPClientSuite runs the HTTP client test suite.
func TestHTTPClientSuite(t *testing.T) {
	suite.Run(t, new(HTTPClientTestSuite))
}

func (suite *HTTPClientTestSuite) TestNewHTTPClient() {
	client := NewHTTPClient()
	assert.NotNil(suite.T(), client)
	assert.Implements(suite.T(), (*HTTPClientInterface)(nil), client)

	httpClient := client.(*HTTPClient)
	assert.Equal(suite.T(), DefaultTimeout, httpClient.client.Timeout)
}

func (suite *HTTPClientTestSuite) TestNewHTTPClientWithTimeout() {
	timeout := 5 * time.Second
	client := NewHTTPClientWithTimeout(timeout)

	httpClient := client.(*HTTPClient)
	assert.Equal(suite.T(), timeout, httpClient.client.Timeout)
}

func (suite *HTTPClientTestSuite) TestNewHTTPClientWithNilConfig() {
	client := NewHTTPClientWithConfig(nil)
	httpClient := client.(*HTTPClient)
	assert.NotNil(suite.T(), httpClient.client)
	assert.Equal(suite.T(), DefaultTimeout, httpClient.client.Timeout)
}

func (suite *HTTPClientTestSuite) TestDoWithPost() {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "POST", r.Method)
		assert.Equal(suite.T(), "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))
	defer testServer.Close()

	client := NewHTTPClient()
	req, err := http.NewRequest("POST", testServer.URL, strings.NewReader("a=b"))
	assert.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}

func (suite *HTTPClientTestSuite) TestWithTimeoutsZeroReturnsSameClient() {
	client := NewHTTPClient().(*HTTPClient)
	assert.Same(suite.T(), client, client.WithTimeouts(0, 0))
}

func (suite *HTTPClientTestSuite) TestWithTimeoutsConfiguresTransport() {
	client := NewHTTPClient().(*HTTPClient)

	derived := client.WithTimeouts(2*time.Second, 3*time.Second).(*HTTPClient)
	assert.NotSame(suite.T(), client, derived)
	assert.Equal(suite.T(), 5*time.Second, derived.client.Timeout)

	transport, ok := derived.client.Transport.(*http.Transport)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), 3*time.Second, transport.ResponseHeaderTimeout)
	assert.Equal(suite.T(), 2*time.Second, transport.TLSHandshakeTimeout)
	assert.NotNil(suite.T(), transport.DialContext)

	// The original client is left untouched.
	assert.Equal(suite.T(), DefaultTimeout, client.client.Timeout)
}

func (suite *HTTPClientTestSuite) TestWithTimeoutsKeepsWrappingTransport() {
	wrapping := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return http.DefaultTransport.RoundTrip(r)
	})
	client := NewHTTPClientWithConfig(&http.Client{Transport: wrapping}).(*HTTPClient)

	derived := client.WithTimeouts(time.Second, time.Second).(*HTTPClient)
	_, isFunc := derived.client.Transport.(roundTripperFunc)
	assert.True(suite.T(), isFunc)
	assert.Equal(suite.T(), 2*time.Second, derived.client.Timeout)
}

func (suite *HTTPClientTestSuite) TestWithTimeoutsConnectOnlyKeepsOverallTimeout() {
	client := NewHTTPClient().(*HTTPClient)

	derived := client.WithTimeouts(100*time.Millisecond, 0).(*HTTPClient)
	assert.Equal(suite.T(), DefaultTimeout, derived.client.Timeout)
	transport, ok := derived.client.Transport.(*http.Transport)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), 100*time.Millisecond, transport.TLSHandshakeTimeout)
	assert.Zero(suite.T(), transport.ResponseHeaderTimeout)
}

func (suite *HTTPClientTestSuite) TestWithTimeoutsConnectOnlyAllowsSlowResponse() {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	client := NewHTTPClient().(*HTTPClient).WithTimeouts(100*time.Millisecond, 0)
	req, err := http.NewRequest("GET", testServer.URL, nil)
	assert.NoError(suite.T(), err)

	resp, err := client.Do(req)
	if assert.NoError(suite.T(), err) {
		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func (suite *HTTPClientTestSuite) TestWithTimeoutsReadTimeoutExpires() {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	client := NewHTTPClient().(*HTTPClient).WithTimeouts(0, 50*time.Millisecond)
	req, err := http.NewRequest("GET", testServer.URL, nil)
	assert.NoError(suite.T(), err)

	resp, err := client.Do(req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
}

func (suite *HTTPClientTestSuite) TestDoWithError() {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	testServer.Close()

	client := NewHTTPClient()
	req, err := http.NewRequest("GET", testServer.URL, nil)
	assert.NoError(suite.T(), err)

	resp, err := client.Do(req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
}

func (suite *HTTPClientTestSuite) TestRateLimitedClientPassesThrough() {
	calls := 0
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	client := NewRateLimitedHTTPClientPerSecond(NewHTTPClient(), 100, 2)
	for i := 0; i < 2; i++ {
		req, err := http.NewRequest("GET", testServer.URL, nil)
		assert.NoError(suite.T(), err)
		resp, err := client.Do(req)
		assert.NoError(suite.T(), err)
		_ = resp.Body.Close()
	}
	assert.Equal(suite.T(), 2, calls)
}

func (suite *HTTPClientTestSuite) TestRateLimitedClientHonoursContext() {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	assert.True(suite.T(), limiter.Allow())

	client := NewRateLimitedHTTPClient(NewHTTPClient(), limiter)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", "http://127.0.0.1:1", nil)
	assert.NoError(suite.T(), err)

	resp, err := client.Do(req)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), resp)
}

func (suite *HTTPClientTestSuite) TestRateLimitedClientWithTimeouts() {
	limiter := rate.NewLimiter(rate.Inf, 1)
	client := NewRateLimitedHTTPClient(NewHTTPClient(), limiter).(*RateLimitedHTTPClient)

	derived, ok := client.WithTimeouts(time.Second, time.Second).(*RateLimitedHTTPClient)
	assert.True(suite.T(), ok)
	assert.Same(suite.T(), limiter, derived.limiter)
	assert.Equal(suite.T(), 2*time.Second, derived.next.(*HTTPClient).client.Timeout)
}
