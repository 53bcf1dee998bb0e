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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	httpservice "github.com/asgardeo/oauthclient/internal/system/http"
	"github.com/asgardeo/oauthclient/tests/mocks/httpmock"
)

type RequestTestSuite struct {
	suite.Suite
	client httpservice.HTTPClientInterface
}

func TestRequestSuite(t *testing.T) {
	suite.Run(t, new(RequestTestSuite))
}

func (suite *RequestTestSuite) SetupTest() {
	suite.client = httpservice.NewHTTPClient()
}

func (suite *RequestTestSuite) TestSendGetAppendsQueryParameters() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(http.MethodGet, r.Method)
		suite.Equal("1", r.URL.Query().Get("existing"))
		suite.Equal("hello world", r.URL.Query().Get("q"))
		suite.Equal("b", r.URL.Query().Get("form"))
		suite.Equal("custom", r.Header.Get("X-Custom"))
		w.Header().Set("X-Reply", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok body"))
	}))
	defer server.Close()

	req := NewRequest(VerbGet, server.URL+"/resource?existing=1")
	req.AddQueryParameter("q", "hello world")
	req.AddBodyParameter("form", "b")
	req.AddHeader("x-custom", "custom")

	resp, err := req.Send(suite.client)
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, resp.Code())
	suite.Equal("OK", resp.Message())
	suite.Equal("ok body", resp.Body())
	suite.Equal("yes", resp.Header("x-reply"))
	suite.Equal("yes", resp.Headers()["X-Reply"])
	suite.True(resp.IsSuccessful())
	suite.True(req.IsSent())
}

func (suite *RequestTestSuite) TestSendPostUsesFormBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(http.MethodPost, r.Method)
		suite.Equal("application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		suite.Equal("code=abc&redirect_uri=http%3A%2F%2Fexample.com%2Fcb", string(body))
		suite.Equal("", r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := NewRequest(VerbPost, server.URL)
	req.AddBodyParameter("code", "abc")
	req.AddBodyParameter("redirect_uri", "http://example.com/cb")

	_, err := req.Send(suite.client)
	suite.NoError(err)
}

func (suite *RequestTestSuite) TestSendPostWithPayloadMovesParametersToQuery() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		suite.Equal(`{"a":1}`, string(body))
		suite.Equal("x", r.URL.Query().Get("param"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	req := NewRequest(VerbPost, server.URL)
	req.AddBodyParameter("param", "x")
	req.AddHeader("Content-Type", "application/json")
	req.SetPayload(`{"a":1}`)

	suite.Empty(req.FormParameters().Params())

	resp, err := req.Send(suite.client)
	suite.NoError(err)
	suite.Equal(http.StatusCreated, resp.Code())
}

func (suite *RequestTestSuite) TestSendPutWithCharset() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(http.MethodPut, r.Method)
		suite.Equal("application/x-www-form-urlencoded; charset=ISO-8859-1", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req := NewRequest(VerbPut, server.URL)
	req.SetCharset("ISO-8859-1")
	req.AddBodyParameter("a", "b")

	resp, err := req.Send(suite.client)
	suite.NoError(err)
	suite.Equal("ISO-8859-1", req.Charset())
	suite.Equal(http.StatusNoContent, resp.Code())
}

func (suite *RequestTestSuite) TestSendTwiceFails() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := NewRequest(VerbGet, server.URL)
	_, err := req.Send(suite.client)
	suite.NoError(err)

	resp, err := req.Send(suite.client)
	suite.Nil(resp)
	suite.True(errors.Is(err, &constants.ErrorRequestAlreadySent))
}

func (suite *RequestTestSuite) TestSendMalformedURL() {
	for _, u := range []string{"://missing-scheme", "relative/path", "http://[::1"} {
		req := NewRequest(VerbGet, u)
		resp, err := req.Send(suite.client)
		suite.Nil(resp)
		suite.True(errors.Is(err, &constants.ErrorMalformedURL), u)
	}
}

func (suite *RequestTestSuite) TestSendConnectionError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	req := NewRequest(VerbGet, server.URL)
	resp, err := req.Send(suite.client)
	suite.Nil(resp)
	suite.True(errors.Is(err, &constants.ErrorConnection))
	suite.NotNil(errors.Unwrap(err))
}

func (suite *RequestTestSuite) TestSendReadTimeout() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := NewRequest(VerbGet, server.URL)
	req.SetConnectTimeout(20 * time.Millisecond)
	req.SetReadTimeout(30 * time.Millisecond)

	resp, err := req.Send(suite.client)
	suite.Nil(resp)
	suite.True(errors.Is(err, &constants.ErrorConnection))
}

func (suite *RequestTestSuite) TestSendConnectTimeoutAllowsSlowResponse() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	req := NewRequest(VerbGet, server.URL)
	req.SetConnectTimeout(100 * time.Millisecond)

	resp, err := req.Send(suite.client)
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, resp.Code())
	suite.Equal("late", resp.Body())
}

func (suite *RequestTestSuite) TestSendAppliesTuner() {
	var received *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
	}))
	defer server.Close()

	req := NewRequest(VerbPost, server.URL)
	req.AddBodyParameter("status", "hello")
	req.AddHeader("X-Trace", "original")
	req.SetTuner(func(httpReq *http.Request) {
		suite.Equal("original", httpReq.Header.Get("X-Trace"))
		suite.True(strings.HasPrefix(httpReq.Header.Get("Content-Type"), "application/x-www-form-urlencoded"))
		httpReq.Header.Set("X-Trace", "tuned")
		httpReq.Header.Set("User-Agent", "oauthflow-test")
	})

	_, err := req.Send(suite.client)
	suite.Require().NoError(err)
	suite.Require().NotNil(received)
	suite.Equal("tuned", received.Header.Get("X-Trace"))
	suite.Equal("oauthflow-test", received.UserAgent())
}

func (suite *RequestTestSuite) TestSendWithoutClient() {
	req := NewRequest(VerbGet, "http://example.com")
	_, err := req.Send(nil)
	suite.True(errors.Is(err, &constants.ErrorInvalidConfiguration))
}

func (suite *RequestTestSuite) TestSendClosesBodyWithMockClient() {
	mockClient := httpmock.NewHTTPClientInterfaceMock(suite.T())
	body := &trackingBody{Reader: strings.NewReader("payload")}
	mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		return r.URL.String() == "https://api.example.com/me?access_token=abc" && r.Close
	})).Return(&http.Response{
		StatusCode: http.StatusUnauthorized,
		Status:     "401 Unauthorized",
		Header:     http.Header{},
		Body:       body,
	}, nil)

	req := NewRequest(VerbGet, "https://api.example.com/me")
	req.AddQueryParameter("access_token", "abc")

	resp, err := req.Send(mockClient)
	suite.NoError(err)
	suite.Equal("Unauthorized", resp.Message())
	suite.Equal("payload", resp.Body())
	suite.False(resp.IsSuccessful())
	suite.True(body.closed)
}

func (suite *RequestTestSuite) TestSendClosesBodyOnReadFailure() {
	mockClient := httpmock.NewHTTPClientInterfaceMock(suite.T())
	body := &trackingBody{Reader: &failingReader{}}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{},
		Body:       body,
	}, nil)

	resp, err := NewRequest(VerbGet, "https://api.example.com").Send(mockClient)
	suite.Nil(resp)
	suite.True(errors.Is(err, &constants.ErrorConnection))
	suite.True(body.closed)
}

func (suite *RequestTestSuite) TestKeepAlive() {
	mockClient := httpmock.NewHTTPClientInterfaceMock(suite.T())
	mockClient.On("Do", mock.MatchedBy(func(r *http.Request) bool {
		return !r.Close
	})).Return(&http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil)

	req := NewRequest(VerbGet, "https://api.example.com")
	req.SetConnectionKeepAlive(true)
	resp, err := req.Send(mockClient)
	suite.NoError(err)
	suite.Equal("OK", resp.Message())
}

func (suite *RequestTestSuite) TestQueryStringParameters() {
	req := NewRequest(VerbPost, "https://example.com/path?a=1&b=two%20words")
	req.AddQueryParameter("c", "3")
	req.AddBodyParameter("d", "4")

	params, err := req.QueryStringParameters()
	suite.NoError(err)
	suite.Equal("a=1&b=two%20words&c=3", params.AsFormURLEncodedString())
	suite.Equal("d=4", req.FormParameters().AsFormURLEncodedString())

	getReq := NewRequest(VerbGet, "https://example.com/path")
	getReq.AddBodyParameter("d", "4")
	params, err = getReq.QueryStringParameters()
	suite.NoError(err)
	suite.Equal("d=4", params.AsFormURLEncodedString())
	suite.Equal(0, getReq.FormParameters().Size())
}

func (suite *RequestTestSuite) TestSanitizedURL() {
	testCases := []struct {
		url      string
		expected string
	}{
		{"HTTP://Example.COM:80/r%20v/X?id=123", "http://example.com/r%20v/X"},
		{"https://www.example.net:8080/?q=1", "https://www.example.net:8080/"},
		{"https://example.com:443", "https://example.com/"},
		{"https://example.com/token#frag", "https://example.com/token"},
		{"http://[::1]:8080/a", "http://[::1]:8080/a"},
	}

	for _, tc := range testCases {
		sanitized, err := NewRequest(VerbGet, tc.url).SanitizedURL()
		suite.NoError(err)
		suite.Equal(tc.expected, sanitized)
	}
}

func (suite *RequestTestSuite) TestAddOAuthParameter() {
	req := NewRequest(VerbGet, "https://example.com")
	suite.NoError(req.AddOAuthParameter("oauth_token", "t"))
	suite.NoError(req.AddOAuthParameter("scope", "read"))
	err := req.AddOAuthParameter("token", "t")
	suite.True(errors.Is(err, &constants.ErrorInvalidParameter))

	suite.Equal(2, req.OAuthParameters().Size())
	req.RemoveOAuthParameters()
	suite.Equal(0, req.OAuthParameters().Size())
}

func (suite *RequestTestSuite) TestHeaders() {
	req := NewRequest(VerbGet, "https://example.com")
	req.AddHeader("authorization", "Bearer x")

	v, ok := req.Header("Authorization")
	suite.True(ok)
	suite.Equal("Bearer x", v)

	headers := req.Headers()
	headers["Authorization"] = "changed"
	v, _ = req.Header("Authorization")
	suite.Equal("Bearer x", v)

	req.RemoveHeader("AUTHORIZATION")
	_, ok = req.Header("Authorization")
	suite.False(ok)
}

func (suite *RequestTestSuite) TestAccessors() {
	req := NewRequest(VerbDelete, "https://example.com/x")
	req.SetConnectTimeout(time.Second)
	req.SetReadTimeout(2 * time.Second)

	suite.Equal(VerbDelete, req.Verb())
	suite.Equal("https://example.com/x", req.URL())
	suite.Equal(time.Second, req.ConnectTimeout())
	suite.Equal(2*time.Second, req.ReadTimeout())
	suite.Equal("UTF-8", req.Charset())
	suite.Equal("@Request(DELETE https://example.com/x)", req.String())
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

type failingReader struct{}

func (f *failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (suite *RequestTestSuite) TestRemoveQueryParameters() {
	req := NewRequest(VerbGet, "https://example.com/?oauth_keep=1")
	req.AddQueryParameter("oauth_nonce", "n")
	req.AddQueryParameter("oauth_token", "t")
	req.AddQueryParameter("page", "2")

	suite.Equal(1, req.RemoveQueryParameter("page"))
	suite.Equal(2, req.RemoveQueryParametersIf(func(p Parameter) bool {
		return strings.HasPrefix(p.Key, "oauth_")
	}))

	completeURL, err := req.CompleteURL()
	suite.NoError(err)
	suite.Equal("https://example.com/?oauth_keep=1", completeURL)
}
