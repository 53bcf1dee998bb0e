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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	sysconst "github.com/asgardeo/oauthclient/internal/system/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	httpservice "github.com/asgardeo/oauthclient/internal/system/http"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

const requestLoggerComponentName = "OAuthRequest"

// RequestTuner adjusts the outbound HTTP request right before it is sent.
type RequestTuner func(req *http.Request)

// Request is a single outbound HTTP call. The verb and URL are fixed at construction and a
// request can be sent exactly once; build a new request to retry.
//
// Body parameters travel as an application/x-www-form-urlencoded body for POST, PUT and PATCH
// when no explicit payload is set. Otherwise they are appended to the query string.
type Request struct {
	verb           Verb
	url            string
	queryParams    *ParameterList
	bodyParams     *ParameterList
	oauthParams    *ParameterList
	headers        map[string]string
	payload        []byte
	hasPayload     bool
	charset        string
	connectTimeout time.Duration
	readTimeout    time.Duration
	keepAlive      bool
	tuner          RequestTuner
	sent           bool
}

// NewRequest creates a request for the given verb and URL. The URL may carry query parameters.
func NewRequest(verb Verb, rawURL string) *Request {
	return &Request{
		verb:        verb,
		url:         rawURL,
		queryParams: &ParameterList{},
		bodyParams:  &ParameterList{},
		oauthParams: &ParameterList{},
		headers:     make(map[string]string),
	}
}

// Verb returns the HTTP verb.
func (r *Request) Verb() Verb {
	return r.verb
}

// URL returns the URL the request was created with.
func (r *Request) URL() string {
	return r.url
}

// AddHeader sets a header, replacing any previous value.
func (r *Request) AddHeader(name, value string) {
	r.headers[textproto.CanonicalMIMEHeaderKey(name)] = value
}

// RemoveHeader deletes a header.
func (r *Request) RemoveHeader(name string) {
	delete(r.headers, textproto.CanonicalMIMEHeaderKey(name))
}

// Header returns the value of a header.
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.headers[textproto.CanonicalMIMEHeaderKey(name)]
	return v, ok
}

// Headers returns a copy of the request headers.
func (r *Request) Headers() map[string]string {
	copied := make(map[string]string, len(r.headers))
	for k, v := range r.headers {
		copied[k] = v
	}
	return copied
}

// AddQueryParameter appends a query string parameter.
func (r *Request) AddQueryParameter(key, value string) {
	r.queryParams.Add(key, value)
}

// RemoveQueryParameter deletes every added query string parameter with the given key.
// Parameters embedded in the URL itself are not affected.
func (r *Request) RemoveQueryParameter(key string) int {
	return r.queryParams.Remove(key)
}

// RemoveQueryParametersIf deletes every added query string parameter matching the predicate.
func (r *Request) RemoveQueryParametersIf(match func(Parameter) bool) int {
	return r.queryParams.RemoveIf(match)
}

// AddBodyParameter appends a body parameter.
func (r *Request) AddBodyParameter(key, value string) {
	r.bodyParams.Add(key, value)
}

// AddOAuthParameter appends an OAuth protocol parameter. Only oauth_* parameters, scope and
// realm are accepted.
func (r *Request) AddOAuthParameter(key, value string) error {
	if !strings.HasPrefix(key, constants.ParamPrefix) && key != constants.ParamScope &&
		key != constants.ParamRealm {
		return serviceerror.CustomServiceError(constants.ErrorInvalidParameter,
			fmt.Sprintf("OAuth parameters must start with '%s', got: %s", constants.ParamPrefix, key))
	}
	r.oauthParams.Add(key, value)
	return nil
}

// RemoveOAuthParameters deletes every OAuth protocol parameter.
func (r *Request) RemoveOAuthParameters() {
	r.oauthParams = &ParameterList{}
}

// OAuthParameters returns a copy of the OAuth protocol parameters.
func (r *Request) OAuthParameters() *ParameterList {
	return r.oauthParams.Clone()
}

// BodyParameters returns a copy of the body parameters.
func (r *Request) BodyParameters() *ParameterList {
	return r.bodyParams.Clone()
}

// FormParameters returns the body parameters that are sent in a form encoded body.
// The list is empty when the verb carries no body or an explicit payload is set.
func (r *Request) FormParameters() *ParameterList {
	if !r.sendsForm() {
		return &ParameterList{}
	}
	return r.bodyParams.Clone()
}

// QueryStringParameters returns every parameter that ends up in the query string: the ones
// embedded in the URL, the added ones and body parameters that cannot travel in a form body.
func (r *Request) QueryStringParameters() (*ParameterList, error) {
	parsed, err := url.Parse(r.url)
	if err != nil {
		return nil, serviceerror.WrapServiceError(constants.ErrorMalformedURL, err, "Malformed URL: "+r.url)
	}

	result := &ParameterList{}
	if err := result.AddQueryString(parsed.RawQuery); err != nil {
		return nil, err
	}
	result.AddAll(r.queryParams)
	if !r.sendsForm() {
		result.AddAll(r.bodyParams)
	}
	return result, nil
}

// SetPayload sets an explicit request body. It replaces the form encoded body.
func (r *Request) SetPayload(payload string) {
	r.SetPayloadBytes([]byte(payload))
}

// SetPayloadBytes sets an explicit request body. It replaces the form encoded body.
func (r *Request) SetPayloadBytes(payload []byte) {
	r.payload = append([]byte(nil), payload...)
	r.hasPayload = true
}

// BodyContents returns the body that is sent for verbs carrying a body.
func (r *Request) BodyContents() []byte {
	if r.hasPayload {
		return append([]byte(nil), r.payload...)
	}
	return []byte(r.bodyParams.AsFormURLEncodedString())
}

// SetCharset sets the charset advertised for form encoded bodies.
func (r *Request) SetCharset(charset string) {
	r.charset = charset
}

// Charset returns the body charset, defaulting to UTF-8.
func (r *Request) Charset() string {
	if r.charset == "" {
		return sysconst.DefaultCharset
	}
	return r.charset
}

// SetConnectTimeout bounds the time spent establishing the connection.
func (r *Request) SetConnectTimeout(d time.Duration) {
	r.connectTimeout = d
}

// SetReadTimeout bounds the time spent waiting for the response.
func (r *Request) SetReadTimeout(d time.Duration) {
	r.readTimeout = d
}

// ConnectTimeout returns the connect timeout, zero when unset.
func (r *Request) ConnectTimeout() time.Duration {
	return r.connectTimeout
}

// ReadTimeout returns the read timeout, zero when unset.
func (r *Request) ReadTimeout() time.Duration {
	return r.readTimeout
}

// SetConnectionKeepAlive controls whether the underlying connection may be reused after the
// response has been read. It is closed by default.
func (r *Request) SetConnectionKeepAlive(keepAlive bool) {
	r.keepAlive = keepAlive
}

// SetTuner registers a hook that sees the final HTTP request, after signing and encoding.
func (r *Request) SetTuner(tuner RequestTuner) {
	r.tuner = tuner
}

// CompleteURL returns the URL with every query string parameter appended.
func (r *Request) CompleteURL() (string, error) {
	params := r.queryParams.Clone()
	if !r.sendsForm() {
		params.AddAll(r.bodyParams)
	}
	completeURL, err := params.AppendTo(r.url)
	if err != nil {
		return "", serviceerror.WrapServiceError(constants.ErrorMalformedURL, err, "Malformed URL: "+r.url)
	}
	return completeURL, nil
}

// SanitizedURL returns the URL normalized for OAuth 1.0a signature base strings: scheme and
// host in lower case, default ports removed, no query string or fragment.
func (r *Request) SanitizedURL() (string, error) {
	parsed, err := parseAbsoluteURL(r.url)
	if err != nil {
		return "", err
	}

	scheme := strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := parsed.Port(); port != "" && !isDefaultPort(scheme, port) {
		host = host + ":" + port
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path, nil
}

// IsSent reports whether Send has been called.
func (r *Request) IsSent() bool {
	return r.sent
}

// String returns a short description of the request.
func (r *Request) String() string {
	return fmt.Sprintf("@Request(%s %s)", r.verb, r.url)
}

// Send executes the request with the given client and returns the fully buffered response.
// The connection is released before Send returns, on every path.
func (r *Request) Send(client httpservice.HTTPClientInterface) (*Response, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, requestLoggerComponentName))

	if r.sent {
		return nil, serviceerror.CustomServiceError(constants.ErrorRequestAlreadySent, "")
	}
	r.sent = true

	if client == nil {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidConfiguration,
			"No HTTP client is configured to send the request")
	}

	httpReq, cancel, err := r.buildHTTPRequest()
	if err != nil {
		return nil, err
	}
	defer cancel()
	if r.tuner != nil {
		r.tuner(httpReq)
	}

	if r.connectTimeout > 0 || r.readTimeout > 0 {
		if tc, ok := client.(httpservice.TimeoutConfigurable); ok {
			client = tc.WithTimeouts(r.connectTimeout, r.readTimeout)
		}
	}

	if logger.IsDebugEnabled() {
		sanitized, _ := r.SanitizedURL()
		logger.Debug("Sending request", log.String("verb", string(r.verb)), log.String("url", sanitized))
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		logger.Debug("Request failed at the transport level", log.Error(err))
		return nil, serviceerror.WrapServiceError(constants.ErrorConnection, err, "")
	}

	return newResponse(resp, logger)
}

func (r *Request) buildHTTPRequest() (*http.Request, context.CancelFunc, error) {
	if _, err := parseAbsoluteURL(r.url); err != nil {
		return nil, nil, err
	}
	completeURL, err := r.CompleteURL()
	if err != nil {
		return nil, nil, err
	}

	var body io.Reader
	if r.verb.HasBody() {
		body = bytes.NewReader(r.BodyContents())
	}

	// The connect timeout alone bounds dialing only, so the deadline needs a read timeout.
	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if r.readTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, max(r.connectTimeout, 0)+r.readTimeout)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(r.verb), completeURL, body)
	if err != nil {
		cancel()
		return nil, nil, serviceerror.WrapServiceError(constants.ErrorMalformedURL, err, "Malformed URL: "+r.url)
	}

	keys := make([]string, 0, len(r.headers))
	for k := range r.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		httpReq.Header.Set(k, r.headers[k])
	}

	if r.sendsForm() && httpReq.Header.Get(sysconst.ContentTypeHeaderName) == "" {
		contentType := sysconst.ContentTypeFormURLEncoded
		if r.charset != "" {
			contentType += "; charset=" + r.charset
		}
		httpReq.Header.Set(sysconst.ContentTypeHeaderName, contentType)
	}
	httpReq.Close = !r.keepAlive

	return httpReq, cancel, nil
}

func (r *Request) sendsForm() bool {
	return r.verb.HasBody() && !r.hasPayload
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}

func parseAbsoluteURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, serviceerror.WrapServiceError(constants.ErrorMalformedURL, err, "Malformed URL: "+rawURL)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorMalformedURL, "Malformed URL: "+rawURL)
	}
	return parsed, nil
}
