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
	"io"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
	"github.com/asgardeo/oauthclient/internal/system/log"
)

// Response is the fully buffered result of sending a Request. It is immutable.
type Response struct {
	code    int
	message string
	headers http.Header
	body    string
}

// newResponse reads the whole body of resp and closes it.
func newResponse(resp *http.Response, logger *log.Logger) (*Response, error) {
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("Failed to read response body", log.Error(err))
		return nil, serviceerror.WrapServiceError(constants.ErrorConnection, err, "Failed to read the response body")
	}

	message := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &Response{
		code:    resp.StatusCode,
		message: message,
		headers: resp.Header.Clone(),
		body:    string(body),
	}, nil
}

// Code returns the HTTP status code.
func (r *Response) Code() int {
	return r.code
}

// Message returns the HTTP status message.
func (r *Response) Message() string {
	return r.message
}

// Body returns the response body.
func (r *Response) Body() string {
	return r.body
}

// Headers returns the response headers, keeping the first value of repeated headers.
func (r *Response) Headers() map[string]string {
	headers := make(map[string]string, len(r.headers))
	for k, v := range r.headers {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return headers
}

// Header returns the first value of the named header, or an empty string.
func (r *Response) Header(name string) string {
	values := r.headers[textproto.CanonicalMIMEHeaderKey(name)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// IsSuccessful reports whether the status code is in the 2xx or 3xx range.
func (r *Response) IsSuccessful() bool {
	return r.code >= 200 && r.code < 400
}
