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

package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
)

// JSONExtractor reads access_token from a JSON object body.
type JSONExtractor struct{}

// Extract parses the body. access_token must be a non-empty string. Scalar members are kept
// as token parameters; nested objects and arrays are dropped.
func (e *JSONExtractor) Extract(body string) (*model.Token, error) {
	raw, err := decodeJSONObject(body)
	if err != nil {
		if params, ok := parseForm(body); ok {
			return nil, tokenExchangeError(body, providerErrorFromParams(params))
		}
		return nil, tokenExchangeError(body, nil)
	}

	fields := scalarFields(raw)
	token, isString := raw[constants.ParamAccessToken].(string)
	if !isString || token == "" {
		return nil, tokenExchangeError(body, providerErrorFromParams(fields))
	}
	delete(fields, constants.ParamAccessToken)

	return model.NewTokenWithParams(token, "", body, fields), nil
}

// parseJSONObject decodes a JSON or JSONP object and returns its scalar members as strings.
func parseJSONObject(body string) (map[string]string, error) {
	raw, err := decodeJSONObject(body)
	if err != nil {
		return nil, err
	}
	return scalarFields(raw), nil
}

// decodeJSONObject decodes a JSON object, also accepting the JSONP form callback( {...} );
func decodeJSONObject(body string) (map[string]interface{}, error) {
	trimmed := unwrapJSONP(strings.TrimSpace(body))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, errors.New("not a JSON object")
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	decoder.UseNumber()
	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func scalarFields(raw map[string]interface{}) map[string]string {
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch value := v.(type) {
		case string:
			fields[k] = value
		case json.Number:
			fields[k] = value.String()
		case bool:
			fields[k] = strconv.FormatBool(value)
		}
	}
	return fields
}

func unwrapJSONP(body string) string {
	if strings.HasPrefix(body, "{") {
		return body
	}
	start := strings.Index(body, "(")
	end := strings.LastIndex(body, ")")
	if start <= 0 || end < start {
		return body
	}
	return strings.TrimSpace(body[start+1 : end])
}
