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

// Package model defines the values exchanged by the OAuth client engine: parameter lists,
// requests and responses, tokens, verifiers and the service configuration.
package model

import (
	"net/url"
	"sort"
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/encoder"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// Parameter is a single key/value pair.
type Parameter struct {
	Key   string
	Value string
}

// Encode returns the pair as key=value with both sides percent-encoded.
func (p Parameter) Encode() string {
	return encoder.Encode(p.Key) + "=" + encoder.Encode(p.Value)
}

// EncodeQuoted returns the pair as key="value" with both sides percent-encoded.
func (p Parameter) EncodeQuoted() string {
	return encoder.Encode(p.Key) + `="` + encoder.Encode(p.Value) + `"`
}

// ParameterList is an ordered multimap of parameters. Keys may repeat and iteration
// follows insertion order. The zero value is an empty list ready to use.
type ParameterList struct {
	params []Parameter
}

// NewParameterList creates a list holding the given parameters.
func NewParameterList(params ...Parameter) *ParameterList {
	p := &ParameterList{}
	p.params = append(p.params, params...)
	return p
}

// NewParameterListFromMap creates a list from a map. Keys are added in sorted order so
// the result does not depend on map iteration.
func NewParameterListFromMap(m map[string]string) *ParameterList {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := &ParameterList{}
	for _, k := range keys {
		p.Add(k, m[k])
	}
	return p
}

// Add appends a parameter.
func (p *ParameterList) Add(key, value string) {
	p.params = append(p.params, Parameter{Key: key, Value: value})
}

// AddAll appends every parameter of other.
func (p *ParameterList) AddAll(other *ParameterList) {
	if other == nil {
		return
	}
	p.params = append(p.params, other.params...)
}

// AddQueryString parses a raw, percent-encoded query string and appends its pairs.
// Empty segments are skipped and a key without "=" gets an empty value.
func (p *ParameterList) AddQueryString(raw string) error {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil
	}

	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key, err := encoder.Decode(rawKey)
		if err != nil {
			return serviceerror.WrapServiceError(constants.ErrorInvalidParameter, err,
				"Invalid query string parameter name: "+rawKey)
		}
		value, err := encoder.Decode(rawValue)
		if err != nil {
			return serviceerror.WrapServiceError(constants.ErrorInvalidParameter, err,
				"Invalid query string parameter value for: "+key)
		}
		p.Add(key, value)
	}
	return nil
}

// AppendTo appends the encoded parameters to the given URL, merging with any query string
// it already has. An empty list returns the URL unchanged.
func (p *ParameterList) AppendTo(rawURL string) (string, error) {
	if p.Size() == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", serviceerror.WrapServiceError(constants.ErrorInvalidURL, err, "Cannot append parameters to: "+rawURL)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", serviceerror.CustomServiceError(constants.ErrorInvalidURL, "Cannot append parameters to: "+rawURL)
	}

	base, fragment, hasFragment := strings.Cut(rawURL, "#")

	var sb strings.Builder
	sb.WriteString(base)
	switch {
	case strings.HasSuffix(base, "?"), strings.HasSuffix(base, "&"):
	case strings.Contains(base, "?"):
		sb.WriteByte('&')
	default:
		sb.WriteByte('?')
	}
	sb.WriteString(p.AsFormURLEncodedString())
	if hasFragment {
		sb.WriteByte('#')
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}

// AsFormURLEncodedString returns the parameters as an encoded key=value&key=value string in
// insertion order.
func (p *ParameterList) AsFormURLEncodedString() string {
	if p.Size() == 0 {
		return ""
	}
	encoded := make([]string, len(p.params))
	for i, param := range p.params {
		encoded[i] = param.Encode()
	}
	return strings.Join(encoded, "&")
}

// AsOAuthBaseString returns the normalized parameter string used in OAuth 1.0a signature base
// strings: pairs are encoded, sorted by key and then by value, and joined with "&".
func (p *ParameterList) AsOAuthBaseString() string {
	return p.Sort().AsFormURLEncodedString()
}

// Sort returns a copy of the list sorted by encoded key, then encoded value.
func (p *ParameterList) Sort() *ParameterList {
	if p == nil {
		return NewParameterList()
	}

	type encodedParam struct {
		key   string
		value string
		param Parameter
	}

	encoded := make([]encodedParam, len(p.params))
	for i, param := range p.params {
		encoded[i] = encodedParam{
			key:   encoder.Encode(param.Key),
			value: encoder.Encode(param.Value),
			param: param,
		}
	}
	sort.SliceStable(encoded, func(i, j int) bool {
		if encoded[i].key == encoded[j].key {
			return encoded[i].value < encoded[j].value
		}
		return encoded[i].key < encoded[j].key
	})

	sorted := &ParameterList{params: make([]Parameter, len(encoded))}
	for i, e := range encoded {
		sorted.params[i] = e.param
	}
	return sorted
}

// Size returns the number of parameters.
func (p *ParameterList) Size() int {
	if p == nil {
		return 0
	}
	return len(p.params)
}

// Get returns the value of the first parameter with the given key.
func (p *ParameterList) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, param := range p.params {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// Contains reports whether a parameter with the given key exists.
func (p *ParameterList) Contains(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Remove deletes every parameter with the given key and returns how many were removed.
func (p *ParameterList) Remove(key string) int {
	return p.RemoveIf(func(param Parameter) bool {
		return param.Key == key
	})
}

// RemoveIf deletes every parameter matching the predicate and returns how many were removed.
func (p *ParameterList) RemoveIf(match func(Parameter) bool) int {
	if p == nil {
		return 0
	}
	kept := p.params[:0]
	removed := 0
	for _, param := range p.params {
		if match(param) {
			removed++
			continue
		}
		kept = append(kept, param)
	}
	p.params = kept
	return removed
}

// Params returns a copy of the parameters in insertion order.
func (p *ParameterList) Params() []Parameter {
	if p == nil {
		return nil
	}
	copied := make([]Parameter, len(p.params))
	copy(copied, p.params)
	return copied
}

// Clone returns an independent copy of the list.
func (p *ParameterList) Clone() *ParameterList {
	return NewParameterList(p.Params()...)
}
