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
	"strings"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// Verb is an HTTP method.
type Verb string

// Supported HTTP verbs.
const (
	VerbGet     Verb = "GET"
	VerbPost    Verb = "POST"
	VerbPut     Verb = "PUT"
	VerbDelete  Verb = "DELETE"
	VerbHead    Verb = "HEAD"
	VerbOptions Verb = "OPTIONS"
	VerbTrace   Verb = "TRACE"
	VerbPatch   Verb = "PATCH"
)

var verbs = []Verb{VerbGet, VerbPost, VerbPut, VerbDelete, VerbHead, VerbOptions, VerbTrace, VerbPatch}

// ParseVerb returns the verb matching the given name, ignoring case.
func ParseVerb(name string) (Verb, error) {
	upper := Verb(strings.ToUpper(strings.TrimSpace(name)))
	for _, v := range verbs {
		if v == upper {
			return v, nil
		}
	}
	return "", serviceerror.CustomServiceError(constants.ErrorInvalidParameter, "Unknown HTTP verb: "+name)
}

// HasBody reports whether requests with this verb carry their parameters in a form body.
func (v Verb) HasBody() bool {
	return v == VerbPost || v == VerbPut || v == VerbPatch
}

// String returns the verb name.
func (v Verb) String() string {
	return string(v)
}
