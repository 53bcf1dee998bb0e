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

// Package serviceerror defines the error structures for the service layer.
package serviceerror

import "strings"

// ServiceErrorType defines the type of service error.
type ServiceErrorType string

const (
	// ClientErrorType denotes the client error type.
	ClientErrorType ServiceErrorType = "client_error"
	// ServerErrorType denotes the server error type.
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError defines a generic error structure that can be used across the service layer.
// Errors are matched with errors.Is by their code, so a package level error definition can be
// used as the target even after it has been wrapped or given a custom description.
type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Message          string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
	cause            error
}

// Error returns the string form of the service error.
func (e *ServiceError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Code)
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.ErrorDescription != "" {
		sb.WriteString(" - ")
		sb.WriteString(e.ErrorDescription)
	}
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause, if any.
func (e *ServiceError) Unwrap() error {
	return e.cause
}

// Is reports whether the target is a service error with the same code.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok || t == nil {
		return false
	}
	return t.Code == e.Code
}

// IsClientError reports whether the error was caused by the caller's input.
func (e *ServiceError) IsClientError() bool {
	return e.Type == ClientErrorType
}

// CustomServiceError creates a new service error based on an existing error with custom description.
func CustomServiceError(svcError ServiceError, errorDesc string) *ServiceError {
	return WrapServiceError(svcError, nil, errorDesc)
}

// WrapServiceError creates a new service error based on an existing error, recording the cause.
// The description of the base error is kept when errorDesc is empty.
func WrapServiceError(svcError ServiceError, cause error, errorDesc string) *ServiceError {
	err := &ServiceError{
		Type:             svcError.Type,
		Code:             svcError.Code,
		Message:          svcError.Message,
		ErrorDescription: svcError.ErrorDescription,
		cause:            cause,
	}
	if errorDesc != "" {
		err.ErrorDescription = errorDesc
	}
	return err
}
