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

package signature

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TimestampServiceInterface supplies the oauth_timestamp and oauth_nonce of a signature.
type TimestampServiceInterface interface {
	Timestamp() string
	Nonce() string
}

// TimestampService uses the wall clock and random v4 UUIDs.
type TimestampService struct {
	now func() time.Time
}

// NewTimestampService creates a timestamp service backed by the system clock.
func NewTimestampService() *TimestampService {
	return &TimestampService{now: time.Now}
}

// Timestamp returns the current time in seconds since the Unix epoch.
func (t *TimestampService) Timestamp() string {
	return strconv.FormatInt(t.now().Unix(), 10)
}

// Nonce returns 32 lower case hex characters carrying 122 random bits.
func (t *TimestampService) Nonce() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// FixedTimestampService returns the same timestamp and nonce on every call. It makes
// signatures reproducible and must not be used against real providers.
type FixedTimestampService struct {
	TimestampValue string
	NonceValue     string
}

// Timestamp returns the fixed timestamp.
func (f *FixedTimestampService) Timestamp() string {
	return f.TimestampValue
}

// Nonce returns the fixed nonce.
func (f *FixedTimestampService) Nonce() string {
	return f.NonceValue
}
