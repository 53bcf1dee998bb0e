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

package log

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/asgardeo/oauthclient/internal/system/constants"
)

type LogTestSuite struct {
	suite.Suite
	originalLogLevel string
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) SetupTest() {
	suite.originalLogLevel = os.Getenv(constants.LogLevelEnvironmentVariable)
}

func (suite *LogTestSuite) TearDownTest() {
	err := os.Setenv(constants.LogLevelEnvironmentVariable, suite.originalLogLevel)
	if err != nil {
		suite.T().Errorf("Failed to restore environment variable: %v", err)
	}

	SetLogger(nil)
}

func (suite *LogTestSuite) TestInitLoggerWithEnvironmentVariable() {
	testCases := []struct {
		name     string
		logLevel string
		isValid  bool
	}{
		{"DefaultLevel", "", true},
		{"DebugLevel", "debug", true},
		{"InfoLevel", "info", true},
		{"WarnLevel", "warn", true},
		{"ErrorLevel", "error", true},
		{"UpperCaseLevel", "DEBUG", true},
		{"InvalidLevel", "unknown", false},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			SetLogger(nil)

			if tc.logLevel != "" {
				assert.NoError(t, os.Setenv(constants.LogLevelEnvironmentVariable, tc.logLevel))
			} else {
				assert.NoError(t, os.Unsetenv(constants.LogLevelEnvironmentVariable))
			}

			if tc.isValid {
				assert.NotPanics(t, func() {
					_ = GetLogger()
				})
			} else {
				assert.Panics(t, func() {
					_ = GetLogger()
				})
			}
		})
	}
}

func (suite *LogTestSuite) TestParseLogLevel() {
	testCases := []struct {
		name      string
		logLevel  string
		expected  zapcore.Level
		expectErr bool
	}{
		{"Debug", "debug", zapcore.DebugLevel, false},
		{"Info", "info", zapcore.InfoLevel, false},
		{"Warn", "warn", zapcore.WarnLevel, false},
		{"Error", "error", zapcore.ErrorLevel, false},
		{"Invalid", "invalid", zapcore.ErrorLevel, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			level, err := parseLogLevel(tc.logLevel)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func (suite *LogTestSuite) TestLoggerWritesFields() {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLogger(core).With(String(LoggerKeyComponentName, "TestComponent"))

	l.Debug("debug message", Int("count", 2))
	l.Info("info message", Bool("ok", true))
	l.Warn("warn message")
	l.Error("error message", Error(errors.New("failure")))

	entries := logs.All()
	suite.Len(entries, 4)
	suite.Equal("debug message", entries[0].Message)
	suite.Equal("TestComponent", entries[0].ContextMap()[LoggerKeyComponentName])
	suite.Equal(int64(2), entries[0].ContextMap()["count"])
	suite.Equal(zapcore.ErrorLevel, entries[3].Level)
	suite.Equal("failure", entries[3].ContextMap()["error"])
	suite.True(l.IsDebugEnabled())
}

func (suite *LogTestSuite) TestIsDebugEnabledFalseAtInfo() {
	core, _ := observer.New(zapcore.InfoLevel)
	suite.False(NewLogger(core).IsDebugEnabled())
}

func (suite *LogTestSuite) TestSetLogger() {
	core, logs := observer.New(zapcore.InfoLevel)
	custom := NewLogger(core)

	SetLogger(custom)
	suite.Same(custom, GetLogger())
	GetLogger().Info("through singleton")
	suite.Equal(1, logs.Len())

	SetLogger(nil)
	suite.NotSame(custom, GetLogger())
}

func (suite *LogTestSuite) TestSetLoggerConcurrentWithGetLogger() {
	core, _ := observer.New(zapcore.InfoLevel)
	custom := NewLogger(core)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			suite.NotNil(GetLogger())
		}()
		go func(reset bool) {
			defer wg.Done()
			if reset {
				SetLogger(nil)
				return
			}
			SetLogger(custom)
		}(i%2 == 0)
	}
	wg.Wait()

	SetLogger(custom)
	suite.Same(custom, GetLogger())
}

func (suite *LogTestSuite) TestMaskString() {
	suite.Equal("", MaskString(""))
	suite.Equal("***", MaskString("abc"))
	suite.Equal("a**d", MaskString("abcd"))
	suite.Equal("s*********t", MaskString("secretsecrt"))
}
