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

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/oauthclient/tests/mocks/providermock"
)

const (
	testClientID     = "corp-client"
	testClientSecret = "corp-secret"
	testCallback     = "http://localhost/cb"
)

const cliTestConfig = `
http:
  read_timeout: 5s
providers:
  - name: corp
    api_key: corp-client
    api_secret: ${TEST_CORP_CLIENT_SECRET}
    callback: http://localhost/cb
    scope: openid profile
    protected_resource_url: {{userinfo}}
    strategy:
      version: "2.0"
      authorize_url: "{{authorize2}}"
      access_token_url: {{token}}
      access_token_verb: POST
      token_format: json
  - name: legacy
    api_key: corp-client
    api_secret: corp-secret
    strategy:
      version: "1.0a"
      request_token_url: {{request_token}}
      authorize_url: "{{authorize1}}"
      access_token_url: {{access_token}}
`

type CLITestSuite struct {
	suite.Suite
	provider   *providermock.Server
	configPath string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.provider = providermock.NewServer(testClientID, testClientSecret)

	content := strings.NewReplacer(
		"{{userinfo}}", suite.provider.UserInfoURL(),
		"{{authorize2}}", suite.provider.OAuth2AuthorizeTemplate(),
		"{{token}}", suite.provider.TokenURL(),
		"{{request_token}}", suite.provider.RequestTokenURL(),
		"{{authorize1}}", suite.provider.OAuth1AuthorizeTemplate(),
		"{{access_token}}", suite.provider.AccessTokenURL(),
	).Replace(cliTestConfig)
	suite.configPath = filepath.Join(suite.T().TempDir(), "oauth.yaml")
	suite.Require().NoError(os.WriteFile(suite.configPath, []byte(content), 0o600))

	suite.T().Setenv("OAUTH_CLIENT_CONFIG", "")
	suite.T().Setenv("TEST_CORP_CLIENT_SECRET", testClientSecret)
}

func (suite *CLITestSuite) TearDownTest() {
	suite.provider.Close()
}

func (suite *CLITestSuite) run(in io.Reader, out *bytes.Buffer, args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(in)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (suite *CLITestSuite) execute(args ...string) (string, error) {
	out := new(bytes.Buffer)
	err := suite.run(strings.NewReader(""), out, args...)
	return out.String(), err
}

// field returns the value printed after the given label.
func field(out, label string) string {
	for _, line := range strings.Split(out, "\n") {
		if value, ok := strings.CutPrefix(line, label); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// lazyReader produces its content on the first read, after the command printed its prompt.
type lazyReader struct {
	fill   func() string
	reader io.Reader
}

func (l *lazyReader) Read(p []byte) (int, error) {
	if l.reader == nil {
		l.reader = strings.NewReader(l.fill())
	}
	return l.reader.Read(p)
}

func (suite *CLITestSuite) TestProviders() {
	out, err := suite.execute("providers", "--config", suite.configPath)
	suite.Require().NoError(err)

	suite.Contains(strings.Split(out, "\n")[0], "NAME")
	suite.Regexp(`corp\s+2\.0\s+true`, out)
	suite.Regexp(`legacy\s+1\.0a\s+true`, out)
	suite.Regexp(`twitter\s+1\.0a\s+false`, out)
}

func (suite *CLITestSuite) TestAuthorizeOAuth20() {
	out, err := suite.execute("authorize", "corp", "-c", suite.configPath)
	suite.Require().NoError(err)
	suite.Equal(suite.provider.URL()+"/oauth2/authorize?response_type=code&client_id=corp-client"+
		"&redirect_uri=http%3A%2F%2Flocalhost%2Fcb&scope=openid%20profile", field(out, "Authorization URL: "))
	suite.NotContains(out, "Request token")
}

func (suite *CLITestSuite) TestAuthorizeOAuth10a() {
	out, err := suite.execute("authorize", "legacy", "-c", suite.configPath)
	suite.Require().NoError(err)

	requestToken := field(out, "Request token: ")
	suite.NotEmpty(requestToken)
	suite.NotEmpty(field(out, "Request token secret: "))
	suite.Equal(suite.provider.URL()+"/oauth1/authorize?oauth_token="+requestToken,
		field(out, "Authorization URL: "))
	_, issued := suite.provider.Verifier(requestToken)
	suite.True(issued)
}

func (suite *CLITestSuite) TestAuthorizeCatalogueProviderFromFlags() {
	out, err := suite.execute("authorize", "qq", "--api-key", "100443832", "--api-secret", "s",
		"--callback", "http://example.com/cb", "--scope", "get_user_info")
	suite.Require().NoError(err)
	suite.Contains(out, "https://graph.qq.com/oauth2.0/authorize?client_id=100443832")
	suite.Contains(out, "&scope=get_user_info")
}

func (suite *CLITestSuite) TestConfiguredProviderTakesCredentialsFromFlags() {
	path := filepath.Join(suite.T().TempDir(), "flags.yaml")
	content := "providers:\n  - name: qq\n    callback: http://example.com/cb\n    scope: get_user_info\n"
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	out, err := suite.execute("authorize", "qq", "--api-key", "100443832", "--api-secret", "s", "-c", path)
	suite.Require().NoError(err)
	suite.Contains(out, "https://graph.qq.com/oauth2.0/authorize?client_id=100443832")

	_, err = suite.execute("authorize", "qq", "-c", path)
	suite.ErrorContains(err, "api key is required")
}

func (suite *CLITestSuite) TestAuthorizeUnknownProvider() {
	_, err := suite.execute("authorize", "myspace", "--api-key", "k", "--api-secret", "s")
	suite.ErrorContains(err, "Unknown provider")
}

func (suite *CLITestSuite) TestExchangeOAuth20() {
	code := suite.provider.IssueCode(testCallback, "openid profile")

	out, err := suite.execute("exchange", "corp", "--verifier", code, "-c", suite.configPath)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(field(out, "Access token: "), "oauth_"))
	suite.Equal("3600", field(out, "  expires_in: "))
	suite.Equal("openid profile", field(out, "  scope: "))
	suite.NotContains(out, "Token secret")
	suite.Equal("Bearer", field(out, "Token type: "))

	expires, err := time.Parse(time.RFC3339, field(out, "Expires: "))
	suite.Require().NoError(err)
	suite.WithinDuration(time.Now().Add(time.Hour), expires, time.Minute)
}

func (suite *CLITestSuite) TestExchangeOAuth20Rejected() {
	_, err := suite.execute("exchange", "corp", "--verifier", "made-up", "-c", suite.configPath)
	suite.ErrorContains(err, "invalid_grant")

	code := suite.provider.IssueCode("http://elsewhere.example/cb", "")
	_, err = suite.execute("exchange", "corp", "--verifier", code, "-c", suite.configPath)
	suite.ErrorContains(err, "Redirect URI mismatch")
}

func (suite *CLITestSuite) TestExchangeOAuth20WrongSecret() {
	code := suite.provider.IssueCode(testCallback, "")
	_, err := suite.execute("exchange", "corp", "--verifier", code, "--api-secret", "wrong",
		"-c", suite.configPath)
	suite.ErrorContains(err, "invalid_client")
}

func (suite *CLITestSuite) TestExchangeOAuth10a() {
	out, err := suite.execute("authorize", "legacy", "-c", suite.configPath)
	suite.Require().NoError(err)
	requestToken := field(out, "Request token: ")
	verifier, ok := suite.provider.Verifier(requestToken)
	suite.Require().True(ok)

	out, err = suite.execute("exchange", "legacy", "--verifier", verifier, "--request-token", requestToken,
		"--request-token-secret", field(out, "Request token secret: "), "-c", suite.configPath)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(field(out, "Access token: "), "at_"))
	suite.NotEmpty(field(out, "Token secret: "))
	suite.Equal("default-user", field(out, "  user_id: "))
}

func (suite *CLITestSuite) TestExchangeOAuth10aBadSecret() {
	out, err := suite.execute("authorize", "legacy", "-c", suite.configPath)
	suite.Require().NoError(err)
	requestToken := field(out, "Request token: ")
	verifier, _ := suite.provider.Verifier(requestToken)

	_, err = suite.execute("exchange", "legacy", "--verifier", verifier, "--request-token", requestToken,
		"--request-token-secret", "not-the-secret", "-c", suite.configPath)
	suite.ErrorContains(err, "signature_invalid")
}

func (suite *CLITestSuite) TestExchangeRequiresFlags() {
	_, err := suite.execute("exchange", "corp", "-c", suite.configPath)
	suite.ErrorContains(err, "--verifier")

	_, err = suite.execute("exchange", "legacy", "--verifier", "PIN", "-c", suite.configPath)
	suite.ErrorContains(err, "--request-token")
}

func (suite *CLITestSuite) TestFetchOAuth20() {
	code := suite.provider.IssueCode(testCallback, "")
	out, err := suite.execute("exchange", "corp", "--verifier", code, "-c", suite.configPath)
	suite.Require().NoError(err)
	token := field(out, "Access token: ")

	suite.provider.SetUser(providermock.UserInfo{Sub: "u-42", Name: "Ada"})
	out, err = suite.execute("fetch", "corp", "--token", token, "-c", suite.configPath)
	suite.Require().NoError(err)
	suite.Contains(out, "HTTP 200 OK")
	suite.Contains(out, `"sub":"u-42"`)

	_, err = suite.execute("fetch", "corp", "--token", "revoked", "-c", suite.configPath)
	suite.ErrorContains(err, "401")
}

func (suite *CLITestSuite) TestFetchOAuth20WithBearerTransport() {
	code := suite.provider.IssueCode(testCallback, "")
	out, err := suite.execute("exchange", "corp", "--verifier", code, "-c", suite.configPath)
	suite.Require().NoError(err)
	token := field(out, "Access token: ")

	out, err = suite.execute("fetch", "corp", "--token", token, "--bearer", "-c", suite.configPath)
	suite.Require().NoError(err)
	suite.Contains(out, "HTTP 200 OK")
	suite.Contains(out, `"sub":"default-user"`)

	_, err = suite.execute("fetch", "corp", "--token", "revoked", "--bearer", "-c", suite.configPath)
	suite.ErrorContains(err, "401")

	_, err = suite.execute("fetch", "legacy", "--token", "T", "--token-secret", "S", "--bearer",
		"--url", suite.provider.UserInfoURL(), "-c", suite.configPath)
	suite.ErrorContains(err, "only supported for OAuth 2.0")
}

func (suite *CLITestSuite) TestFetchOAuth10a() {
	in := &lazyReader{}
	out := new(bytes.Buffer)
	in.fill = func() string {
		verifier, _ := suite.provider.Verifier(field(out.String(), "Request token: "))
		return verifier + "\n"
	}
	suite.Require().NoError(suite.run(in, out, "run", "legacy", "-c", suite.configPath))
	token := field(out.String(), "Access token: ")
	secret := field(out.String(), "Token secret: ")

	for _, extra := range [][]string{
		{"-p", "count=5"},
		{"-X", "POST", "-p", "status=Hello Ladies + Gentlemen"},
	} {
		args := append([]string{"fetch", "legacy", "--token", token, "--token-secret", secret,
			"--url", suite.provider.UserInfoURL(), "-c", suite.configPath}, extra...)
		fetched, err := suite.execute(args...)
		suite.Require().NoError(err, extra)
		suite.Contains(fetched, `"sub":"default-user"`)
	}

	_, err := suite.execute("fetch", "legacy", "--token", token, "--token-secret", "wrong",
		"--url", suite.provider.UserInfoURL(), "-c", suite.configPath)
	suite.ErrorContains(err, "401")
}

func (suite *CLITestSuite) TestFetchErrors() {
	_, err := suite.execute("fetch", "corp", "-c", suite.configPath)
	suite.ErrorContains(err, "--token")

	_, err = suite.execute("fetch", "corp", "--token", "T", "-p", "novalue", "-c", suite.configPath)
	suite.ErrorContains(err, "key=value")

	_, err = suite.execute("fetch", "legacy", "--token", "T", "--token-secret", "S", "-c", suite.configPath)
	suite.ErrorContains(err, "--url")

	_, err = suite.execute("fetch", "corp", "--token", "T", "-X", "FETCH", "-c", suite.configPath)
	suite.ErrorContains(err, "Unknown HTTP verb")
}

func (suite *CLITestSuite) TestRunOAuth20() {
	code := suite.provider.IssueCode(testCallback, "openid profile")
	out := new(bytes.Buffer)

	err := suite.run(strings.NewReader(code+"\n"), out, "run", "corp", "-c", suite.configPath)
	suite.Require().NoError(err)
	suite.Contains(out.String(), "Authorization URL: ")
	suite.Contains(out.String(), "Paste the verifier or authorization code: \nAccess token: ")
	suite.Contains(out.String(), "HTTP 200 OK")
	suite.Contains(out.String(), `"email":"user@example.com"`)
}

func (suite *CLITestSuite) TestRunOAuth10aWithoutResource() {
	in := &lazyReader{}
	out := new(bytes.Buffer)
	in.fill = func() string {
		verifier, _ := suite.provider.Verifier(field(out.String(), "Request token: "))
		return verifier
	}

	suite.Require().NoError(suite.run(in, out, "run", "legacy", "-c", suite.configPath))
	suite.True(strings.HasPrefix(field(out.String(), "Access token: "), "at_"))
	suite.NotEmpty(field(out.String(), "Token secret: "))
	suite.NotContains(out.String(), "HTTP ")
}

func (suite *CLITestSuite) TestRunWithoutVerifier() {
	err := suite.run(strings.NewReader("\n"), new(bytes.Buffer), "run", "corp", "-c", suite.configPath)
	suite.ErrorContains(err, "no verifier")
}

func (suite *CLITestSuite) TestInvalidConfiguration() {
	path := filepath.Join(suite.T().TempDir(), "broken.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("providers:\n  - name: qq\n  - name: QQ\n"), 0o600))

	_, err := suite.execute("providers", "-c", path)
	suite.ErrorContains(err, "duplicate provider")

	_, err = suite.execute("providers", "-c", filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.ErrorContains(err, "failed to load configuration")
}
