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

// Package providermock runs an in-process OAuth provider that speaks the OAuth 2.0
// authorization code flow and the OAuth 1.0a three-legged flow.
package providermock

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // OAuth 1.0a HMAC-SHA1
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	oauth2AuthorizePath = "/oauth2/authorize"
	oauth2TokenPath     = "/oauth2/token"
	requestTokenPath    = "/oauth1/request_token"
	oauth1AuthorizePath = "/oauth1/authorize"
	accessTokenPath     = "/oauth1/access_token"
	userInfoPath        = "/userinfo"
)

// UserInfo is the profile returned by the protected resource.
type UserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type authCode struct {
	redirectURI string
	scope       string
	expiresAt   time.Time
}

type bearerToken struct {
	scope     string
	expiresAt time.Time
}

type requestToken struct {
	secret   string
	callback string
	verifier string
}

// Server is the mock provider. Every endpoint validates the client credentials it was
// created with.
type Server struct {
	server       *httptest.Server
	mutex        sync.Mutex
	clientID     string
	clientSecret string
	user         UserInfo

	codes         map[string]*authCode
	bearerTokens  map[string]*bearerToken
	requestTokens map[string]*requestToken
	accessSecrets map[string]string
}

// NewServer starts a mock provider for the given client credentials.
func NewServer(clientID, clientSecret string) *Server {
	m := &Server{
		clientID:      clientID,
		clientSecret:  clientSecret,
		user:          UserInfo{Sub: "default-user", Email: "user@example.com", Name: "Test User"},
		codes:         make(map[string]*authCode),
		bearerTokens:  make(map[string]*bearerToken),
		requestTokens: make(map[string]*requestToken),
		accessSecrets: make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(oauth2AuthorizePath, m.handleAuthorize)
	mux.HandleFunc(oauth2TokenPath, m.handleToken)
	mux.HandleFunc(requestTokenPath, m.handleRequestToken)
	mux.HandleFunc(oauth1AuthorizePath, m.handleOAuth1Authorize)
	mux.HandleFunc(accessTokenPath, m.handleAccessToken)
	mux.HandleFunc(userInfoPath, m.handleUserInfo)
	m.server = httptest.NewServer(mux)
	return m
}

// Close stops the server.
func (m *Server) Close() {
	m.server.Close()
}

// URL returns the base URL of the server.
func (m *Server) URL() string {
	return m.server.URL
}

// OAuth2AuthorizeTemplate returns the authorize URL template taking the client id and the
// encoded redirect URI.
func (m *Server) OAuth2AuthorizeTemplate() string {
	return m.server.URL + oauth2AuthorizePath + "?response_type=code&client_id=%s&redirect_uri=%s"
}

// TokenURL returns the OAuth 2.0 token endpoint.
func (m *Server) TokenURL() string {
	return m.server.URL + oauth2TokenPath
}

// RequestTokenURL returns the OAuth 1.0a temporary credential endpoint.
func (m *Server) RequestTokenURL() string {
	return m.server.URL + requestTokenPath
}

// OAuth1AuthorizeTemplate returns the OAuth 1.0a authorize URL template taking the request token.
func (m *Server) OAuth1AuthorizeTemplate() string {
	return m.server.URL + oauth1AuthorizePath + "?oauth_token=%s"
}

// AccessTokenURL returns the OAuth 1.0a token credential endpoint.
func (m *Server) AccessTokenURL() string {
	return m.server.URL + accessTokenPath
}

// UserInfoURL returns the protected resource.
func (m *Server) UserInfoURL() string {
	return m.server.URL + userInfoPath
}

// SetUser replaces the profile returned by the protected resource.
func (m *Server) SetUser(user UserInfo) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.user = user
}

// IssueCode grants an authorization code as if the end user had consented.
func (m *Server) IssueCode(redirectURI, scope string) string {
	code := randomString(32)
	m.mutex.Lock()
	m.codes[code] = &authCode{redirectURI: redirectURI, scope: scope, expiresAt: time.Now().Add(10 * time.Minute)}
	m.mutex.Unlock()
	return code
}

// Verifier returns the verifier granted for a request token as if the end user had consented.
func (m *Server) Verifier(token string) (string, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	rt, ok := m.requestTokens[token]
	if !ok {
		return "", false
	}
	return rt.verifier, true
}

func (m *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	if query.Get("client_id") != m.clientID {
		http.Error(w, "Invalid client_id", http.StatusBadRequest)
		return
	}
	if query.Get("response_type") != "code" {
		http.Error(w, "Unsupported response_type", http.StatusBadRequest)
		return
	}
	redirectURL, err := url.Parse(query.Get("redirect_uri"))
	if err != nil || !redirectURL.IsAbs() {
		http.Error(w, "Invalid redirect_uri", http.StatusBadRequest)
		return
	}

	code := m.IssueCode(query.Get("redirect_uri"), query.Get("scope"))
	q := redirectURL.Query()
	q.Set("code", code)
	if state := query.Get("state"); state != "" {
		q.Set("state", state)
	}
	redirectURL.RawQuery = q.Encode()
	http.Redirect(w, r, redirectURL.String(), http.StatusFound)
}

func (m *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeTokenError(w, "invalid_request", "Failed to parse the request")
		return
	}

	if grantType := r.Form.Get("grant_type"); grantType != "" && grantType != "authorization_code" {
		writeTokenError(w, "unsupported_grant_type", "Grant type not supported")
		return
	}
	if r.Form.Get("client_id") != m.clientID || r.Form.Get("client_secret") != m.clientSecret {
		writeTokenError(w, "invalid_client", "Invalid client credentials")
		return
	}

	code := r.Form.Get("code")
	m.mutex.Lock()
	data, ok := m.codes[code]
	delete(m.codes, code)
	m.mutex.Unlock()
	switch {
	case !ok:
		writeTokenError(w, "invalid_grant", "Invalid authorization code")
		return
	case time.Now().After(data.expiresAt):
		writeTokenError(w, "invalid_grant", "Authorization code expired")
		return
	case data.redirectURI != r.Form.Get("redirect_uri"):
		writeTokenError(w, "invalid_grant", "Redirect URI mismatch")
		return
	}

	accessToken := "oauth_" + randomString(40)
	m.mutex.Lock()
	m.bearerTokens[accessToken] = &bearerToken{scope: data.scope, expiresAt: time.Now().Add(time.Hour)}
	m.mutex.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token":  accessToken,
		"token_type":    "Bearer",
		"expires_in":    3600,
		"refresh_token": "refresh_" + randomString(40),
		"scope":         data.scope,
	})
}

func (m *Server) handleRequestToken(w http.ResponseWriter, r *http.Request) {
	params, err := m.verifySignature(r, "")
	if err != nil {
		writeOAuth1Problem(w, err.Error())
		return
	}

	token := "rt_" + randomString(24)
	rt := &requestToken{secret: randomString(32), callback: params.Get("oauth_callback"), verifier: randomString(8)}
	m.mutex.Lock()
	m.requestTokens[token] = rt
	m.mutex.Unlock()

	writeForm(w, url.Values{
		"oauth_token":              {token},
		"oauth_token_secret":       {rt.secret},
		"oauth_callback_confirmed": {"true"},
	})
}

func (m *Server) handleOAuth1Authorize(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("oauth_token")
	m.mutex.Lock()
	rt, ok := m.requestTokens[token]
	m.mutex.Unlock()
	if !ok {
		http.Error(w, "Unknown request token", http.StatusBadRequest)
		return
	}

	if rt.callback == "" || rt.callback == "oob" {
		fmt.Fprintf(w, "Enter this PIN in the application: %s\n", rt.verifier)
		return
	}
	redirectURL, err := url.Parse(rt.callback)
	if err != nil {
		http.Error(w, "Invalid callback", http.StatusBadRequest)
		return
	}
	q := redirectURL.Query()
	q.Set("oauth_token", token)
	q.Set("oauth_verifier", rt.verifier)
	redirectURL.RawQuery = q.Encode()
	http.Redirect(w, r, redirectURL.String(), http.StatusFound)
}

func (m *Server) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	oauthParams := oauth1Params(r)
	token := oauthParams.Get("oauth_token")

	m.mutex.Lock()
	rt, ok := m.requestTokens[token]
	m.mutex.Unlock()
	if !ok {
		writeOAuth1Problem(w, "token_rejected")
		return
	}
	if _, err := m.verifySignature(r, rt.secret); err != nil {
		writeOAuth1Problem(w, err.Error())
		return
	}
	if oauthParams.Get("oauth_verifier") != rt.verifier {
		writeOAuth1Problem(w, "verifier_invalid")
		return
	}

	accessToken := "at_" + randomString(24)
	secret := randomString(32)
	m.mutex.Lock()
	delete(m.requestTokens, token)
	m.accessSecrets[accessToken] = secret
	m.mutex.Unlock()

	writeForm(w, url.Values{
		"oauth_token":        {accessToken},
		"oauth_token_secret": {secret},
		"user_id":            {m.user.Sub},
	})
}

func (m *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	if !m.authorized(r) {
		http.Error(w, "Invalid access token", http.StatusUnauthorized)
		return
	}
	m.mutex.Lock()
	user := m.user
	m.mutex.Unlock()
	writeJSON(w, http.StatusOK, user)
}

// authorized accepts a bearer token in the Authorization header or the access_token query
// parameter, or an OAuth 1.0a signed request.
func (m *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "OAuth ") || r.URL.Query().Get("oauth_signature") != "" {
		token := oauth1Params(r).Get("oauth_token")
		m.mutex.Lock()
		secret, ok := m.accessSecrets[token]
		m.mutex.Unlock()
		if !ok {
			return false
		}
		_, err := m.verifySignature(r, secret)
		return err == nil
	}

	token := r.URL.Query().Get("access_token")
	if bearer, ok := strings.CutPrefix(header, "Bearer "); ok {
		token = bearer
	}
	m.mutex.Lock()
	data, ok := m.bearerTokens[token]
	m.mutex.Unlock()
	return ok && time.Now().Before(data.expiresAt)
}

// verifySignature checks the HMAC-SHA1 or PLAINTEXT signature of an OAuth 1.0a request and
// returns its OAuth parameters.
func (m *Server) verifySignature(r *http.Request, tokenSecret string) (url.Values, error) {
	oauthParams := oauth1Params(r)
	if oauthParams.Get("oauth_consumer_key") != m.clientID {
		return nil, errors.New("consumer_key_unknown")
	}

	key := encode(m.clientSecret) + "&" + encode(tokenSecret)
	var expected string
	switch oauthParams.Get("oauth_signature_method") {
	case "HMAC-SHA1":
		mac := hmac.New(sha1.New, []byte(key))
		mac.Write([]byte(baseString(r, oauthParams)))
		expected = base64.StdEncoding.EncodeToString(mac.Sum(nil))
	case "PLAINTEXT":
		expected = key
	default:
		return nil, errors.New("signature_method_rejected")
	}
	if !hmac.Equal([]byte(expected), []byte(oauthParams.Get("oauth_signature"))) {
		return nil, errors.New("signature_invalid")
	}
	return oauthParams, nil
}

// oauth1Params collects the OAuth parameters from the Authorization header, falling back to
// the query string.
func oauth1Params(r *http.Request) url.Values {
	params := url.Values{}
	header, ok := strings.CutPrefix(r.Header.Get("Authorization"), "OAuth ")
	if !ok {
		for k, v := range r.URL.Query() {
			if strings.HasPrefix(k, "oauth_") {
				params[k] = v
			}
		}
		return params
	}
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		key, _ := url.PathUnescape(k)
		value, _ := url.PathUnescape(strings.Trim(v, `"`))
		params.Add(key, value)
	}
	return params
}

func baseString(r *http.Request, oauthParams url.Values) string {
	all := url.Values{}
	for k, v := range r.URL.Query() {
		all[k] = append(all[k], v...)
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err == nil {
			for k, v := range r.PostForm {
				all[k] = append(all[k], v...)
			}
		}
	}
	if r.Header.Get("Authorization") != "" {
		for k, v := range oauthParams {
			all[k] = append(all[k], v...)
		}
	}

	pairs := make([]string, 0, len(all))
	for k, values := range all {
		if k == "oauth_signature" || k == "realm" {
			continue
		}
		for _, v := range values {
			pairs = append(pairs, encode(k)+"="+encode(v))
		}
	}
	sort.Strings(pairs)

	baseURL := "http://" + strings.ToLower(r.Host) + r.URL.EscapedPath()
	return r.Method + "&" + encode(baseURL) + "&" + encode(strings.Join(pairs, "&"))
}

func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func writeTokenError(w http.ResponseWriter, errorCode, errorDescription string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error":             errorCode,
		"error_description": errorDescription,
	})
}

func writeOAuth1Problem(w http.ResponseWriter, problem string) {
	w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprint(w, "oauth_problem="+problem)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeForm(w http.ResponseWriter, values url.Values) {
	w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
	fmt.Fprint(w, values.Encode())
}

func randomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		b[i] = charset[n.Int64()]
	}
	return string(b)
}
