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
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the OAuth 1.0a signature methods.
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"

	"github.com/asgardeo/oauthclient/internal/oauth/constants"
	"github.com/asgardeo/oauthclient/internal/oauth/encoder"
	"github.com/asgardeo/oauthclient/internal/system/error/serviceerror"
)

// Signature method names sent in oauth_signature_method.
const (
	MethodHMACSHA1  = "HMAC-SHA1"
	MethodRSASHA1   = "RSA-SHA1"
	MethodPlaintext = "PLAINTEXT"
)

// Signer computes the oauth_signature of a base string.
type Signer interface {
	Sign(baseString, apiSecret, tokenSecret string) (string, error)
	Method() string
}

// HMACSHA1Signer signs with HMAC-SHA1 keyed by encode(apiSecret)&encode(tokenSecret).
type HMACSHA1Signer struct{}

// NewHMACSHA1Signer creates an HMAC-SHA1 signer.
func NewHMACSHA1Signer() *HMACSHA1Signer {
	return &HMACSHA1Signer{}
}

// Sign returns the base64 encoded HMAC-SHA1 of the base string.
func (s *HMACSHA1Signer) Sign(baseString, apiSecret, tokenSecret string) (string, error) {
	if apiSecret == "" {
		return "", serviceerror.CustomServiceError(constants.ErrorSigning, "The API secret is required to sign requests")
	}
	mac := hmac.New(sha1.New, []byte(signingKey(apiSecret, tokenSecret)))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Method returns HMAC-SHA1.
func (s *HMACSHA1Signer) Method() string {
	return MethodHMACSHA1
}

// PlaintextSigner uses the signing key itself as the signature. Only use it over TLS.
type PlaintextSigner struct{}

// NewPlaintextSigner creates a PLAINTEXT signer.
func NewPlaintextSigner() *PlaintextSigner {
	return &PlaintextSigner{}
}

// Sign returns encode(apiSecret)&encode(tokenSecret).
func (s *PlaintextSigner) Sign(_, apiSecret, tokenSecret string) (string, error) {
	if apiSecret == "" {
		return "", serviceerror.CustomServiceError(constants.ErrorSigning, "The API secret is required to sign requests")
	}
	return signingKey(apiSecret, tokenSecret), nil
}

// Method returns PLAINTEXT.
func (s *PlaintextSigner) Method() string {
	return MethodPlaintext
}

// RSASHA1Signer signs with RSASSA-PKCS1-v1_5 over SHA-1 using the consumer's private key.
// The API and token secrets are not used.
type RSASHA1Signer struct {
	privateKey *rsa.PrivateKey
}

// NewRSASHA1Signer creates an RSA-SHA1 signer for the given private key.
func NewRSASHA1Signer(privateKey *rsa.PrivateKey) *RSASHA1Signer {
	return &RSASHA1Signer{privateKey: privateKey}
}

// Sign returns the base64 encoded RSA-SHA1 signature of the base string.
func (s *RSASHA1Signer) Sign(baseString, _, _ string) (string, error) {
	if s.privateKey == nil {
		return "", serviceerror.CustomServiceError(constants.ErrorSigning, "No RSA private key is configured")
	}
	hashed := sha1.Sum([]byte(baseString)) //nolint:gosec
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA1, hashed[:])
	if err != nil {
		return "", serviceerror.WrapServiceError(constants.ErrorSigning, err, "Failed to compute the RSA-SHA1 signature")
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Method returns RSA-SHA1.
func (s *RSASHA1Signer) Method() string {
	return MethodRSASHA1
}

// PublicKey returns the public half of the signing key, or nil.
func (s *RSASHA1Signer) PublicKey() *rsa.PublicKey {
	if s.privateKey == nil {
		return nil
	}
	return &s.privateKey.PublicKey
}

// VerifyRSASHA1 checks a base64 encoded RSA-SHA1 signature of the base string.
func VerifyRSASHA1(publicKey *rsa.PublicKey, baseString, signature string) error {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return err
	}
	hashed := sha1.Sum([]byte(baseString)) //nolint:gosec
	return rsa.VerifyPKCS1v15(publicKey, crypto.SHA1, hashed[:], sig)
}

// ParseRSAPrivateKey decodes a PEM encoded PKCS#1 or PKCS#8 RSA private key.
func ParseRSAPrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("not an RSA private key")
		}
		return rsaKey, nil
	default:
		return nil, errors.New("unsupported private key type: " + block.Type)
	}
}

// LoadRSAPrivateKey reads and parses a PEM encoded RSA private key file.
func LoadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path) // #nosec G304 -- the key path comes from operator configuration.
	if err != nil {
		return nil, err
	}
	return ParseRSAPrivateKey(keyData)
}

func signingKey(apiSecret, tokenSecret string) string {
	return encoder.Encode(apiSecret) + "&" + encoder.Encode(tokenSecret)
}
