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
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/interop"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/service"
)

func newExchangeCmd(opts *cliOptions) *cobra.Command {
	var (
		verifier           string
		requestToken       string
		requestTokenSecret string
	)

	cmd := &cobra.Command{
		Use:   "exchange <provider>",
		Short: "Trade the verifier or authorization code for an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verifier == "" {
				return errors.New("--verifier is required")
			}
			svc, _, err := opts.buildService(args[0])
			if err != nil {
				return err
			}

			var token *model.Token
			if svc.Version() == api.Version10a {
				if requestToken == "" {
					return errors.New("--request-token is required for OAuth 1.0a providers")
				}
				token = model.NewToken(requestToken, requestTokenSecret, "")
			}
			_, err = exchange(cmd.OutOrStdout(), svc, token, verifier)
			return err
		},
	}

	cmd.Flags().StringVar(&verifier, "verifier", "", "OAuth 1.0a verifier or OAuth 2.0 authorization code")
	cmd.Flags().StringVar(&requestToken, "request-token", "", "Request token printed by authorize (OAuth 1.0a)")
	cmd.Flags().StringVar(&requestTokenSecret, "request-token-secret", "",
		"Request token secret printed by authorize (OAuth 1.0a)")
	return cmd
}

// exchange obtains the access token and prints it with the extra response parameters.
func exchange(out io.Writer, svc service.OAuthServiceInterface, requestToken *model.Token,
	verifier string) (*model.Token, error) {
	accessToken, err := svc.GetAccessToken(requestToken, model.NewVerifier(verifier))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Access token: %s\n", accessToken.Token())
	if accessToken.Secret() != "" {
		fmt.Fprintf(out, "Token secret: %s\n", accessToken.Secret())
	} else if bearer, err := interop.ToOAuth2Token(accessToken, time.Now()); err == nil {
		fmt.Fprintf(out, "Token type: %s\n", bearer.Type())
		if !bearer.Expiry.IsZero() {
			fmt.Fprintf(out, "Expires: %s\n", bearer.Expiry.UTC().Format(time.RFC3339))
		}
	}
	params := accessToken.Params()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, params[k])
	}
	return accessToken, nil
}
