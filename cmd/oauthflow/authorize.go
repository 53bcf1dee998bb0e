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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/service"
)

func newAuthorizeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "authorize <provider>",
		Short: "Print the URL the end user visits to authorize the application",
		Long: `Print the URL the end user visits to authorize the application.

For OAuth 1.0a providers a request token is obtained first. Keep its token and
secret for the exchange command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.buildService(args[0])
			if err != nil {
				return err
			}
			_, err = authorize(cmd.OutOrStdout(), svc)
			return err
		},
	}
}

// authorize prints the authorization URL and returns the request token, which is nil for
// OAuth 2.0.
func authorize(out io.Writer, svc service.OAuthServiceInterface) (*model.Token, error) {
	var requestToken *model.Token
	if svc.Version() == api.Version10a {
		token, err := svc.GetRequestToken()
		if err != nil {
			return nil, err
		}
		requestToken = token
	}

	authURL, err := svc.GetAuthorizationURL(requestToken)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Authorization URL: %s\n", authURL)
	if requestToken != nil {
		fmt.Fprintf(out, "Request token: %s\n", requestToken.Token())
		fmt.Fprintf(out, "Request token secret: %s\n", requestToken.Secret())
	}
	return requestToken, nil
}
