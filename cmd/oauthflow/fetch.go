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
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asgardeo/oauthclient/internal/oauth/api"
	"github.com/asgardeo/oauthclient/internal/oauth/interop"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
	"github.com/asgardeo/oauthclient/internal/oauth/service"
)

// resourceCall describes one call to a protected resource.
type resourceCall struct {
	url     string
	method  string
	params  []string
	payload string
	// bearer sends the call through an x/oauth2 transport instead of signing it.
	bearer bool
}

func newFetchCmd(opts *cliOptions) *cobra.Command {
	var (
		call        resourceCall
		token       string
		tokenSecret string
	)

	cmd := &cobra.Command{
		Use:   "fetch <provider>",
		Short: "Sign and send a request to a protected resource",
		Long: `Sign and send a request to a protected resource.

The URL defaults to the protected_resource_url of the configured provider.
Parameters given with --param travel in the form body of POST, PUT and PATCH
requests and in the query string otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("--token is required")
			}
			svc, provider, err := opts.buildService(args[0])
			if err != nil {
				return err
			}
			if call.url == "" {
				call.url = provider.ProtectedResourceURL
			}
			return fetch(cmd.OutOrStdout(), svc, model.NewToken(token, tokenSecret, ""), call)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token")
	cmd.Flags().StringVar(&tokenSecret, "token-secret", "", "Access token secret (OAuth 1.0a)")
	cmd.Flags().StringVar(&call.url, "url", "", "Protected resource URL")
	cmd.Flags().StringVarP(&call.method, "method", "X", string(model.VerbGet), "HTTP verb")
	cmd.Flags().StringArrayVarP(&call.params, "param", "p", nil, "Request parameter as key=value, repeatable")
	cmd.Flags().StringVar(&call.payload, "data", "", "Explicit request body, replaces the form body")
	cmd.Flags().BoolVar(&call.bearer, "bearer", false,
		"Send the OAuth 2.0 token in the Authorization header through x/oauth2")
	return cmd
}

// fetch signs the call with the access token, sends it and prints the response.
func fetch(out io.Writer, svc service.OAuthServiceInterface, accessToken *model.Token, call resourceCall) error {
	if call.url == "" {
		return errors.New("no protected resource URL is configured, use --url")
	}
	verb, err := model.ParseVerb(call.method)
	if err != nil {
		return err
	}

	req := model.NewRequest(verb, call.url)
	for _, param := range call.params {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			return fmt.Errorf("parameter %q is not in key=value form", param)
		}
		req.AddBodyParameter(key, value)
	}
	if call.payload != "" {
		req.SetPayload(call.payload)
	}

	resp, err := send(svc, accessToken, req, call.bearer)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "HTTP %d %s\n", resp.Code(), resp.Message())
	fmt.Fprintln(out, resp.Body())
	if !resp.IsSuccessful() {
		return fmt.Errorf("protected resource returned status %d", resp.Code())
	}
	return nil
}

func send(svc service.OAuthServiceInterface, accessToken *model.Token, req *model.Request,
	bearer bool) (*model.Response, error) {
	if !bearer {
		if err := svc.SignRequest(accessToken, req); err != nil {
			return nil, err
		}
		return svc.Send(req)
	}

	if svc.Version() != api.Version20 {
		return nil, errors.New("--bearer is only supported for OAuth 2.0 providers")
	}
	client, err := interop.Client(context.Background(), accessToken, nil)
	if err != nil {
		return nil, err
	}
	return req.Send(client)
}
