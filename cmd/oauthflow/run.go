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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *cliOptions) *cobra.Command {
	var call resourceCall

	cmd := &cobra.Command{
		Use:   "run <provider>",
		Short: "Walk through the whole authorization flow interactively",
		Long: `Walk through the whole authorization flow interactively.

The command prints the authorization URL, reads the verifier or authorization
code from standard input, obtains the access token and, when a protected
resource URL is known, calls it with the new token.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, provider, err := opts.buildService(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			requestToken, err := authorize(out, svc)
			if err != nil {
				return err
			}

			fmt.Fprint(out, "Paste the verifier or authorization code: ")
			verifier, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)

			accessToken, err := exchange(out, svc, requestToken, verifier)
			if err != nil {
				return err
			}

			if call.url == "" {
				call.url = provider.ProtectedResourceURL
			}
			if call.url == "" {
				return nil
			}
			return fetch(out, svc, accessToken, call)
		},
	}

	cmd.Flags().StringVar(&call.url, "url", "", "Protected resource URL called with the new token")
	cmd.Flags().StringVarP(&call.method, "method", "X", "GET", "HTTP verb of the protected resource call")
	return cmd
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no verifier was entered")
	}
	return line, nil
}
