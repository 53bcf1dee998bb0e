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

package api

import (
	"github.com/asgardeo/oauthclient/internal/oauth/extractor"
	"github.com/asgardeo/oauthclient/internal/oauth/model"
)

// Built-in provider names.
const (
	ProviderBaidu    = "baidu"
	ProviderQQ       = "qq"
	ProviderWeibo    = "weibo"
	ProviderGitHub   = "github"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderTwitter  = "twitter"
	ProviderFlickr   = "flickr"
)

// BaiduAPI returns the Baidu OAuth 2.0 strategy.
func BaiduAPI() *OAuth20API {
	return &OAuth20API{
		ProviderName:         ProviderBaidu,
		AuthorizeURLTemplate: "https://openapi.baidu.com/oauth/2.0/authorize?response_type=code&client_id=%s&redirect_uri=%s",
		AccessTokenURL:       "https://openapi.baidu.com/oauth/2.0/token",
		AccessTokenHTTPVerb:  model.VerbPost,
		TokenFormat:          extractor.FormatJSON,
		DefaultSignatureType: model.SignatureTypeQueryString,
	}
}

// QQAPI returns the Tencent QQ OAuth 2.0 strategy. QQ answers token requests with a form
// encoded body.
func QQAPI() *OAuth20API {
	return &OAuth20API{
		ProviderName:         ProviderQQ,
		AuthorizeURLTemplate: "https://graph.qq.com/oauth2.0/authorize?client_id=%s&redirect_uri=%s&response_type=code",
		AccessTokenURL:       "https://graph.qq.com/oauth2.0/token",
		AccessTokenHTTPVerb:  model.VerbGet,
		TokenFormat:          extractor.FormatForm,
		DefaultSignatureType: model.SignatureTypeQueryString,
	}
}

// WeiboAPI returns the Sina Weibo OAuth 2.0 strategy.
func WeiboAPI() *OAuth20API {
	return &OAuth20API{
		ProviderName:         ProviderWeibo,
		AuthorizeURLTemplate: "https://api.weibo.com/oauth2/authorize?client_id=%s&redirect_uri=%s&response_type=code",
		AccessTokenURL:       "https://api.weibo.com/oauth2/access_token",
		AccessTokenHTTPVerb:  model.VerbPost,
		TokenFormat:          extractor.FormatJSON,
		DefaultSignatureType: model.SignatureTypeQueryString,
	}
}

// GitHubAPI returns the GitHub OAuth 2.0 strategy.
func GitHubAPI() *OAuth20API {
	return &OAuth20API{
		ProviderName:         ProviderGitHub,
		AuthorizeURLTemplate: "https://github.com/login/oauth/authorize?client_id=%s&redirect_uri=%s",
		AccessTokenURL:       "https://github.com/login/oauth/access_token",
		AccessTokenHTTPVerb:  model.VerbPost,
		TokenFormat:          extractor.FormatForm,
	}
}

// GoogleAPI returns the Google OAuth 2.0 strategy.
func GoogleAPI() *OAuth20API {
	return &OAuth20API{
		ProviderName:         ProviderGoogle,
		AuthorizeURLTemplate: "https://accounts.google.com/o/oauth2/v2/auth?response_type=code&client_id=%s&redirect_uri=%s",
		AccessTokenURL:       "https://oauth2.googleapis.com/token",
		AccessTokenHTTPVerb:  model.VerbPost,
		TokenFormat:          extractor.FormatJSON,
	}
}

// FacebookAPI returns the Facebook OAuth 2.0 strategy.
func FacebookAPI() *OAuth20API {
	return &OAuth20API{
		ProviderName:         ProviderFacebook,
		AuthorizeURLTemplate: "https://www.facebook.com/dialog/oauth?client_id=%s&redirect_uri=%s",
		AccessTokenURL:       "https://graph.facebook.com/oauth/access_token",
		AccessTokenHTTPVerb:  model.VerbGet,
		TokenFormat:          extractor.FormatJSON,
	}
}

// TwitterAPI returns the Twitter OAuth 1.0a strategy.
func TwitterAPI() *OAuth10aAPI {
	return &OAuth10aAPI{
		ProviderName:         ProviderTwitter,
		RequestTokenURL:      "https://api.twitter.com/oauth/request_token",
		AccessTokenURL:       "https://api.twitter.com/oauth/access_token",
		AuthorizeURLTemplate: "https://api.twitter.com/oauth/authorize?oauth_token=%s",
	}
}

// FlickrAPI returns the Flickr OAuth 1.0a strategy.
func FlickrAPI() *OAuth10aAPI {
	return &OAuth10aAPI{
		ProviderName:         ProviderFlickr,
		RequestTokenURL:      "https://www.flickr.com/services/oauth/request_token",
		AccessTokenURL:       "https://www.flickr.com/services/oauth/access_token",
		AuthorizeURLTemplate: "https://www.flickr.com/services/oauth/authorize?oauth_token=%s",
	}
}
