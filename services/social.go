// social.go
// ---------
// Social login runs outside the standard JSON pipeline: the authorization
// URL and code exchange follow the provider's OAuth2 contract, and only the
// final completion call reaches the watchparty backend.
package services

import (
	"context"
	"fmt"

	watchparty "github.com/watchparty/watchparty-go"
	"golang.org/x/oauth2"
)

// SocialProvider pairs a provider name with its OAuth2 configuration.
type SocialProvider struct {
	Name   string
	Config *oauth2.Config
}

// RegisterSocialProvider makes an OAuth2 provider available for social
// login. Typically called once at bootstrap with the provider credentials
// the backend issued.
func (s *AuthService) RegisterSocialProvider(name string, cfg *oauth2.Config) {
	s.social[name] = SocialProvider{Name: name, Config: cfg}
}

// SocialAuthURL builds the provider's authorization URL for a redirect
// login flow. state must be echoed back by the provider and verified by the
// caller.
func (s *AuthService) SocialAuthURL(provider, state string) (string, error) {
	p, ok := s.social[provider]
	if !ok {
		return "", fmt.Errorf("social provider %q not registered", provider)
	}
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// socialCompleteRequest is the backend completion body: the provider and
// the provider-issued access token.
type socialCompleteRequest struct {
	Provider    string `json:"provider"`
	AccessToken string `json:"access_token"`
}

// CompleteSocialAuth exchanges the authorization code with the provider,
// then trades the provider token for a watchparty session. The code
// exchange deliberately bypasses the client pipeline; only the completion
// call goes through it.
func (s *AuthService) CompleteSocialAuth(ctx context.Context, provider, code string) (watchparty.AuthResponse, error) {
	p, ok := s.social[provider]
	if !ok {
		return watchparty.AuthResponse{}, fmt.Errorf("social provider %q not registered", provider)
	}

	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return watchparty.AuthResponse{}, fmt.Errorf("oauth2 exchange with %s failed: %w", provider, err)
	}

	raw, err := s.client.PostRaw(ctx, watchparty.EndpointSocialAuthComplete, socialCompleteRequest{
		Provider:    provider,
		AccessToken: token.AccessToken,
	})
	if err != nil {
		return watchparty.AuthResponse{}, err
	}

	auth := watchparty.TransformAuthResponse(raw)
	s.client.Tokens().SetTokens(watchparty.TokenPair{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
	})
	return auth, nil
}
