package services

import (
	"context"
	"fmt"

	watchparty "github.com/watchparty/watchparty-go"
)

// AuthService handles login, registration, and session lifecycle. It is the
// only service that writes to token storage.
type AuthService struct {
	client *watchparty.Client
	social map[string]SocialProvider
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the signup request body.
type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// ChangePasswordRequest is the password change request body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Login authenticates with the backend, stores the returned token pair, and
// returns the normalized auth response.
func (s *AuthService) Login(ctx context.Context, username, password string) (watchparty.AuthResponse, error) {
	raw, err := s.client.PostRaw(ctx, watchparty.EndpointAuthLogin, Credentials{
		Username: username,
		Password: password,
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

// Register creates an account and stores the returned token pair.
func (s *AuthService) Register(ctx context.Context, req Registration) (watchparty.AuthResponse, error) {
	raw, err := s.client.PostRaw(ctx, watchparty.EndpointAuthRegister, req)
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

// Logout invalidates the session server-side and clears stored tokens. The
// local tokens are cleared even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.client.Post(ctx, watchparty.EndpointAuthLogout, nil, nil)
	s.client.Tokens().ClearTokens()
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me returns the currently authenticated user.
func (s *AuthService) Me(ctx context.Context) (watchparty.User, error) {
	raw, err := s.client.GetRaw(ctx, watchparty.EndpointAuthMe)
	if err != nil {
		return watchparty.User{}, err
	}
	return watchparty.TransformUser(raw), nil
}

// ChangePassword changes the current user's password. The backend rotates
// the token pair on success.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) (watchparty.AuthResponse, error) {
	raw, err := s.client.PostRaw(ctx, watchparty.EndpointAuthPassword, ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return watchparty.AuthResponse{}, err
	}

	auth := watchparty.TransformAuthResponse(raw)
	if auth.AccessToken != "" {
		s.client.Tokens().SetTokens(watchparty.TokenPair{
			AccessToken:  auth.AccessToken,
			RefreshToken: auth.RefreshToken,
		})
	}
	return auth, nil
}
