package services

import (
	"context"
	"encoding/json"

	watchparty "github.com/watchparty/watchparty-go"
)

// UsersService reads and updates user profiles.
type UsersService struct {
	client *watchparty.Client
}

// UpdateProfileRequest carries the mutable profile fields. Nil fields are
// left unchanged by the backend.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Get returns a user by ID.
func (s *UsersService) Get(ctx context.Context, id string) (watchparty.User, error) {
	raw, err := s.client.GetRaw(ctx, watchparty.EndpointUser(id))
	if err != nil {
		return watchparty.User{}, err
	}
	return watchparty.TransformUser(raw), nil
}

// Me returns the current user's profile.
func (s *UsersService) Me(ctx context.Context) (watchparty.User, error) {
	raw, err := s.client.GetRaw(ctx, watchparty.EndpointUsersMe)
	if err != nil {
		return watchparty.User{}, err
	}
	return watchparty.TransformUser(raw), nil
}

// List returns a page of users.
func (s *UsersService) List(ctx context.Context, params ListParams) (watchparty.Page[watchparty.User], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointUsers, params.query()))
	if err != nil {
		return watchparty.Page[watchparty.User]{}, err
	}
	return watchparty.TransformPage(raw, func(item json.RawMessage) watchparty.User {
		return watchparty.TransformUser(item)
	}), nil
}

// Search returns users matching query.
func (s *UsersService) Search(ctx context.Context, query string) (watchparty.Page[watchparty.User], error) {
	return s.List(ctx, ListParams{Search: query})
}

// UpdateProfile patches the current user's profile.
func (s *UsersService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (watchparty.User, error) {
	var raw json.RawMessage
	if err := s.client.Patch(ctx, watchparty.EndpointUsersMe, req, &raw); err != nil {
		return watchparty.User{}, err
	}
	return watchparty.TransformUser(raw), nil
}
