package services

import (
	"context"
	"encoding/json"

	watchparty "github.com/watchparty/watchparty-go"
)

// PartiesService manages watch parties: creation, membership, discovery.
type PartiesService struct {
	client *watchparty.Client
}

// Party is a watch party. The wire shape and the client shape agree for
// parties, so no transformer is involved.
type Party struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	HostID           string `json:"host_id"`
	VideoID          string `json:"video_id,omitempty"`
	Status           string `json:"status"`
	ScheduledFor     string `json:"scheduled_for,omitempty"`
	ParticipantCount int    `json:"participant_count"`
	IsPublic         bool   `json:"is_public"`
	InviteCode       string `json:"invite_code,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// CreatePartyRequest is the request to schedule a party.
type CreatePartyRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	VideoID      string `json:"video_id,omitempty"`
	ScheduledFor string `json:"scheduled_for,omitempty"`
	IsPublic     *bool  `json:"is_public,omitempty"`
}

// UpdatePartyRequest carries the mutable party fields.
type UpdatePartyRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	VideoID      *string `json:"video_id,omitempty"`
	ScheduledFor *string `json:"scheduled_for,omitempty"`
	IsPublic     *bool   `json:"is_public,omitempty"`
}

// InviteRequest invites users to a party by ID or email.
type InviteRequest struct {
	UserIDs []string `json:"user_ids,omitempty"`
	Emails  []string `json:"emails,omitempty"`
}

// List returns a page of parties visible to the current user.
func (s *PartiesService) List(ctx context.Context, params ListParams) (watchparty.Page[Party], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointParties, params.query()))
	if err != nil {
		return watchparty.Page[Party]{}, err
	}
	return decodePartyPage(raw), nil
}

// Recent returns the current user's recently attended parties.
func (s *PartiesService) Recent(ctx context.Context) (watchparty.Page[Party], error) {
	raw, err := s.client.GetRaw(ctx, watchparty.EndpointPartiesRecent)
	if err != nil {
		return watchparty.Page[Party]{}, err
	}
	return decodePartyPage(raw), nil
}

// Trending returns currently popular public parties.
func (s *PartiesService) Trending(ctx context.Context) (watchparty.Page[Party], error) {
	raw, err := s.client.GetRaw(ctx, watchparty.EndpointPartiesTrending)
	if err != nil {
		return watchparty.Page[Party]{}, err
	}
	return decodePartyPage(raw), nil
}

// Get returns a party by ID.
func (s *PartiesService) Get(ctx context.Context, id string) (*Party, error) {
	var party Party
	if err := s.client.Get(ctx, watchparty.EndpointParty(id), &party); err != nil {
		return nil, err
	}
	return &party, nil
}

// Create schedules a new party hosted by the current user.
func (s *PartiesService) Create(ctx context.Context, req CreatePartyRequest) (*Party, error) {
	var party Party
	if err := s.client.Post(ctx, watchparty.EndpointParties, req, &party); err != nil {
		return nil, err
	}
	return &party, nil
}

// Update patches an existing party.
func (s *PartiesService) Update(ctx context.Context, id string, req UpdatePartyRequest) (*Party, error) {
	var party Party
	if err := s.client.Patch(ctx, watchparty.EndpointParty(id), req, &party); err != nil {
		return nil, err
	}
	return &party, nil
}

// Delete cancels a party.
func (s *PartiesService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, watchparty.EndpointParty(id), nil)
}

// Join adds the current user to a party.
func (s *PartiesService) Join(ctx context.Context, id string) (*Party, error) {
	var party Party
	if err := s.client.Post(ctx, watchparty.EndpointPartyJoin(id), nil, &party); err != nil {
		return nil, err
	}
	return &party, nil
}

// Leave removes the current user from a party.
func (s *PartiesService) Leave(ctx context.Context, id string) error {
	return s.client.Post(ctx, watchparty.EndpointPartyLeave(id), nil, nil)
}

// Invite invites users to a party.
func (s *PartiesService) Invite(ctx context.Context, id string, req InviteRequest) error {
	return s.client.Post(ctx, watchparty.EndpointPartyInvite(id), req, nil)
}

func decodePartyPage(raw []byte) watchparty.Page[Party] {
	return watchparty.TransformPage(raw, func(item json.RawMessage) Party {
		var party Party
		_ = json.Unmarshal(item, &party)
		return party
	})
}
