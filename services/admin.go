package services

import (
	"context"
	"encoding/json"

	watchparty "github.com/watchparty/watchparty-go"
)

// AdminService backs the admin monitoring panels. Every call requires a
// staff account; the backend enforces that, not this client.
type AdminService struct {
	client *watchparty.Client
}

// AdminStats is the platform-wide summary.
type AdminStats struct {
	TotalUsers      int `json:"total_users"`
	ActiveUsers     int `json:"active_users"`
	ActiveParties   int `json:"active_parties"`
	TotalVideos     int `json:"total_videos"`
	MessagesPerHour int `json:"messages_per_hour"`
}

// ServiceHealth is the per-subsystem health report.
type ServiceHealth struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// SuspendUserRequest carries the suspension reason.
type SuspendUserRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Stats returns the platform-wide summary.
func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := s.client.Get(ctx, watchparty.EndpointAdminStats, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Users returns a page of all users for the admin panel.
func (s *AdminService) Users(ctx context.Context, params ListParams) (watchparty.Page[watchparty.User], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointAdminUsers, params.query()))
	if err != nil {
		return watchparty.Page[watchparty.User]{}, err
	}
	return watchparty.TransformPage(raw, func(item json.RawMessage) watchparty.User {
		return watchparty.TransformUser(item)
	}), nil
}

// SuspendUser suspends an account.
func (s *AdminService) SuspendUser(ctx context.Context, id, reason string) error {
	return s.client.Post(ctx, watchparty.EndpointAdminUserSuspend(id), SuspendUserRequest{Reason: reason}, nil)
}

// Health returns the per-subsystem health report.
func (s *AdminService) Health(ctx context.Context) ([]ServiceHealth, error) {
	var report []ServiceHealth
	if err := s.client.Get(ctx, watchparty.EndpointAdminHealth, &report); err != nil {
		return nil, err
	}
	return report, nil
}
