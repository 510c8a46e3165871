package services

import (
	"context"

	watchparty "github.com/watchparty/watchparty-go"
)

// AnalyticsService reads aggregate stats for dashboards.
type AnalyticsService struct {
	client *watchparty.Client
}

// Dashboard is the personal analytics summary.
type Dashboard struct {
	PartiesHosted    int `json:"parties_hosted"`
	PartiesAttended  int `json:"parties_attended"`
	WatchTimeMinutes int `json:"watch_time_minutes"`
	MessagesSent     int `json:"messages_sent"`
	FriendsMade      int `json:"friends_made"`
}

// PartyStats are per-party engagement numbers.
type PartyStats struct {
	PartyID          string  `json:"party_id"`
	PeakParticipants int     `json:"peak_participants"`
	TotalMessages    int     `json:"total_messages"`
	AvgWatchMinutes  float64 `json:"avg_watch_minutes"`
	ReactionsCount   int     `json:"reactions_count"`
}

// WatchTimePoint is one bucket of the watch-time series.
type WatchTimePoint struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// Dashboard returns the current user's analytics summary.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	if err := s.client.Get(ctx, watchparty.EndpointAnalyticsDashboard, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// PartyStats returns engagement stats for one party.
func (s *AnalyticsService) PartyStats(ctx context.Context, partyID string) (*PartyStats, error) {
	var stats PartyStats
	if err := s.client.Get(ctx, watchparty.EndpointPartyStats(partyID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// WatchTime returns the current user's watch-time series.
func (s *AnalyticsService) WatchTime(ctx context.Context) ([]WatchTimePoint, error) {
	var points []WatchTimePoint
	if err := s.client.Get(ctx, watchparty.EndpointAnalyticsWatchTime, &points); err != nil {
		return nil, err
	}
	return points, nil
}
