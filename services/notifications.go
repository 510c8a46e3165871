package services

import (
	"context"
	"encoding/json"

	watchparty "github.com/watchparty/watchparty-go"
	"golang.org/x/sync/errgroup"
)

// NotificationsService manages the current user's notification feed.
type NotificationsService struct {
	client *watchparty.Client
}

// Notification is one feed entry.
type Notification struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Link      string `json:"link,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at,omitempty"`
}

// List returns a page of notifications.
func (s *NotificationsService) List(ctx context.Context, params ListParams) (watchparty.Page[Notification], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointNotifications, params.query()))
	if err != nil {
		return watchparty.Page[Notification]{}, err
	}
	return watchparty.TransformPage(raw, func(item json.RawMessage) Notification {
		var n Notification
		_ = json.Unmarshal(item, &n)
		return n
	}), nil
}

// MarkRead marks one notification as read.
func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	return s.client.Post(ctx, watchparty.EndpointNotificationRead(id), nil, nil)
}

// MarkAllRead marks every notification as read.
func (s *NotificationsService) MarkAllRead(ctx context.Context) error {
	return s.client.Post(ctx, watchparty.EndpointNotificationsMarkAllRead, nil, nil)
}

// Delete removes one notification.
func (s *NotificationsService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, watchparty.EndpointNotification(id), nil)
}

// BulkDelete removes several notifications by fanning out individual delete
// calls concurrently. The backend has no bulk endpoint; the aggregate fails
// on the first error and per-item partial failure is not reported. Known
// limitation.
func (s *NotificationsService) BulkDelete(ctx context.Context, ids []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return s.Delete(ctx, id)
		})
	}
	return g.Wait()
}
