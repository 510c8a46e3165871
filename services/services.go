// Package services provides the typed resource facades over the watchparty
// client: thin, stateless wrappers that shape parameters, call exactly one
// client method, and pipe responses through transformers where the wire
// shape diverges from the client contract.
//
// Services are bundled by Registry and constructed once at application
// bootstrap; there is no lazy instantiation.
package services

import (
	"net/url"
	"strconv"

	watchparty "github.com/watchparty/watchparty-go"
)

// Registry bundles every resource service over one shared client.
type Registry struct {
	Auth          *AuthService
	Users         *UsersService
	Videos        *VideosService
	Parties       *PartiesService
	Billing       *BillingService
	Chat          *ChatService
	Notifications *NotificationsService
	Analytics     *AnalyticsService
	Admin         *AdminService
	Support       *SupportService
}

// NewRegistry constructs all resource services over client. Call this once
// at bootstrap and hand the registry to the application layer.
func NewRegistry(client *watchparty.Client) *Registry {
	return &Registry{
		Auth:          &AuthService{client: client, social: make(map[string]SocialProvider)},
		Users:         &UsersService{client: client},
		Videos:        &VideosService{client: client},
		Parties:       &PartiesService{client: client},
		Billing:       &BillingService{client: client},
		Chat:          &ChatService{client: client},
		Notifications: &NotificationsService{client: client},
		Analytics:     &AnalyticsService{client: client},
		Admin:         &AdminService{client: client},
		Support:       &SupportService{client: client},
	}
}

// ListParams are the shared pagination parameters for list endpoints.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// withQuery appends encoded query parameters to a path.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
