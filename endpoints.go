// endpoints.go
// ------------
// Static registry of backend endpoints. Pure data: constants for fixed
// paths, small functions for ID-parameterized templates. URL shapes follow
// the backend's trailing-slash convention.
package watchparty

import "fmt"

// Auth endpoints
const (
	EndpointAuthLogin    = "/api/auth/login/"
	EndpointAuthRegister = "/api/auth/register/"
	EndpointAuthRefresh  = "/api/auth/refresh/"
	EndpointAuthLogout   = "/api/auth/logout/"
	EndpointAuthMe       = "/api/auth/me/"
	EndpointAuthPassword = "/api/auth/password/"
)

// User endpoints
const (
	EndpointUsers       = "/api/users/"
	EndpointUsersMe     = "/api/users/me/"
	EndpointUsersSearch = "/api/users/search/"
)

// Video endpoints
const (
	EndpointVideos = "/api/videos/"
)

// Party endpoints
const (
	EndpointParties         = "/api/parties/"
	EndpointPartiesRecent   = "/api/parties/recent/"
	EndpointPartiesTrending = "/api/parties/trending/"
)

// Billing endpoints
const (
	EndpointBillingPlans         = "/api/billing/plans/"
	EndpointBillingSubscription  = "/api/billing/subscription/"
	EndpointBillingSubscribe     = "/api/billing/subscribe/"
	EndpointBillingInvoices      = "/api/billing/invoices/"
	EndpointBillingPaymentMethod = "/api/billing/payment-method/"
)

// Chat endpoints
const (
	EndpointChatConversations = "/api/chat/conversations/"
)

// Notification endpoints
const (
	EndpointNotifications            = "/api/notifications/"
	EndpointNotificationsMarkAllRead = "/api/notifications/mark-all-read/"
)

// Analytics endpoints
const (
	EndpointAnalyticsDashboard = "/api/analytics/dashboard/"
	EndpointAnalyticsWatchTime = "/api/analytics/watch-time/"
)

// Admin endpoints
const (
	EndpointAdminStats  = "/api/admin/stats/"
	EndpointAdminUsers  = "/api/admin/users/"
	EndpointAdminHealth = "/api/admin/health/"
)

// Support endpoints
const (
	EndpointSupportFeedback = "/api/support/feedback/"
	EndpointSupportTickets  = "/api/support/tickets/"
)

// Social auth endpoints
const (
	EndpointSocialAuthComplete = "/api/auth/social/complete/"
)

// Health check
const EndpointHealth = "/health/"

// ID-parameterized templates.

func EndpointUser(id string) string  { return fmt.Sprintf("/api/users/%s/", id) }
func EndpointVideo(id string) string { return fmt.Sprintf("/api/videos/%s/", id) }
func EndpointVideoFile(id string) string {
	return fmt.Sprintf("/api/videos/%s/file/", id)
}
func EndpointParty(id string) string { return fmt.Sprintf("/api/parties/%s/", id) }
func EndpointPartyJoin(id string) string {
	return fmt.Sprintf("/api/parties/%s/join/", id)
}
func EndpointPartyLeave(id string) string {
	return fmt.Sprintf("/api/parties/%s/leave/", id)
}
func EndpointPartyInvite(id string) string {
	return fmt.Sprintf("/api/parties/%s/invite/", id)
}
func EndpointPartyStats(id string) string {
	return fmt.Sprintf("/api/analytics/parties/%s/", id)
}
func EndpointConversationMessages(id string) string {
	return fmt.Sprintf("/api/chat/conversations/%s/messages/", id)
}
func EndpointConversationRead(id string) string {
	return fmt.Sprintf("/api/chat/conversations/%s/read/", id)
}
func EndpointNotification(id string) string {
	return fmt.Sprintf("/api/notifications/%s/", id)
}
func EndpointNotificationRead(id string) string {
	return fmt.Sprintf("/api/notifications/%s/read/", id)
}
func EndpointAdminUserSuspend(id string) string {
	return fmt.Sprintf("/api/admin/users/%s/suspend/", id)
}
func EndpointSupportTicket(id string) string {
	return fmt.Sprintf("/api/support/tickets/%s/", id)
}

// WebSocket endpoint templates. Auth travels as a synthetic subprotocol,
// not a header; see DialWebSocket.

func EndpointWSChat(partyID string) string { return fmt.Sprintf("/ws/chat/%s/", partyID) }
func EndpointWSPartySync(partyID string) string {
	return fmt.Sprintf("/ws/party/%s/sync/", partyID)
}
func EndpointWSInteractive(partyID string) string {
	return fmt.Sprintf("/ws/interactive/%s/", partyID)
}
