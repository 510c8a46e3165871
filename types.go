// types.go
// --------
// Raw and normalized entity shapes for the resources whose backend payloads
// diverge from the client contract (users, videos, messaging). Raw types
// mirror the wire format: snake_case keys, nullable optionals. Normalized
// types are the defaulted shapes the rest of the application consumes, each
// carrying an explicit Normalized marker set by its transformer.
package watchparty

import "encoding/json"

// RawUser is the backend wire shape of a user.
type RawUser struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Email            *string `json:"email"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	DisplayName      *string `json:"display_name"`
	AvatarURL        *string `json:"avatar_url"`
	Bio              *string `json:"bio"`
	IsPremium        *bool   `json:"is_premium"`
	IsStaff          *bool   `json:"is_staff"`
	PartiesHosted    *int    `json:"parties_hosted"`
	WatchTimeMinutes *int    `json:"watch_time_minutes"`
	CreatedAt        *string `json:"created_at"`
}

// User is the normalized client shape of a user.
type User struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	DisplayName      string `json:"displayName"`
	AvatarURL        string `json:"avatarUrl"`
	Bio              string `json:"bio"`
	IsPremium        bool   `json:"isPremium"`
	IsStaff          bool   `json:"isStaff"`
	PartiesHosted    int    `json:"partiesHosted"`
	WatchTimeMinutes int    `json:"watchTimeMinutes"`
	CreatedAt        string `json:"createdAt"`

	// Normalized marks the value as transformer output.
	Normalized bool `json:"-"`
}

// RawVideo is the backend wire shape of a video.
type RawVideo struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	ThumbnailURL    *string  `json:"thumbnail_url"`
	SourceURL       *string  `json:"source_url"`
	DurationSeconds *int     `json:"duration_seconds"`
	ViewCount       *int     `json:"view_count"`
	Visibility      *string  `json:"visibility"`
	Uploader        *RawUser `json:"uploader"`
	CreatedAt       *string  `json:"created_at"`
}

// Video is the normalized client shape of a video.
type Video struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	SourceURL       string `json:"sourceUrl"`
	DurationSeconds int    `json:"durationSeconds"`
	ViewCount       int    `json:"viewCount"`
	Visibility      string `json:"visibility"`
	Uploader        User   `json:"uploader"`
	CreatedAt       string `json:"createdAt"`

	Normalized bool `json:"-"`
}

// RawMessage is the backend wire shape of a chat message.
type RawMessage struct {
	ID             string   `json:"id"`
	ConversationID *string  `json:"conversation_id"`
	PartyID        *string  `json:"party_id"`
	Sender         *RawUser `json:"sender"`
	Content        *string  `json:"content"`
	IsRead         *bool    `json:"is_read"`
	SentAt         *string  `json:"sent_at"`
}

// Message is the normalized client shape of a chat message.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	PartyID        string `json:"partyId"`
	Sender         User   `json:"sender"`
	Content        string `json:"content"`
	Read           bool   `json:"read"`
	SentAt         string `json:"sentAt"`

	Normalized bool `json:"-"`
}

// RawConversation is the backend wire shape of a conversation.
type RawConversation struct {
	ID           string      `json:"id"`
	Participants []RawUser   `json:"participants"`
	LastMessage  *RawMessage `json:"last_message"`
	UnreadCount  *int        `json:"unread_count"`
	UpdatedAt    *string     `json:"updated_at"`
}

// Conversation is the normalized client shape of a conversation.
type Conversation struct {
	ID           string   `json:"id"`
	Participants []User   `json:"participants"`
	LastMessage  *Message `json:"lastMessage"`
	UnreadCount  int      `json:"unreadCount"`
	UpdatedAt    string   `json:"updatedAt"`

	Normalized bool `json:"-"`
}

// RawAuthResponse is the backend wire shape of a login result.
type RawAuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         json.RawMessage `json:"user"`
}

// AuthResponse is the normalized client shape of a login result.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`

	Normalized bool `json:"-"`
}
