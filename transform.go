// transform.go
// ------------
// Pure transformer functions mapping raw backend payloads to normalized
// client shapes. Transformers are total and idempotent: already-normalized
// input passes through unchanged (guarded by the Normalized marker), and
// missing or malformed input degrades to zero values instead of failing.
package watchparty

import "encoding/json"

// pageListKeys are the candidate envelope keys for list payloads, tried in
// priority order. Exactly the first key holding an array is used.
var pageListKeys = []string{"results", "items", "data", "users", "conversations", "messages"}

// TransformUser normalizes a user payload. Accepted inputs: User, *User,
// RawUser, *RawUser, raw JSON bytes, or nil.
func TransformUser(v any) User {
	switch val := v.(type) {
	case User:
		val.Normalized = true
		return val
	case *User:
		if val == nil {
			return User{Normalized: true}
		}
		out := *val
		out.Normalized = true
		return out
	case RawUser:
		return userFromRaw(&val)
	case *RawUser:
		return userFromRaw(val)
	case json.RawMessage:
		return userFromJSON(val)
	case []byte:
		return userFromJSON(val)
	default:
		return User{Normalized: true}
	}
}

func userFromJSON(data []byte) User {
	var raw RawUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return User{Normalized: true}
	}
	return userFromRaw(&raw)
}

func userFromRaw(raw *RawUser) User {
	if raw == nil {
		return User{Normalized: true}
	}
	return User{
		ID:               raw.ID,
		Username:         raw.Username,
		Email:            strOr(raw.Email),
		FirstName:        strOr(raw.FirstName),
		LastName:         strOr(raw.LastName),
		DisplayName:      strOr(raw.DisplayName),
		AvatarURL:        strOr(raw.AvatarURL),
		Bio:              strOr(raw.Bio),
		IsPremium:        boolOr(raw.IsPremium),
		IsStaff:          boolOr(raw.IsStaff),
		PartiesHosted:    intOr(raw.PartiesHosted),
		WatchTimeMinutes: intOr(raw.WatchTimeMinutes),
		CreatedAt:        strOr(raw.CreatedAt),
		Normalized:       true,
	}
}

// TransformVideo normalizes a video payload, transforming the embedded
// uploader recursively.
func TransformVideo(v any) Video {
	switch val := v.(type) {
	case Video:
		val.Normalized = true
		return val
	case *Video:
		if val == nil {
			return Video{Normalized: true}
		}
		out := *val
		out.Normalized = true
		return out
	case RawVideo:
		return videoFromRaw(&val)
	case *RawVideo:
		return videoFromRaw(val)
	case json.RawMessage:
		return videoFromJSON(val)
	case []byte:
		return videoFromJSON(val)
	default:
		return Video{Normalized: true}
	}
}

func videoFromJSON(data []byte) Video {
	var raw RawVideo
	if err := json.Unmarshal(data, &raw); err != nil {
		return Video{Normalized: true}
	}
	return videoFromRaw(&raw)
}

func videoFromRaw(raw *RawVideo) Video {
	if raw == nil {
		return Video{Normalized: true}
	}
	return Video{
		ID:              raw.ID,
		Title:           raw.Title,
		Description:     strOr(raw.Description),
		ThumbnailURL:    strOr(raw.ThumbnailURL),
		SourceURL:       strOr(raw.SourceURL),
		DurationSeconds: intOr(raw.DurationSeconds),
		ViewCount:       intOr(raw.ViewCount),
		Visibility:      strOr(raw.Visibility),
		Uploader:        TransformUser(raw.Uploader),
		CreatedAt:       strOr(raw.CreatedAt),
		Normalized:      true,
	}
}

// TransformMessage normalizes a chat message payload.
func TransformMessage(v any) Message {
	switch val := v.(type) {
	case Message:
		val.Normalized = true
		return val
	case *Message:
		if val == nil {
			return Message{Normalized: true}
		}
		out := *val
		out.Normalized = true
		return out
	case RawMessage:
		return messageFromRaw(&val)
	case *RawMessage:
		return messageFromRaw(val)
	case json.RawMessage:
		return messageFromJSON(val)
	case []byte:
		return messageFromJSON(val)
	default:
		return Message{Normalized: true}
	}
}

func messageFromJSON(data []byte) Message {
	var raw RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Message{Normalized: true}
	}
	return messageFromRaw(&raw)
}

func messageFromRaw(raw *RawMessage) Message {
	if raw == nil {
		return Message{Normalized: true}
	}
	return Message{
		ID:             raw.ID,
		ConversationID: strOr(raw.ConversationID),
		PartyID:        strOr(raw.PartyID),
		Sender:         TransformUser(raw.Sender),
		Content:        strOr(raw.Content),
		Read:           boolOr(raw.IsRead),
		SentAt:         strOr(raw.SentAt),
		Normalized:     true,
	}
}

// TransformConversation normalizes a conversation payload, transforming
// participants and the last message recursively.
func TransformConversation(v any) Conversation {
	switch val := v.(type) {
	case Conversation:
		val.Normalized = true
		return val
	case *Conversation:
		if val == nil {
			return Conversation{Normalized: true}
		}
		out := *val
		out.Normalized = true
		return out
	case RawConversation:
		return conversationFromRaw(&val)
	case *RawConversation:
		return conversationFromRaw(val)
	case json.RawMessage:
		return conversationFromJSON(val)
	case []byte:
		return conversationFromJSON(val)
	default:
		return Conversation{Normalized: true}
	}
}

func conversationFromJSON(data []byte) Conversation {
	var raw RawConversation
	if err := json.Unmarshal(data, &raw); err != nil {
		return Conversation{Normalized: true}
	}
	return conversationFromRaw(&raw)
}

func conversationFromRaw(raw *RawConversation) Conversation {
	if raw == nil {
		return Conversation{Normalized: true}
	}

	participants := make([]User, 0, len(raw.Participants))
	for i := range raw.Participants {
		participants = append(participants, TransformUser(&raw.Participants[i]))
	}

	var last *Message
	if raw.LastMessage != nil {
		msg := TransformMessage(raw.LastMessage)
		last = &msg
	}

	return Conversation{
		ID:           raw.ID,
		Participants: participants,
		LastMessage:  last,
		UnreadCount:  intOr(raw.UnreadCount),
		UpdatedAt:    strOr(raw.UpdatedAt),
		Normalized:   true,
	}
}

// TransformAuthResponse normalizes a login payload, transforming the
// embedded user recursively.
func TransformAuthResponse(v any) AuthResponse {
	switch val := v.(type) {
	case AuthResponse:
		val.Normalized = true
		return val
	case *AuthResponse:
		if val == nil {
			return AuthResponse{Normalized: true}
		}
		out := *val
		out.Normalized = true
		return out
	case RawAuthResponse:
		return authResponseFromRaw(&val)
	case *RawAuthResponse:
		return authResponseFromRaw(val)
	case json.RawMessage:
		return authResponseFromJSON(val)
	case []byte:
		return authResponseFromJSON(val)
	default:
		return AuthResponse{Normalized: true}
	}
}

func authResponseFromJSON(data []byte) AuthResponse {
	var raw RawAuthResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return AuthResponse{Normalized: true}
	}
	return authResponseFromRaw(&raw)
}

func authResponseFromRaw(raw *RawAuthResponse) AuthResponse {
	if raw == nil {
		return AuthResponse{Normalized: true}
	}

	var user User
	if len(raw.User) > 0 {
		user = TransformUser(json.RawMessage(raw.User))
	} else {
		user = User{Normalized: true}
	}

	return AuthResponse{
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
		User:         user,
		Normalized:   true,
	}
}

// Page is the normalized list envelope shared by every paginated resource.
type Page[T any] struct {
	Results    []T             `json:"results"`
	Count      int             `json:"count"`
	Next       string          `json:"next"`
	Previous   string          `json:"previous"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
}

// TransformPage normalizes a heterogeneous list envelope: the candidate
// keys are tried in priority order, the first array found is mapped element
// by element, and pagination metadata is re-attached verbatim. A payload
// with no recognizable list degrades to an empty page.
func TransformPage[T any](payload []byte, mapper func(json.RawMessage) T) Page[T] {
	page := Page[T]{Results: []T{}}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		// Some endpoints return a bare array instead of an envelope.
		var bare []json.RawMessage
		if err := json.Unmarshal(payload, &bare); err != nil {
			return page
		}
		for _, item := range bare {
			page.Results = append(page.Results, mapper(item))
		}
		page.Count = len(page.Results)
		return page
	}

	var items []json.RawMessage
	for _, key := range pageListKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			continue
		}
		items = arr
		break
	}

	for _, item := range items {
		page.Results = append(page.Results, mapper(item))
	}

	if raw, ok := envelope["count"]; ok {
		_ = json.Unmarshal(raw, &page.Count)
	} else {
		page.Count = len(page.Results)
	}
	if raw, ok := envelope["next"]; ok {
		_ = json.Unmarshal(raw, &page.Next)
	}
	if raw, ok := envelope["previous"]; ok {
		_ = json.Unmarshal(raw, &page.Previous)
	}
	if raw, ok := envelope["pagination"]; ok {
		page.Pagination = raw
	}

	return page
}

// Nullable-field defaults.

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func boolOr(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
