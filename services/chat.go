package services

import (
	"context"
	"encoding/json"

	watchparty "github.com/watchparty/watchparty-go"
)

// ChatService covers direct-message conversations and party chat history.
// Live party chat goes over the websocket endpoints; this service is the
// REST side.
type ChatService struct {
	client *watchparty.Client
}

// SendMessageRequest is the request to post a message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// Conversations returns a page of the current user's conversations.
func (s *ChatService) Conversations(ctx context.Context, params ListParams) (watchparty.Page[watchparty.Conversation], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointChatConversations, params.query()))
	if err != nil {
		return watchparty.Page[watchparty.Conversation]{}, err
	}
	return watchparty.TransformPage(raw, func(item json.RawMessage) watchparty.Conversation {
		return watchparty.TransformConversation(item)
	}), nil
}

// Messages returns a page of messages in a conversation.
func (s *ChatService) Messages(ctx context.Context, conversationID string, params ListParams) (watchparty.Page[watchparty.Message], error) {
	raw, err := s.client.GetRaw(ctx, withQuery(watchparty.EndpointConversationMessages(conversationID), params.query()))
	if err != nil {
		return watchparty.Page[watchparty.Message]{}, err
	}
	return watchparty.TransformPage(raw, func(item json.RawMessage) watchparty.Message {
		return watchparty.TransformMessage(item)
	}), nil
}

// Send posts a message to a conversation.
func (s *ChatService) Send(ctx context.Context, conversationID, content string) (watchparty.Message, error) {
	raw, err := s.client.PostRaw(ctx, watchparty.EndpointConversationMessages(conversationID), SendMessageRequest{
		Content: content,
	})
	if err != nil {
		return watchparty.Message{}, err
	}
	return watchparty.TransformMessage(raw), nil
}

// MarkRead marks every message in a conversation as read.
func (s *ChatService) MarkRead(ctx context.Context, conversationID string) error {
	return s.client.Post(ctx, watchparty.EndpointConversationRead(conversationID), nil, nil)
}
