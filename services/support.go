package services

import (
	"context"

	watchparty "github.com/watchparty/watchparty-go"
)

// SupportService covers feedback submission and support tickets.
type SupportService struct {
	client *watchparty.Client
}

// Feedback is a free-form product feedback submission.
type Feedback struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	PageURL  string `json:"page_url,omitempty"`
}

// Ticket is a support ticket.
type Ticket struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Body      string `json:"body,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CreateTicketRequest opens a new support ticket.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SubmitFeedback sends product feedback.
func (s *SupportService) SubmitFeedback(ctx context.Context, fb Feedback) error {
	return s.client.Post(ctx, watchparty.EndpointSupportFeedback, fb, nil)
}

// Tickets returns the current user's support tickets.
func (s *SupportService) Tickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := s.client.Get(ctx, watchparty.EndpointSupportTickets, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Ticket returns one support ticket.
func (s *SupportService) Ticket(ctx context.Context, id string) (*Ticket, error) {
	var ticket Ticket
	if err := s.client.Get(ctx, watchparty.EndpointSupportTicket(id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket opens a new support ticket.
func (s *SupportService) CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	var ticket Ticket
	if err := s.client.Post(ctx, watchparty.EndpointSupportTickets, req, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
