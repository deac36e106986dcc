package model

import "time"

type TicketResponse struct {
	ID              string    `json:"id"`
	TicketID        string    `json:"ticket_id"`
	UserID          string    `json:"user_id"`
	Message         string    `json:"message"`
	IsAdminResponse bool      `json:"is_admin_response"`
	CreatedAt       time.Time `json:"created_at"`
}

type Ticket struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Username    string           `json:"username,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	AssignedTo  string           `json:"assigned_to,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Responses   []TicketResponse `json:"responses"`
}

type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type CreateTicketResponse struct {
	ID string `json:"id"`
}

type GetMyTicketsRequest struct{}

type GetMyTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type GetTicketsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type RespondTicketRequest struct {
	TicketID string `json:"ticket_id"`
	Message  string `json:"message"`
}

type RespondTicketResponse struct {
	ID string `json:"id"`
}

type UpdateTicketStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateTicketStatusResponse struct{}
