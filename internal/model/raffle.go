package model

import "time"

type Raffle struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	EndDate      time.Time `json:"end_date"`
	Participants []string  `json:"participants"`
	Winner       string    `json:"winner,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    string    `json:"created_by"`
}

type GetRaffleRequest struct {
	ID string `json:"id"`
}

type GetRaffleResponse struct {
	Raffle Raffle `json:"raffle"`
}

type GetRafflesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetRafflesResponse struct {
	Raffles []Raffle `json:"raffles"`
}

type CreateRaffleRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
}

type CreateRaffleResponse struct {
	ID string `json:"id"`
}

type UpdateRaffleRequest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateRaffleResponse struct{}

type DeleteRaffleRequest struct {
	ID string `json:"id"`
}

type DeleteRaffleResponse struct{}

type JoinRaffleRequest struct {
	ID string `json:"id"`
}

type JoinRaffleResponse struct{}

type DrawRaffleWinnerRequest struct {
	ID string `json:"id"`
}

type DrawRaffleWinnerResponse struct {
	WinnerID string `json:"winner_id"`
}
