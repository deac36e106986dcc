package model

import (
	"github.com/clanhub/backend/internal/entity"
)

func ConvertUser(user *entity.User) User {
	result := User{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		DiscordUsername: user.DiscordUsername,
		RobloxUsername:  user.RobloxUsername,
		Role:            string(user.Role),
		RegisteredAt:    user.CreatedAt,
		HasApplied:      user.HasApplied,
		Banned:          user.Banned,
	}

	if user.LastLoginAt.Valid {
		lastLogin := user.LastLoginAt.Time
		result.LastLoginAt = &lastLogin
	}

	return result
}

func ConvertQuestion(question *entity.Question) Question {
	return Question{
		ID:              question.ID,
		Text:            question.Text,
		Type:            string(question.Type),
		Options:         question.Options,
		Required:        question.Required,
		ContradictsWith: question.ContradictsWith,
		Position:        question.Position,
	}
}

// ConvertApplication renders stored responses against the current question
// set. Responses whose question was deleted in the meantime are kept but
// marked as removed.
func ConvertApplication(
	app *entity.Application, username string, questions map[string]entity.Question,
) Application {
	responses := []ApplicationResponse{}
	for _, r := range app.Responses {
		resp := ApplicationResponse{QuestionID: r.QuestionID, Answers: r.Answers}
		if question, ok := questions[r.QuestionID]; ok {
			resp.QuestionText = question.Text
		} else {
			resp.QuestionRemoved = true
		}

		responses = append(responses, resp)
	}

	result := Application{
		ID:          app.ID,
		UserID:      app.UserID,
		Username:    username,
		Responses:   responses,
		SubmittedAt: app.SubmittedAt,
		Status:      string(app.Status),
		ReviewedBy:  app.ReviewedBy.String,
	}

	if app.ReviewedAt.Valid {
		reviewedAt := app.ReviewedAt.Time
		result.ReviewedAt = &reviewedAt
	}

	return result
}

func ConvertRaffle(raffle *entity.Raffle) Raffle {
	participants := raffle.Participants
	if participants == nil {
		participants = entity.Array[string]{}
	}

	return Raffle{
		ID:           raffle.ID,
		Title:        raffle.Title,
		Description:  raffle.Description,
		EndDate:      raffle.EndDate,
		Participants: participants,
		Winner:       raffle.Winner,
		IsActive:     raffle.IsActive,
		CreatedBy:    raffle.CreatedBy,
	}
}

func ConvertTicket(ticket *entity.Ticket, username string, responses []entity.TicketResponse) Ticket {
	clientResponses := []TicketResponse{}
	for _, r := range responses {
		clientResponses = append(clientResponses, TicketResponse{
			ID:              r.ID,
			TicketID:        r.TicketID,
			UserID:          r.UserID,
			Message:         r.Message,
			IsAdminResponse: r.IsAdminResponse,
			CreatedAt:       r.CreatedAt,
		})
	}

	return Ticket{
		ID:          ticket.ID,
		UserID:      ticket.UserID,
		Username:    username,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		AssignedTo:  ticket.AssignedTo.String,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		Responses:   clientResponses,
	}
}
