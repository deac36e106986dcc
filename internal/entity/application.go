package entity

import (
	"database/sql"
	"time"

	"github.com/clanhub/backend/pkg/enum"
)

type ApplicationStatus string

var (
	Pending  = enum.New(ApplicationStatus("pending"))
	Approved = enum.New(ApplicationStatus("approved"))
	Rejected = enum.New(ApplicationStatus("rejected"))
)

type FormResponse struct {
	QuestionID string   `json:"question_id"`
	Answers    []string `json:"answers"`
}

type Application struct {
	Base

	UserID string `gorm:"unique"`
	User   User   `gorm:"foreignKey:UserID"`

	Responses   Array[FormResponse]
	SubmittedAt time.Time
	Status      ApplicationStatus

	ReviewedBy sql.NullString
	ReviewedAt sql.NullTime
}
