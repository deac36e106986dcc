package entity

import (
	"database/sql"

	"github.com/clanhub/backend/pkg/enum"
)

type TicketStatus string

var (
	TicketOpen       = enum.New(TicketStatus("open"))
	TicketInProgress = enum.New(TicketStatus("in_progress"))
	TicketClosed     = enum.New(TicketStatus("closed"))
)

type TicketPriority string

var (
	PriorityLow    = enum.New(TicketPriority("low"))
	PriorityMedium = enum.New(TicketPriority("medium"))
	PriorityHigh   = enum.New(TicketPriority("high"))
)

type Ticket struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	AssignedTo  sql.NullString
}

type TicketResponse struct {
	Base

	TicketID string
	Ticket   Ticket `gorm:"foreignKey:TicketID"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Message         string
	IsAdminResponse bool
}
