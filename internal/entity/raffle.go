package entity

import "time"

type Raffle struct {
	Base

	Title       string
	Description string
	EndDate     time.Time

	// Participants keeps insertion order for display. Membership is a set:
	// the repository rejects appending a user id which is already present.
	Participants Array[string]

	// Winner is empty until the draw. Once set the raffle is terminal.
	Winner   string
	IsActive bool

	CreatedBy string
	Creator   User `gorm:"foreignKey:CreatedBy"`
}
