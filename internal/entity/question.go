package entity

import "github.com/clanhub/backend/pkg/enum"

type QuestionType string

var (
	SingleChoice = enum.New(QuestionType("single_choice"))
	MultiChoice  = enum.New(QuestionType("multi_choice"))
)

type Question struct {
	Base

	Text     string
	Type     QuestionType
	Options  Array[string]
	Required bool

	// ContradictsWith holds option values which conflict with the membership
	// policy. A submitted answer matching any of them flags the whole
	// application as contradictory.
	ContradictsWith Array[string]

	Position int
}
