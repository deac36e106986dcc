package testutil

import (
	"context"
	"time"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/xcontext"
)

var (
	SuperAdmin = entity.User{
		Base:           entity.Base{ID: "user_super_admin"},
		Email:          "super-admin@example.com",
		HashedPassword: "$2a$10$yI1zTQGvDQbA0.mBVWz3R.8eXo0wRIptJ9rPs3PoG1P1sQFLgvKKO",
		Username:       "super_admin",
		Role:           entity.RoleSuperAdmin,
	}

	Admin = entity.User{
		Base:           entity.Base{ID: "user_admin"},
		Email:          "admin@example.com",
		HashedPassword: "$2a$10$yI1zTQGvDQbA0.mBVWz3R.8eXo0wRIptJ9rPs3PoG1P1sQFLgvKKO",
		Username:       "admin",
		Role:           entity.RoleAdmin,
	}

	Member1 = entity.User{
		Base:           entity.Base{ID: "user_member_1"},
		Email:          "member1@example.com",
		HashedPassword: "$2a$10$yI1zTQGvDQbA0.mBVWz3R.8eXo0wRIptJ9rPs3PoG1P1sQFLgvKKO",
		Username:       "member1",
		Role:           entity.RoleUser,
	}

	Member2 = entity.User{
		Base:           entity.Base{ID: "user_member_2"},
		Email:          "member2@example.com",
		HashedPassword: "$2a$10$yI1zTQGvDQbA0.mBVWz3R.8eXo0wRIptJ9rPs3PoG1P1sQFLgvKKO",
		Username:       "member2",
		Role:           entity.RoleUser,
	}

	BannedMember = entity.User{
		Base:           entity.Base{ID: "user_banned"},
		Email:          "banned@example.com",
		HashedPassword: "$2a$10$yI1zTQGvDQbA0.mBVWz3R.8eXo0wRIptJ9rPs3PoG1P1sQFLgvKKO",
		Username:       "banned",
		Role:           entity.RoleUser,
		Banned:         true,
	}
)

var (
	QuestionAge = entity.Question{
		Base:     entity.Base{ID: "question_age"},
		Text:     "How old are you?",
		Type:     entity.SingleChoice,
		Options:  entity.Array[string]{"under 13", "13-17", "18+"},
		Required: true,
		Position: 1,
	}

	QuestionPlaystyle = entity.Question{
		Base:            entity.Base{ID: "question_playstyle"},
		Text:            "Which playstyles describe you?",
		Type:            entity.MultiChoice,
		Options:         entity.Array[string]{"casual", "competitive", "griefing"},
		Required:        true,
		ContradictsWith: entity.Array[string]{"griefing"},
		Position:        2,
	}

	QuestionReferral = entity.Question{
		Base:     entity.Base{ID: "question_referral"},
		Text:     "How did you hear about us?",
		Type:     entity.SingleChoice,
		Options:  entity.Array[string]{"friend", "discord", "other"},
		Position: 3,
	}
)

var (
	ActiveRaffle = entity.Raffle{
		Base:         entity.Base{ID: "raffle_active"},
		Title:        "Weekly giveaway",
		EndDate:      time.Now().AddDate(0, 0, 7),
		Participants: entity.Array[string]{},
		IsActive:     true,
		CreatedBy:    Admin.ID,
	}

	ExpiredRaffle = entity.Raffle{
		Base:         entity.Base{ID: "raffle_expired"},
		Title:        "Last week giveaway",
		EndDate:      time.Now().AddDate(0, 0, -1),
		Participants: entity.Array[string]{Member1.ID},
		IsActive:     true,
		CreatedBy:    Admin.ID,
	}

	DrawnRaffle = entity.Raffle{
		Base:         entity.Base{ID: "raffle_drawn"},
		Title:        "Finished giveaway",
		EndDate:      time.Now().AddDate(0, 0, 7),
		Participants: entity.Array[string]{Member1.ID, Member2.ID},
		Winner:       Member1.ID,
		IsActive:     false,
		CreatedBy:    Admin.ID,
	}
)

func InsertUsers(ctx context.Context) {
	users := []entity.User{SuperAdmin, Admin, Member1, Member2, BannedMember}
	if err := xcontext.DB(ctx).Create(&users).Error; err != nil {
		panic(err)
	}
}

func InsertQuestions(ctx context.Context) {
	questions := []entity.Question{QuestionAge, QuestionPlaystyle, QuestionReferral}
	if err := xcontext.DB(ctx).Create(&questions).Error; err != nil {
		panic(err)
	}
}

func InsertRaffles(ctx context.Context) {
	raffles := []entity.Raffle{ActiveRaffle, ExpiredRaffle, DrawnRaffle}
	if err := xcontext.DB(ctx).Create(&raffles).Error; err != nil {
		panic(err)
	}
}
