package domain

import (
	"testing"

	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestQuestionDomain() *questionDomain {
	return NewQuestionDomain(
		repository.NewQuestionRepository(),
		repository.NewUserRepository(),
		nil,
	)
}

func Test_questionDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := newTestQuestionDomain()

	created, err := domain.Create(ctx, &model.CreateQuestionRequest{
		Text:            "Do you agree with the rules?",
		Type:            "single_choice",
		Options:         []string{"yes", "no"},
		Required:        true,
		ContradictsWith: []string{"no"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	resp, err := domain.GetList(ctx, &model.GetQuestionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 4)

	// New questions go to the end of the form.
	last := resp.Questions[len(resp.Questions)-1]
	require.Equal(t, created.ID, last.ID)
	require.Equal(t, 4, last.Position)
}

func Test_questionDomain_Create_invalidFields(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)

	domain := newTestQuestionDomain()

	testcases := []struct {
		name     string
		req      *model.CreateQuestionRequest
		expected error
	}{
		{
			name: "empty text",
			req: &model.CreateQuestionRequest{
				Type:    "single_choice",
				Options: []string{"yes", "no"},
			},
			expected: errorx.New(errorx.BadRequest, "Not allow empty text"),
		},
		{
			name: "invalid type",
			req: &model.CreateQuestionRequest{
				Text:    "Pick one",
				Type:    "free_text",
				Options: []string{"yes", "no"},
			},
			expected: errorx.New(errorx.BadRequest, "Invalid question type free_text"),
		},
		{
			name: "not enough options",
			req: &model.CreateQuestionRequest{
				Text:    "Pick one",
				Type:    "single_choice",
				Options: []string{"yes"},
			},
			expected: errorx.New(errorx.BadRequest, "Question needs at least two options"),
		},
		{
			name: "contradiction outside options",
			req: &model.CreateQuestionRequest{
				Text:            "Pick one",
				Type:            "single_choice",
				Options:         []string{"yes", "no"},
				ContradictsWith: []string{"maybe"},
			},
			expected: errorx.New(errorx.BadRequest, "Contradiction maybe is not an option"),
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.Create(ctx, tc.req)
			require.Equal(t, tc.expected, err)
		})
	}
}

func Test_questionDomain_UpdateDelete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := newTestQuestionDomain()

	_, err := domain.Update(ctx, &model.UpdateQuestionRequest{
		ID:       testutil.QuestionReferral.ID,
		Text:     "Where did you find us?",
		Type:     "single_choice",
		Options:  []string{"friend", "discord", "forum", "other"},
		Required: true,
	})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetQuestionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 3)
	require.Equal(t, "Where did you find us?", resp.Questions[2].Text)
	require.True(t, resp.Questions[2].Required)

	_, err = domain.Delete(ctx, &model.DeleteQuestionRequest{ID: testutil.QuestionReferral.ID})
	require.NoError(t, err)

	_, err = domain.Delete(ctx, &model.DeleteQuestionRequest{ID: testutil.QuestionReferral.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found question"), err)

	resp, err = domain.GetList(ctx, &model.GetQuestionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
}

func Test_questionDomain_Reorder(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := newTestQuestionDomain()

	_, err := domain.Reorder(ctx, &model.ReorderQuestionsRequest{
		QuestionIDs: []string{testutil.QuestionAge.ID},
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Must reorder all questions at once"), err)

	_, err = domain.Reorder(ctx, &model.ReorderQuestionsRequest{
		QuestionIDs: []string{
			testutil.QuestionReferral.ID,
			testutil.QuestionAge.ID,
			testutil.QuestionPlaystyle.ID,
		},
	})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetQuestionsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{
		testutil.QuestionReferral.ID,
		testutil.QuestionAge.ID,
		testutil.QuestionPlaystyle.ID,
	}, []string{resp.Questions[0].ID, resp.Questions[1].ID, resp.Questions[2].ID})
}

func Test_questionDomain_Create_permissionDenied(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member1.ID)
	testutil.InsertUsers(ctx)

	domain := newTestQuestionDomain()

	_, err := domain.Create(ctx, &model.CreateQuestionRequest{
		Text:    "Pick one",
		Type:    "single_choice",
		Options: []string{"yes", "no"},
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)
}
