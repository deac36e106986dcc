package domain

import (
	"testing"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/testutil"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Validate(t *testing.T) {
	questions := []entity.Question{
		testutil.QuestionAge,
		testutil.QuestionPlaystyle,
		testutil.QuestionReferral,
	}

	testcases := []struct {
		name      string
		responses []model.FormResponse
		expected  model.ValidationResult
	}{
		{
			name: "clean submission",
			responses: []model.FormResponse{
				{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
				{QuestionID: testutil.QuestionPlaystyle.ID, Answer: model.Answer{"casual"}},
			},
			expected: model.ValidationResult{Errors: map[string]string{}},
		},
		{
			name: "missing required answer",
			responses: []model.FormResponse{
				{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
			},
			expected: model.ValidationResult{
				Errors: map[string]string{
					testutil.QuestionPlaystyle.ID: model.ErrorRequired,
				},
			},
		},
		{
			name: "contradicting answer",
			responses: []model.FormResponse{
				{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
				{
					QuestionID: testutil.QuestionPlaystyle.ID,
					Answer:     model.Answer{"casual", "griefing"},
				},
			},
			expected: model.ValidationResult{
				Errors: map[string]string{
					testutil.QuestionPlaystyle.ID: model.ErrorContradiction,
				},
				HasContradictions: true,
			},
		},
		{
			name: "unknown question is ignored",
			responses: []model.FormResponse{
				{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
				{QuestionID: testutil.QuestionPlaystyle.ID, Answer: model.Answer{"casual"}},
				{QuestionID: "question_deleted", Answer: model.Answer{"whatever"}},
			},
			expected: model.ValidationResult{Errors: map[string]string{}},
		},
		{
			name:      "no responses at all",
			responses: []model.FormResponse{},
			expected: model.ValidationResult{
				Errors: map[string]string{
					testutil.QuestionAge.ID:       model.ErrorRequired,
					testutil.QuestionPlaystyle.ID: model.ErrorRequired,
				},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Validate(questions, tc.responses))
		})
	}
}

func Test_applicationDomain_Submit(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member1.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewQuestionRepository(),
		repository.NewUserRepository(),
	)

	resp, err := domain.Submit(ctx, &model.SubmitApplicationRequest{
		Responses: []model.FormResponse{
			{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
			{QuestionID: testutil.QuestionPlaystyle.ID, Answer: model.Answer{"competitive"}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	myResp, err := domain.GetMy(ctx, &model.GetMyApplicationRequest{})
	require.NoError(t, err)
	require.Equal(t, resp.ID, myResp.Application.ID)
	require.Equal(t, string(entity.Pending), myResp.Application.Status)

	// One application per user.
	_, err = domain.Submit(ctx, &model.SubmitApplicationRequest{
		Responses: []model.FormResponse{
			{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"13-17"}},
			{QuestionID: testutil.QuestionPlaystyle.ID, Answer: model.Answer{"casual"}},
		},
	})
	require.Equal(t, errorx.New(errorx.DuplicateApplication, "You already submitted an application"), err)
}

func Test_applicationDomain_Submit_invalidResponses(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member1.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewQuestionRepository(),
		repository.NewUserRepository(),
	)

	_, err := domain.Submit(ctx, &model.SubmitApplicationRequest{
		Responses: []model.FormResponse{
			{
				QuestionID: testutil.QuestionPlaystyle.ID,
				Answer:     model.Answer{"griefing"},
			},
		},
	})
	require.Error(t, err)

	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.ValidationFailed, errx.Code)
	require.Equal(t, model.ValidationResult{
		Errors: map[string]string{
			testutil.QuestionAge.ID:       model.ErrorRequired,
			testutil.QuestionPlaystyle.ID: model.ErrorContradiction,
		},
		HasContradictions: true,
	}, errx.Data)

	// Nothing was persisted.
	_, err = domain.GetMy(ctx, &model.GetMyApplicationRequest{})
	require.Equal(t, errorx.New(errorx.NotFound, "You have no application"), err)
}

func Test_applicationDomain_Review(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member1.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewQuestionRepository(),
		repository.NewUserRepository(),
	)

	resp, err := domain.Submit(ctx, &model.SubmitApplicationRequest{
		Responses: []model.FormResponse{
			{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
			{QuestionID: testutil.QuestionPlaystyle.ID, Answer: model.Answer{"casual"}},
		},
	})
	require.NoError(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	// A regular user cannot review.
	_, err = domain.Review(ctx, &model.ReviewApplicationRequest{ID: resp.ID, Action: "approved"})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	_, err = domain.Review(adminCtx, &model.ReviewApplicationRequest{ID: resp.ID, Action: "accepted"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Action must be approved or rejected"), err)

	_, err = domain.Review(adminCtx, &model.ReviewApplicationRequest{ID: resp.ID, Action: "approved"})
	require.NoError(t, err)

	applications, err := domain.GetList(adminCtx, &model.GetApplicationsRequest{})
	require.NoError(t, err)
	require.Len(t, applications.Applications, 1)
	require.Equal(t, string(entity.Approved), applications.Applications[0].Status)
	require.Equal(t, testutil.Admin.ID, applications.Applications[0].ReviewedBy)
	require.Equal(t, testutil.Member1.Username, applications.Applications[0].Username)

	// A review is final.
	_, err = domain.Review(adminCtx, &model.ReviewApplicationRequest{ID: resp.ID, Action: "rejected"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Application must be pending"), err)
}

func Test_applicationDomain_GetMy_removedQuestion(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member1.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertQuestions(ctx)

	domain := NewApplicationDomain(
		repository.NewApplicationRepository(),
		repository.NewQuestionRepository(),
		repository.NewUserRepository(),
	)

	_, err := domain.Submit(ctx, &model.SubmitApplicationRequest{
		Responses: []model.FormResponse{
			{QuestionID: testutil.QuestionAge.ID, Answer: model.Answer{"18+"}},
			{QuestionID: testutil.QuestionPlaystyle.ID, Answer: model.Answer{"casual"}},
			{QuestionID: testutil.QuestionReferral.ID, Answer: model.Answer{"friend"}},
		},
	})
	require.NoError(t, err)

	questionRepo := repository.NewQuestionRepository()
	require.NoError(t, questionRepo.DeleteByID(ctx, testutil.QuestionReferral.ID))

	resp, err := domain.GetMy(ctx, &model.GetMyApplicationRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Application.Responses, 3)

	for _, response := range resp.Application.Responses {
		if response.QuestionID == testutil.QuestionReferral.ID {
			require.True(t, response.QuestionRemoved)
			require.Empty(t, response.QuestionText)
		} else {
			require.False(t, response.QuestionRemoved)
			require.NotEmpty(t, response.QuestionText)
		}
	}
}
