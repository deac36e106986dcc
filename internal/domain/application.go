package domain

import (
	"context"
	"errors"
	"time"

	"github.com/clanhub/backend/internal/common"
	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/google/uuid"
	mathutil "github.com/pkg/math"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ApplicationDomain interface {
	Submit(context.Context, *model.SubmitApplicationRequest) (*model.SubmitApplicationResponse, error)
	GetMy(context.Context, *model.GetMyApplicationRequest) (*model.GetMyApplicationResponse, error)
	GetList(context.Context, *model.GetApplicationsRequest) (*model.GetApplicationsResponse, error)
	Review(context.Context, *model.ReviewApplicationRequest) (*model.ReviewApplicationResponse, error)
}

type applicationDomain struct {
	applicationRepo    repository.ApplicationRepository
	questionRepo       repository.QuestionRepository
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
) *applicationDomain {
	return &applicationDomain{
		applicationRepo:    applicationRepo,
		questionRepo:       questionRepo,
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

// Validate checks the responses against the current question set. It records
// a required error for every required question without a non-empty answer,
// and a contradiction error for every answer intersecting the question's
// contradiction set. Responses referencing an unknown question are ignored.
// It is a pure function: it mutates neither questions nor responses.
func Validate(questions []entity.Question, responses []model.FormResponse) model.ValidationResult {
	answersByQuestion := map[string][]string{}
	for _, response := range responses {
		answersByQuestion[response.QuestionID] = response.Answer
	}

	result := model.ValidationResult{Errors: map[string]string{}}
	for _, question := range questions {
		answers := answersByQuestion[question.ID]
		if question.Required && len(answers) == 0 {
			result.Errors[question.ID] = model.ErrorRequired
			continue
		}

		if len(question.ContradictsWith) == 0 {
			continue
		}

		for _, answer := range answers {
			if slices.Contains(question.ContradictsWith, answer) {
				result.Errors[question.ID] = model.ErrorContradiction
				result.HasContradictions = true
				break
			}
		}
	}

	return result
}

func (d *applicationDomain) Submit(
	ctx context.Context, req *model.SubmitApplicationRequest,
) (*model.SubmitApplicationResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	_, err := d.applicationRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, errorx.New(errorx.DuplicateApplication, "You already submitted an application")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the existing application: %v", err)
		return nil, errorx.Unknown
	}

	questions, err := d.questionRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get questions: %v", err)
		return nil, errorx.Unknown
	}

	result := Validate(questions, req.Responses)
	if !result.Clean() {
		return nil, errorx.New(errorx.ValidationFailed, "Invalid responses").WithData(result)
	}

	responses := entity.Array[entity.FormResponse]{}
	for _, response := range req.Responses {
		responses = append(responses, entity.FormResponse{
			QuestionID: response.QuestionID,
			Answers:    response.Answer,
		})
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The has_applied flag flips exactly once per user, which closes the race
	// of two concurrent submissions both passing the duplicate check above.
	if err := d.userRepo.SetApplied(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DuplicateApplication, "You already submitted an application")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark user as applied: %v", err)
		return nil, errorx.Unknown
	}

	application := &entity.Application{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		Responses:   responses,
		SubmittedAt: time.Now(),
		Status:      entity.Pending,
	}

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SubmitApplicationResponse{ID: application.ID}, nil
}

func (d *applicationDomain) GetMy(
	ctx context.Context, req *model.GetMyApplicationRequest,
) (*model.GetMyApplicationResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	application, err := d.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have no application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	questions, err := d.questionMap(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GetMyApplicationResponse{
		Application: model.ConvertApplication(application, "", questions),
	}, nil
}

func (d *applicationDomain) GetList(
	ctx context.Context, req *model.GetApplicationsRequest,
) (*model.GetApplicationsResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}
	req.Limit = mathutil.MinInt(req.Limit, apiCfg.MaxLimit)

	applications, err := d.applicationRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, application := range applications {
		userIDs = append(userIDs, application.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applicants: %v", err)
		return nil, errorx.Unknown
	}

	usernames := map[string]string{}
	for _, user := range users {
		usernames[user.ID] = user.Username
	}

	questions, err := d.questionMap(ctx)
	if err != nil {
		return nil, err
	}

	clientApplications := []model.Application{}
	for i := range applications {
		clientApplications = append(clientApplications, model.ConvertApplication(
			&applications[i], usernames[applications[i].UserID], questions))
	}

	return &model.GetApplicationsResponse{Applications: clientApplications}, nil
}

func (d *applicationDomain) Review(
	ctx context.Context, req *model.ReviewApplicationRequest,
) (*model.ReviewApplicationResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	status, err := enumApplicationAction(req.Action)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Action must be approved or rejected")
	}

	if _, err := d.applicationRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	reviewerID := xcontext.RequestUserID(ctx)
	if err := d.applicationRepo.UpdateReviewByID(ctx, req.ID, status, reviewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Application must be pending")
		}

		xcontext.Logger(ctx).Errorf("Cannot update application status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewApplicationResponse{}, nil
}

func enumApplicationAction(action string) (entity.ApplicationStatus, error) {
	status := entity.ApplicationStatus(action)
	if !slices.Contains([]entity.ApplicationStatus{entity.Approved, entity.Rejected}, status) {
		return "", errors.New("invalid action")
	}

	return status, nil
}

func (d *applicationDomain) questionMap(ctx context.Context) (map[string]entity.Question, error) {
	questions, err := d.questionRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get questions: %v", err)
		return nil, errorx.Unknown
	}

	result := map[string]entity.Question{}
	for _, question := range questions {
		result[question.ID] = question
	}

	return result, nil
}
