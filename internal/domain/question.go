package domain

import (
	"context"
	"errors"
	"time"

	"github.com/clanhub/backend/internal/common"
	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/enum"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/clanhub/backend/pkg/xredis"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	questionsCacheKey = "questions:active"
	questionsCacheTTL = 5 * time.Minute
)

type QuestionDomain interface {
	GetList(context.Context, *model.GetQuestionsRequest) (*model.GetQuestionsResponse, error)
	Create(context.Context, *model.CreateQuestionRequest) (*model.CreateQuestionResponse, error)
	Update(context.Context, *model.UpdateQuestionRequest) (*model.UpdateQuestionResponse, error)
	Delete(context.Context, *model.DeleteQuestionRequest) (*model.DeleteQuestionResponse, error)
	Reorder(context.Context, *model.ReorderQuestionsRequest) (*model.ReorderQuestionsResponse, error)
}

type questionDomain struct {
	questionRepo       repository.QuestionRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	redisClient        xredis.Client
}

// NewQuestionDomain wires an optional redis client for caching the question
// list, which every submission and every visit of the application form reads.
func NewQuestionDomain(
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *questionDomain {
	return &questionDomain{
		questionRepo:       questionRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		redisClient:        redisClient,
	}
}

func (d *questionDomain) GetList(
	ctx context.Context, req *model.GetQuestionsRequest,
) (*model.GetQuestionsResponse, error) {
	if d.redisClient != nil {
		var cached []model.Question
		if err := d.redisClient.GetObj(ctx, questionsCacheKey, &cached); err == nil {
			return &model.GetQuestionsResponse{Questions: cached}, nil
		}
	}

	questions, err := d.questionRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get questions: %v", err)
		return nil, errorx.Unknown
	}

	clientQuestions := []model.Question{}
	for i := range questions {
		clientQuestions = append(clientQuestions, model.ConvertQuestion(&questions[i]))
	}

	if d.redisClient != nil {
		err := d.redisClient.SetObj(ctx, questionsCacheKey, clientQuestions, questionsCacheTTL)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache questions: %v", err)
		}
	}

	return &model.GetQuestionsResponse{Questions: clientQuestions}, nil
}

func (d *questionDomain) Create(
	ctx context.Context, req *model.CreateQuestionRequest,
) (*model.CreateQuestionResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	questionType, options, contradictions, err := checkQuestionFields(
		req.Text, req.Type, req.Options, req.ContradictsWith)
	if err != nil {
		return nil, err
	}

	maxPosition, err := d.questionRepo.MaxPosition(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get max question position: %v", err)
		return nil, errorx.Unknown
	}

	question := &entity.Question{
		Base:            entity.Base{ID: uuid.NewString()},
		Text:            req.Text,
		Type:            questionType,
		Options:         options,
		Required:        req.Required,
		ContradictsWith: contradictions,
		Position:        maxPosition + 1,
	}

	if err := d.questionRepo.Create(ctx, question); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create question: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateCache(ctx)
	return &model.CreateQuestionResponse{ID: question.ID}, nil
}

func (d *questionDomain) Update(
	ctx context.Context, req *model.UpdateQuestionRequest,
) (*model.UpdateQuestionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	questionType, options, contradictions, err := checkQuestionFields(
		req.Text, req.Type, req.Options, req.ContradictsWith)
	if err != nil {
		return nil, err
	}

	err = d.questionRepo.UpdateByID(ctx, req.ID, &entity.Question{
		Text:            req.Text,
		Type:            questionType,
		Options:         options,
		Required:        req.Required,
		ContradictsWith: contradictions,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found question")
		}

		xcontext.Logger(ctx).Errorf("Cannot update question: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateCache(ctx)
	return &model.UpdateQuestionResponse{}, nil
}

func (d *questionDomain) Delete(
	ctx context.Context, req *model.DeleteQuestionRequest,
) (*model.DeleteQuestionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.questionRepo.DeleteByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found question")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete question: %v", err)
		return nil, errorx.Unknown
	}

	d.invalidateCache(ctx)
	return &model.DeleteQuestionResponse{}, nil
}

func (d *questionDomain) Reorder(
	ctx context.Context, req *model.ReorderQuestionsRequest,
) (*model.ReorderQuestionsResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	questions, err := d.questionRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get questions: %v", err)
		return nil, errorx.Unknown
	}

	if len(req.QuestionIDs) != len(questions) {
		return nil, errorx.New(errorx.BadRequest, "Must reorder all questions at once")
	}

	for _, question := range questions {
		if !slices.Contains(req.QuestionIDs, question.ID) {
			return nil, errorx.New(errorx.BadRequest, "Missing question %s", question.ID)
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	for i, id := range req.QuestionIDs {
		if err := d.questionRepo.UpdatePosition(ctx, id, i+1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update question position: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	d.invalidateCache(ctx)
	return &model.ReorderQuestionsResponse{}, nil
}

func checkQuestionFields(
	text, questionType string, options, contradictions []string,
) (entity.QuestionType, entity.Array[string], entity.Array[string], error) {
	if text == "" {
		return "", nil, nil, errorx.New(errorx.BadRequest, "Not allow empty text")
	}

	enumType, err := enum.ToEnum[entity.QuestionType](questionType)
	if err != nil {
		return "", nil, nil, errorx.New(errorx.BadRequest, "Invalid question type %s", questionType)
	}

	if len(options) < 2 {
		return "", nil, nil, errorx.New(errorx.BadRequest, "Question needs at least two options")
	}

	for _, contradiction := range contradictions {
		if !slices.Contains(options, contradiction) {
			return "", nil, nil, errorx.New(
				errorx.BadRequest, "Contradiction %s is not an option", contradiction)
		}
	}

	return enumType, entity.Array[string](options), entity.Array[string](contradictions), nil
}

func (d *questionDomain) invalidateCache(ctx context.Context) {
	if d.redisClient == nil {
		return
	}

	if err := d.redisClient.Del(ctx, questionsCacheKey); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate question cache: %v", err)
	}
}
