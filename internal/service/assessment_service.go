package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"learnpath-be/internal/constant"
	"learnpath-be/internal/dto"
	"learnpath-be/internal/entity"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/repository/specification"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/pkg/assessment"
	"learnpath-be/pkg/events"
	"learnpath-be/pkg/llm"
	"learnpath-be/pkg/metrics"
	"learnpath-be/pkg/progression"

	"github.com/google/uuid"
)

type IAssessmentService interface {
	GenerateForPath(ctx context.Context, userId uuid.UUID, pathId uuid.UUID, topicIndex int) (*dto.GenerateAssessmentResponse, error)
	EvaluateForPath(ctx context.Context, userId uuid.UUID, pathId uuid.UUID, topicIndex int, req *dto.EvaluateAssessmentRequest) (*dto.EvaluateAssessmentResponse, error)
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateAssessmentRequest) (*dto.GenerateAssessmentResponse, error)
	Evaluate(ctx context.Context, userId uuid.UUID, req *dto.EvaluateAssessmentRequest) (*dto.EvaluateAssessmentResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, pathId *uuid.UUID) ([]*dto.AssessmentAttemptResponse, error)
}

type assessmentService struct {
	uowFactory    unitofwork.RepositoryFactory
	provider      llm.ContentProvider
	evaluator     assessment.Evaluator
	evaluatorKind string
	publisher     EventPublisher
	logger        logger.ILogger
	now           func() time.Time
}

func NewAssessmentService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.ContentProvider,
	evaluator assessment.Evaluator,
	evaluatorKind string,
	publisher EventPublisher,
	log logger.ILogger,
) IAssessmentService {
	return &assessmentService{
		uowFactory:    uowFactory,
		provider:      provider,
		evaluator:     evaluator,
		evaluatorKind: evaluatorKind,
		publisher:     publisher,
		logger:        log,
		now:           time.Now,
	}
}

func (s *assessmentService) GenerateForPath(ctx context.Context, userId uuid.UUID, pathId uuid.UUID, topicIndex int) (*dto.GenerateAssessmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	path, err := findOwnedPath(ctx, uow, userId, pathId)
	if err != nil {
		return nil, err
	}
	if topicIndex < 0 || topicIndex >= len(path.Items) {
		return nil, apperror.NotFound("topic not found")
	}

	idx := topicIndex
	return s.generate(ctx, userId, path.Items[topicIndex].Topic, &path.Id, &idx)
}

func (s *assessmentService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateAssessmentRequest) (*dto.GenerateAssessmentResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperror.Validation("topic must not be blank")
	}
	return s.generate(ctx, userId, topic, nil, nil)
}

func (s *assessmentService) generate(ctx context.Context, userId uuid.UUID, topic string, pathId *uuid.UUID, topicIndex *int) (*dto.GenerateAssessmentResponse, error) {
	doc, err := s.provider.GenerateStructured(ctx, constant.AssessmentPrompt(topic))
	if err != nil {
		return nil, apperror.Provider("failed to generate assessment", err)
	}
	count, err := assessment.CountQuestions(doc)
	if err != nil || count == 0 {
		return nil, apperror.Provider("content provider returned a malformed assessment", err)
	}

	attempt := &entity.AssessmentAttempt{
		Id:                 uuid.New(),
		UserId:             userId,
		Topic:              topic,
		LearningPathId:     pathId,
		TopicIndex:         topicIndex,
		QuestionCount:      count,
		AssessmentDocument: doc,
		CreatedAt:          s.now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AssessmentAttemptRepository().Create(ctx, attempt); err != nil {
		return nil, err
	}

	return &dto.GenerateAssessmentResponse{
		AttemptId:  attempt.Id,
		Topic:      topic,
		TopicIndex: topicIndex,
		Questions:  doc,
	}, nil
}

// EvaluateForPath scores the submission outside any transaction, then locks
// the plan and applies the outcome if the topic at topicIndex is unchanged.
func (s *assessmentService) EvaluateForPath(ctx context.Context, userId uuid.UUID, pathId uuid.UUID, topicIndex int, req *dto.EvaluateAssessmentRequest) (*dto.EvaluateAssessmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	path, err := findOwnedPath(ctx, uow, userId, pathId)
	if err != nil {
		return nil, err
	}
	if topicIndex < 0 || topicIndex >= len(path.Items) {
		return nil, apperror.NotFound("topic not found")
	}
	topic := path.Items[topicIndex].Topic

	result, err := s.score(ctx, topic, req.Answers)
	if err != nil {
		return nil, err
	}
	passed := result.Passed()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	locked, err := findOwnedPath(ctx, uow, userId, pathId, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if topicIndex >= len(locked.Items) {
		return nil, apperror.NotFound("topic not found")
	}
	if locked.Items[topicIndex].Topic != topic {
		return nil, apperror.Validation("learning path changed during evaluation, retry")
	}

	items, err := progression.ApplyEvaluation(locked.Items, topicIndex, passed, result.Document)
	if err != nil {
		return nil, apperror.NotFound("topic not found")
	}
	locked.Items = items
	if err := uow.LearningPathRepository().Update(ctx, locked); err != nil {
		return nil, err
	}

	idx := topicIndex
	attempt, err := s.recordAttempt(ctx, uow, userId, req.AttemptId, &entity.AssessmentAttempt{
		Topic:              topic,
		LearningPathId:     &locked.Id,
		TopicIndex:         &idx,
		QuestionCount:      len(req.Answers),
		Score:              result.Score,
		OutOf:              result.OutOf,
		Passed:             passed,
		EvaluationDocument: result.Document,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.countOutcome(passed)
	s.logger.Info("ASSESSMENT", "topic evaluated", map[string]interface{}{
		"path_id":     pathId.String(),
		"topic_index": topicIndex,
		"score":       result.Score,
		"out_of":      result.OutOf,
		"passed":      passed,
	})
	publishEvent(ctx, s.publisher, s.logger,
		events.NewTopicEvaluated(userId, pathId, topicIndex, topic, passed, result.Score, result.OutOf))

	res := toEvaluateResponse(attempt, result)
	res.Path = toPathResponse(locked)
	return res, nil
}

func (s *assessmentService) Evaluate(ctx context.Context, userId uuid.UUID, req *dto.EvaluateAssessmentRequest) (*dto.EvaluateAssessmentResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperror.Validation("topic must not be blank")
	}

	result, err := s.score(ctx, topic, req.Answers)
	if err != nil {
		return nil, err
	}
	passed := result.Passed()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	attempt, err := s.recordAttempt(ctx, uow, userId, req.AttemptId, &entity.AssessmentAttempt{
		Topic:              topic,
		QuestionCount:      len(req.Answers),
		Score:              result.Score,
		OutOf:              result.OutOf,
		Passed:             passed,
		EvaluationDocument: result.Document,
	})
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.countOutcome(passed)
	return toEvaluateResponse(attempt, result), nil
}

func (s *assessmentService) GetAll(ctx context.Context, userId uuid.UUID, pathId *uuid.UUID) ([]*dto.AssessmentAttemptResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if pathId != nil {
		specs = append(specs, specification.ByLearningPathID{LearningPathID: *pathId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempts, err := uow.AssessmentAttemptRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AssessmentAttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		result = append(result, &dto.AssessmentAttemptResponse{
			Id:             a.Id,
			Topic:          a.Topic,
			LearningPathId: a.LearningPathId,
			TopicIndex:     a.TopicIndex,
			QuestionCount:  a.QuestionCount,
			Score:          a.Score,
			OutOf:          a.OutOf,
			Passed:         a.Passed,
			CreatedAt:      a.CreatedAt,
		})
	}
	return result, nil
}

func (s *assessmentService) score(ctx context.Context, topic string, answers []dto.AnswerRequest) (*assessment.Result, error) {
	submission := make([]assessment.Answer, len(answers))
	for i, a := range answers {
		submission[i] = assessment.Answer{
			Question:      a.Question,
			CorrectAnswer: a.CorrectAnswer,
			UserAnswer:    a.UserAnswer,
		}
	}

	result, err := s.evaluator.Evaluate(ctx, topic, submission)
	if err != nil {
		return nil, apperror.Provider("failed to evaluate assessment", err)
	}

	if result.ContractViolation() {
		metrics.ProviderContractViolations.WithLabelValues("evaluation_length").Inc()
		s.logger.Warn("ASSESSMENT", "evaluation length disagrees with outOf", map[string]interface{}{
			"topic":       topic,
			"out_of":      result.OutOf,
			"evaluations": len(result.Evaluation),
		})
	}
	if result.ScoreAboveOutOf() {
		metrics.ProviderContractViolations.WithLabelValues("score_above_out_of").Inc()
		s.logger.Warn("ASSESSMENT", "evaluation score exceeds outOf", map[string]interface{}{
			"topic":  topic,
			"score":  result.Score,
			"out_of": result.OutOf,
		})
	}
	return result, nil
}

// recordAttempt updates the caller's attempt named by attemptId, or creates a
// fresh one when no id is given or the id is unknown.
func (s *assessmentService) recordAttempt(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, attemptId *uuid.UUID, values *entity.AssessmentAttempt) (*entity.AssessmentAttempt, error) {
	repo := uow.AssessmentAttemptRepository()
	values.Evaluator = s.evaluatorKind

	if attemptId != nil {
		existing, err := repo.FindOne(ctx, specification.ByID{ID: *attemptId})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.UserId != userId {
				return nil, apperror.Forbidden()
			}
			existing.Topic = values.Topic
			if values.LearningPathId != nil {
				existing.LearningPathId = values.LearningPathId
				existing.TopicIndex = values.TopicIndex
			}
			if existing.QuestionCount == 0 {
				existing.QuestionCount = values.QuestionCount
			}
			existing.Score = values.Score
			existing.OutOf = values.OutOf
			existing.Passed = values.Passed
			existing.Evaluator = values.Evaluator
			existing.EvaluationDocument = values.EvaluationDocument
			if err := repo.Update(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	values.Id = uuid.New()
	values.UserId = userId
	values.CreatedAt = s.now()
	if err := repo.Create(ctx, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *assessmentService) countOutcome(passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	metrics.AssessmentOutcomes.WithLabelValues(s.evaluatorKind, outcome).Inc()
}

func toEvaluateResponse(attempt *entity.AssessmentAttempt, result *assessment.Result) *dto.EvaluateAssessmentResponse {
	evaluation := result.Document
	if len(evaluation) == 0 {
		evaluation = json.RawMessage("null")
	}
	return &dto.EvaluateAssessmentResponse{
		AttemptId:  attempt.Id,
		Topic:      attempt.Topic,
		Score:      result.Score,
		OutOf:      result.OutOf,
		Passed:     attempt.Passed,
		Evaluation: evaluation,
	}
}
