package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"learnpath-be/internal/constant"
	"learnpath-be/internal/dto"
	"learnpath-be/internal/entity"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/repository/specification"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/pkg/llm"

	"github.com/google/uuid"
)

type IStudyAidService interface {
	Flashcards(ctx context.Context, userId uuid.UUID, req *dto.FlashcardsRequest) (*dto.StudyAidResponse, error)
	MockInterview(ctx context.Context, userId uuid.UUID, req *dto.MockInterviewRequest) (*dto.StudyAidResponse, error)
	SkillGap(ctx context.Context, userId uuid.UUID, req *dto.SkillGapRequest) (*dto.StudyAidResponse, error)
	CodingExercise(ctx context.Context, req *dto.CodingExerciseRequest) (*dto.CodingExerciseResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, kind string) ([]*dto.GetAllStudyAidsResponse, error)
}

type studyAidService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.ContentProvider
	now        func() time.Time
}

func NewStudyAidService(uowFactory unitofwork.RepositoryFactory, provider llm.ContentProvider) IStudyAidService {
	return &studyAidService{
		uowFactory: uowFactory,
		provider:   provider,
		now:        time.Now,
	}
}

func (s *studyAidService) Flashcards(ctx context.Context, userId uuid.UUID, req *dto.FlashcardsRequest) (*dto.StudyAidResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	count := req.Count
	if count == 0 {
		count = constant.DefaultFlashcardCount
	}
	return s.generateAndStore(ctx, userId, entity.StudyAidFlashcards, topic,
		fmt.Sprintf("Flashcards: %s", topic), constant.FlashcardsPrompt(topic, count))
}

func (s *studyAidService) MockInterview(ctx context.Context, userId uuid.UUID, req *dto.MockInterviewRequest) (*dto.StudyAidResponse, error) {
	role := strings.TrimSpace(req.Role)
	rounds := req.Rounds
	if rounds == 0 {
		rounds = constant.DefaultInterviewRounds
	}
	return s.generateAndStore(ctx, userId, entity.StudyAidMockInterview, role,
		fmt.Sprintf("Mock interview: %s", role), constant.MockInterviewPrompt(role, rounds))
}

func (s *studyAidService) SkillGap(ctx context.Context, userId uuid.UUID, req *dto.SkillGapRequest) (*dto.StudyAidResponse, error) {
	role := strings.TrimSpace(req.TargetRole)
	return s.generateAndStore(ctx, userId, entity.StudyAidSkillGap, role,
		fmt.Sprintf("Skill gap: %s", role), constant.SkillGapPrompt(req.Resume, role))
}

func (s *studyAidService) CodingExercise(ctx context.Context, req *dto.CodingExerciseRequest) (*dto.CodingExerciseResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperror.Validation("topic must not be blank")
	}
	doc, err := s.provider.GenerateStructured(ctx, constant.CodingExercisePrompt(topic))
	if err != nil {
		return nil, apperror.Provider("failed to generate coding exercise", err)
	}
	return &dto.CodingExerciseResponse{Topic: topic, Result: doc}, nil
}

func (s *studyAidService) GetAll(ctx context.Context, userId uuid.UUID, kind string) ([]*dto.GetAllStudyAidsResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	switch kind {
	case "":
	case entity.StudyAidFlashcards, entity.StudyAidMockInterview, entity.StudyAidSkillGap:
		specs = append(specs, specification.ByKind{Kind: kind})
	default:
		return nil, apperror.Validation("unknown study aid kind")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	aids, err := uow.StudyAidRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllStudyAidsResponse, 0, len(aids))
	for _, aid := range aids {
		result = append(result, &dto.GetAllStudyAidsResponse{
			Id:        aid.Id,
			Kind:      aid.Kind,
			Subject:   aid.Subject,
			Title:     aid.Title,
			CreatedAt: aid.CreatedAt,
		})
	}
	return result, nil
}

func (s *studyAidService) generateAndStore(ctx context.Context, userId uuid.UUID, kind, subject, title, prompt string) (*dto.StudyAidResponse, error) {
	if subject == "" {
		return nil, apperror.Validation("subject must not be blank")
	}

	doc, err := s.provider.GenerateStructured(ctx, prompt)
	if err != nil {
		return nil, apperror.Provider(fmt.Sprintf("failed to generate %s", strings.ReplaceAll(kind, "_", " ")), err)
	}

	aid := &entity.StudyAid{
		Id:        uuid.New(),
		UserId:    userId,
		Kind:      kind,
		Subject:   subject,
		Title:     title,
		Content:   json.RawMessage(doc),
		CreatedAt: s.now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.StudyAidRepository().Create(ctx, aid); err != nil {
		return nil, err
	}

	return &dto.StudyAidResponse{Id: aid.Id, Kind: kind, Result: aid.Content}, nil
}
