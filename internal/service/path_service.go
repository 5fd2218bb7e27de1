package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"learnpath-be/internal/constant"
	"learnpath-be/internal/dto"
	"learnpath-be/internal/entity"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/repository/specification"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/pkg/cache"
	"learnpath-be/pkg/events"
	"learnpath-be/pkg/llm"
	"learnpath-be/pkg/progression"

	"github.com/google/uuid"
)

type IPathService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllPathResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PathResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePathRequest) (*dto.PathResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Suggest(ctx context.Context, req *dto.SuggestPathRequest) (*dto.SuggestPathResponse, error)
	Regenerate(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.RegeneratePathRequest) (*dto.PathResponse, error)
	UpdateItemNotes(ctx context.Context, userId uuid.UUID, id uuid.UUID, index int, req *dto.UpdateItemNotesRequest) (*dto.PathResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.PathStatsResponse, error)
	Explain(ctx context.Context, userId uuid.UUID, id uuid.UUID, topicIndex int) (*dto.ExplainTopicResponse, error)
	Resources(ctx context.Context, userId uuid.UUID, id uuid.UUID, topicIndex int) (*dto.TopicResourcesResponse, error)
}

type pathService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.ContentProvider
	cache      cache.Store
	cacheTTL   time.Duration
	publisher  EventPublisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewPathService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.ContentProvider,
	store cache.Store,
	cacheTTL time.Duration,
	publisher EventPublisher,
	log logger.ILogger,
) IPathService {
	return &pathService{
		uowFactory: uowFactory,
		provider:   provider,
		cache:      store,
		cacheTTL:   cacheTTL,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

func (s *pathService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllPathResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	paths, err := uow.LearningPathRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllPathResponse, 0, len(paths))
	for _, path := range paths {
		stats := progression.ComputeStats(path.Items, s.now())
		res := &dto.GetAllPathResponse{
			Id:          path.Id,
			Domain:      path.Domain,
			TotalTopics: len(path.Items),
			Completed:   stats.Completed,
			CreatedAt:   path.CreatedAt,
		}
		if idx := progression.ActiveIndex(path.Items); idx >= 0 {
			res.ActiveTopic = path.Items[idx].Topic
		}
		result = append(result, res)
	}
	return result, nil
}

func (s *pathService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PathResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	path, err := findOwnedPath(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toPathResponse(path), nil
}

func (s *pathService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePathRequest) (*dto.PathResponse, error) {
	domain := strings.TrimSpace(req.Domain)
	if domain == "" {
		return nil, apperror.Validation("domain must not be blank")
	}

	var (
		specs []progression.TopicSpec
		err   error
	)
	if len(req.Items) > 0 {
		specs = make([]progression.TopicSpec, len(req.Items))
		for i, item := range req.Items {
			specs[i] = progression.TopicSpec{Topic: item.Topic, DurationDays: item.Duration}
		}
		if _, err := progression.BuildSchedule(specs, s.now()); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	} else {
		specs, err = s.suggestSchedule(ctx, domain)
		if err != nil {
			return nil, err
		}
	}

	items, err := progression.BuildSchedule(specs, s.now())
	if err != nil {
		return nil, apperror.Provider("content provider returned an unusable schedule", err)
	}

	path := &entity.LearningPath{
		Id:        uuid.New(),
		UserId:    userId,
		Domain:    domain,
		Items:     items,
		CreatedAt: s.now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LearningPathRepository().Create(ctx, path); err != nil {
		return nil, err
	}

	s.logger.Info("PATH", "learning path created", map[string]interface{}{
		"path_id": path.Id.String(),
		"user_id": userId.String(),
		"topics":  len(items),
	})
	publishEvent(ctx, s.publisher, s.logger, events.NewPathCreated(userId, path.Id, domain, len(items)))

	return toPathResponse(path), nil
}

func (s *pathService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwnedPath(ctx, uow, userId, id); err != nil {
		return err
	}
	return uow.LearningPathRepository().Delete(ctx, id)
}

func (s *pathService) Suggest(ctx context.Context, req *dto.SuggestPathRequest) (*dto.SuggestPathResponse, error) {
	domain := strings.TrimSpace(req.Domain)
	if domain == "" {
		return nil, apperror.Validation("domain must not be blank")
	}

	specs, err := s.suggestSchedule(ctx, domain)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PathItemRequest, len(specs))
	for i, spec := range specs {
		items[i] = dto.PathItemRequest{Topic: spec.Topic, Duration: spec.DurationDays}
	}
	return &dto.SuggestPathResponse{Domain: domain, Items: items}, nil
}

// Regenerate reschedules the topics from FromIndex onward. The provider is
// asked before the row is locked; inside the transaction the remaining topics
// must still be the ones that were sent.
func (s *pathService) Regenerate(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.RegeneratePathRequest) (*dto.PathResponse, error) {
	if req.FromIndex == nil {
		return nil, apperror.Validation("from_index is required")
	}
	fromIndex := *req.FromIndex

	uow := s.uowFactory.NewUnitOfWork(ctx)
	path, err := findOwnedPath(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	_, topics, err := progression.SplitForRegeneration(path.Items, fromIndex)
	if err != nil {
		return nil, apperror.Validation("from_index is out of range")
	}

	var specs []progression.TopicSpec
	if len(topics) > 0 {
		doc, err := s.provider.GenerateStructured(ctx, constant.RegenerateSchedulePrompt(topics))
		if err != nil {
			return nil, apperror.Provider("failed to regenerate schedule", err)
		}
		specs, err = decodeSchedule(doc)
		if err != nil {
			return nil, apperror.Provider("content provider returned an unusable schedule", err)
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	locked, err := findOwnedPath(ctx, uow, userId, id, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	prefix, current, err := progression.SplitForRegeneration(locked.Items, fromIndex)
	if err != nil || !sameTopics(current, topics) {
		return nil, apperror.Validation("learning path changed during regeneration, retry")
	}

	items, err := progression.Rebuild(prefix, specs, s.now())
	if err != nil {
		return nil, apperror.Provider("content provider returned an unusable schedule", err)
	}
	locked.Items = items

	if err := uow.LearningPathRepository().Update(ctx, locked); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PATH", "learning path regenerated", map[string]interface{}{
		"path_id":    id.String(),
		"from_index": fromIndex,
		"reason":     req.Reason,
		"topics":     len(specs),
	})
	publishEvent(ctx, s.publisher, s.logger, events.NewPathRegenerated(userId, id, fromIndex, req.Reason))

	return toPathResponse(locked), nil
}

func (s *pathService) UpdateItemNotes(ctx context.Context, userId uuid.UUID, id uuid.UUID, index int, req *dto.UpdateItemNotesRequest) (*dto.PathResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	path, err := findOwnedPath(ctx, uow, userId, id, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}

	items, err := progression.SetNotes(path.Items, index, req.Notes)
	if err != nil {
		return nil, apperror.NotFound("topic not found")
	}
	path.Items = items

	if err := uow.LearningPathRepository().Update(ctx, path); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toPathResponse(path), nil
}

// Stats aggregates every plan the user owns.
func (s *pathService) Stats(ctx context.Context, userId uuid.UUID) (*dto.PathStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	paths, err := uow.LearningPathRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	items := make([]progression.Item, 0)
	for _, path := range paths {
		items = append(items, path.Items...)
	}
	stats := progression.ComputeStats(items, s.now())

	return &dto.PathStatsResponse{
		Total:       stats.Total,
		Completed:   stats.Completed,
		Pending:     stats.Pending,
		Overdue:     stats.Overdue,
		ProgressPct: stats.ProgressPct,
		Streak:      stats.Streak,
	}, nil
}

func (s *pathService) Explain(ctx context.Context, userId uuid.UUID, id uuid.UUID, topicIndex int) (*dto.ExplainTopicResponse, error) {
	path, item, err := s.findTopic(ctx, userId, id, topicIndex)
	if err != nil {
		return nil, err
	}

	key := cache.Key("explain", path.Domain, item.Topic)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return &dto.ExplainTopicResponse{Topic: item.Topic, Explanation: cached}, nil
	}

	text, err := s.provider.GenerateText(ctx, constant.ExplainTopicPrompt(path.Domain, item.Topic))
	if err != nil {
		return nil, apperror.Provider("failed to explain topic", err)
	}
	s.cacheSet(ctx, key, text)

	return &dto.ExplainTopicResponse{Topic: item.Topic, Explanation: text}, nil
}

func (s *pathService) Resources(ctx context.Context, userId uuid.UUID, id uuid.UUID, topicIndex int) (*dto.TopicResourcesResponse, error) {
	_, item, err := s.findTopic(ctx, userId, id, topicIndex)
	if err != nil {
		return nil, err
	}

	key := cache.Key("resources", item.Topic)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var resources []dto.TopicResource
		if err := json.Unmarshal([]byte(cached), &resources); err == nil {
			return &dto.TopicResourcesResponse{Topic: item.Topic, Resources: resources}, nil
		}
	}

	doc, err := s.provider.GenerateStructured(ctx, constant.ResourcesPrompt(item.Topic))
	if err != nil {
		return nil, apperror.Provider("failed to suggest resources", err)
	}
	var resources []dto.TopicResource
	if err := json.Unmarshal(doc, &resources); err != nil {
		return nil, apperror.Provider("content provider returned malformed resources", err)
	}
	if raw, err := json.Marshal(resources); err == nil {
		s.cacheSet(ctx, key, string(raw))
	}

	return &dto.TopicResourcesResponse{Topic: item.Topic, Resources: resources}, nil
}

func (s *pathService) findTopic(ctx context.Context, userId, id uuid.UUID, topicIndex int) (*entity.LearningPath, progression.Item, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	path, err := findOwnedPath(ctx, uow, userId, id)
	if err != nil {
		return nil, progression.Item{}, err
	}
	if topicIndex < 0 || topicIndex >= len(path.Items) {
		return nil, progression.Item{}, apperror.NotFound("topic not found")
	}
	return path, path.Items[topicIndex], nil
}

func (s *pathService) suggestSchedule(ctx context.Context, domain string) ([]progression.TopicSpec, error) {
	doc, err := s.provider.GenerateStructured(ctx, constant.LearningPathPrompt(domain))
	if err != nil {
		return nil, apperror.Provider("failed to generate learning path", err)
	}
	specs, err := decodeSchedule(doc)
	if err != nil {
		return nil, apperror.Provider("content provider returned an unusable schedule", err)
	}
	return specs, nil
}

func (s *pathService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("CACHE", "cache read failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return value, ok
}

func (s *pathService) cacheSet(ctx context.Context, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("CACHE", "cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// findOwnedPath checks existence before ownership.
func findOwnedPath(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID, extra ...specification.Specification) (*entity.LearningPath, error) {
	specs := append([]specification.Specification{specification.ByID{ID: id}}, extra...)
	path, err := uow.LearningPathRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, apperror.NotFound("learning path not found")
	}
	if !path.OwnedBy(userId) {
		return nil, apperror.Forbidden()
	}
	return path, nil
}

type scheduleEntry struct {
	Topic        string   `json:"topic"`
	Duration     *float64 `json:"duration"`
	DurationDays *float64 `json:"durationDays"`
}

var errEmptyScheduleDoc = errors.New("schedule document contains no topics")

// decodeSchedule reads a provider schedule: a JSON array of {topic, duration},
// or an object wrapping that array.
func decodeSchedule(doc json.RawMessage) ([]progression.TopicSpec, error) {
	var entries []scheduleEntry
	if err := json.Unmarshal(doc, &entries); err != nil {
		var wrapped map[string]json.RawMessage
		if err2 := json.Unmarshal(doc, &wrapped); err2 != nil {
			return nil, err
		}
		found := false
		for _, key := range []string{"path", "items", "schedule", "topics"} {
			if raw, ok := wrapped[key]; ok {
				if err := json.Unmarshal(raw, &entries); err != nil {
					return nil, err
				}
				found = true
				break
			}
		}
		if !found {
			return nil, errEmptyScheduleDoc
		}
	}
	if len(entries) == 0 {
		return nil, errEmptyScheduleDoc
	}

	specs := make([]progression.TopicSpec, len(entries))
	for i, e := range entries {
		days := 0.0
		switch {
		case e.Duration != nil:
			days = *e.Duration
		case e.DurationDays != nil:
			days = *e.DurationDays
		}
		specs[i] = progression.TopicSpec{Topic: strings.TrimSpace(e.Topic), DurationDays: int(math.Round(days))}
	}

	if _, err := progression.BuildSchedule(specs, time.Now()); err != nil {
		return nil, err
	}
	return specs, nil
}

func sameTopics(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func toPathResponse(path *entity.LearningPath) *dto.PathResponse {
	items := make([]dto.PathItemResponse, len(path.Items))
	for i, item := range path.Items {
		status := item.Status
		if status == "" {
			status = progression.StatusPending
		}
		items[i] = dto.PathItemResponse{
			Topic:            item.Topic,
			DurationDays:     item.DurationDays,
			StartDate:        item.StartDate,
			EndDate:          item.EndDate,
			Status:           string(status),
			AssessmentResult: item.AssessmentResult,
			Notes:            item.Notes,
		}
	}
	return &dto.PathResponse{
		Id:          path.Id,
		Domain:      path.Domain,
		Items:       items,
		ActiveIndex: progression.ActiveIndex(path.Items),
		CreatedAt:   path.CreatedAt,
		UpdatedAt:   path.UpdatedAt,
	}
}
