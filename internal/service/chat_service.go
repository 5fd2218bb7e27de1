package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"learnpath-be/internal/constant"
	"learnpath-be/internal/dto"
	"learnpath-be/internal/entity"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/repository/specification"
	"learnpath-be/internal/repository/unitofwork"
	"learnpath-be/pkg/conversation"
	"learnpath-be/pkg/events"
	"learnpath-be/pkg/llm"
	"learnpath-be/pkg/metrics"

	"github.com/google/uuid"
)

type IChatService interface {
	Send(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.RenameSessionRequest) (*dto.GetAllSessionsResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.ContentProvider
	publisher  EventPublisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.ContentProvider,
	publisher EventPublisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

// Send appends the new incoming messages, asks the tutor for a reply with the
// full stored history and appends the reply. The provider call sits between
// two short transactions.
func (s *chatService) Send(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	incoming, err := toConversationMessages(req.All())
	if err != nil {
		return nil, err
	}

	session, appended, err := s.appendIncoming(ctx, userId, req.SessionId, incoming)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.Chronological{},
	)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, apperror.Validation("at least one non-blank message is required")
	}

	history := make([]llm.Message, 0, len(stored)+1)
	history = append(history, llm.Message{Role: conversation.RoleSystem, Content: constant.TutorSystemPrompt})
	for _, m := range stored {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := s.provider.Chat(ctx, history)
	if err != nil {
		return nil, apperror.Provider("failed to get a tutor reply", err)
	}

	if err := s.appendReply(ctx, userId, session.Id, reply); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		SessionId: session.Id,
		Title:     session.Title,
		Reply:     reply,
		Appended:  appended,
	}, nil
}

func (s *chatService) appendIncoming(ctx context.Context, userId uuid.UUID, sessionRef *uuid.UUID, incoming []conversation.Message) (*entity.ChatSession, int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, err
	}
	defer uow.Rollback()

	var session *entity.ChatSession
	if sessionRef != nil {
		found, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: *sessionRef},
			specification.ForUpdate{},
		)
		if err != nil {
			return nil, 0, err
		}
		if found != nil && !found.OwnedBy(userId) {
			return nil, 0, apperror.Forbidden()
		}
		session = found
	}

	if session == nil {
		if !conversation.HasContent(incoming) {
			return nil, 0, apperror.Validation("at least one non-blank message is required")
		}
		session = &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     conversation.Title(incoming, s.now()),
			CreatedAt: s.now(),
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, 0, err
		}
	}

	ledger, err := s.buildLedger(ctx, uow, session.Id, incoming)
	if err != nil {
		return nil, 0, err
	}
	accepted := ledger.Reconcile(incoming)

	seq, err := uow.ChatMessageRepository().MaxSeq(ctx, session.Id)
	if err != nil {
		return nil, 0, err
	}
	for _, m := range accepted {
		seq++
		msg := &entity.ChatMessage{
			Id:             uuid.New(),
			ChatSessionId:  session.Id,
			Seq:            seq,
			Role:           m.Role,
			Content:        m.Content,
			IdempotencyKey: m.IdempotencyKey,
			CreatedAt:      s.now(),
		}
		if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
			return nil, 0, err
		}
	}

	if len(accepted) > 0 {
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return nil, 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, 0, err
	}

	skipped := 0
	for _, m := range incoming {
		if !conversation.IsBlank(m.Content) {
			skipped++
		}
	}
	skipped -= len(accepted)
	metrics.ChatMessages.WithLabelValues("appended").Add(float64(len(accepted)))
	metrics.ChatMessages.WithLabelValues("deduplicated").Add(float64(skipped))

	return session, len(accepted), nil
}

// buildLedger loads only what dedup needs: the latest message of each role
// and any stored message carrying one of the incoming idempotency keys.
func (s *chatService) buildLedger(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, incoming []conversation.Message) (*conversation.Ledger, error) {
	ledger := conversation.NewLedger()
	repo := uow.ChatMessageRepository()

	for _, role := range []string{conversation.RoleUser, conversation.RoleAssistant, conversation.RoleSystem} {
		last, err := repo.FindOne(ctx,
			specification.ByChatSessionID{ChatSessionID: sessionId},
			specification.ByRole{Role: role},
			specification.LatestFirst{},
		)
		if err != nil {
			return nil, err
		}
		if last != nil {
			ledger.Observe(last.Role, last.Content, last.IdempotencyKey)
		}
	}

	for _, m := range incoming {
		if m.IdempotencyKey == "" {
			continue
		}
		count, err := repo.Count(ctx,
			specification.ByChatSessionID{ChatSessionID: sessionId},
			specification.ByIdempotencyKey{Key: m.IdempotencyKey},
		)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			ledger.ObserveKey(m.IdempotencyKey)
		}
	}
	return ledger, nil
}

func (s *chatService) appendReply(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, reply string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	session, err := findOwnedSession(ctx, uow, userId, sessionId, specification.ForUpdate{})
	if err != nil {
		return err
	}

	seq, err := uow.ChatMessageRepository().MaxSeq(ctx, sessionId)
	if err != nil {
		return err
	}
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Seq:           seq + 1,
		Role:          conversation.RoleAssistant,
		Content:       reply,
		CreatedAt:     s.now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, session := range sessions {
		last, err := uow.ChatMessageRepository().FindOne(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
			specification.LatestFirst{},
		)
		if err != nil {
			return nil, err
		}
		preview := ""
		if last != nil {
			preview = conversation.Preview(last.Content)
		}
		result = append(result, toSessionSummary(session, preview))
	}
	return result, nil
}

func (s *chatService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: id},
		specification.Chronological{},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowSessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
		Messages:  make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

func (s *chatService) Rename(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.RenameSessionRequest) (*dto.GetAllSessionsResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := findOwnedSession(ctx, uow, userId, id, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toSessionSummary(session, ""), nil
}

// DeleteSession soft-deletes the session and its messages in one transaction.
func (s *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if _, err := findOwnedSession(ctx, uow, userId, id, specification.ForUpdate{}); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewChatSessionDeleted(userId, id))
	return nil
}

func findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID, extra ...specification.Specification) (*entity.ChatSession, error) {
	specs := append([]specification.Specification{specification.ByID{ID: id}}, extra...)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("chat session not found")
	}
	if !session.OwnedBy(userId) {
		return nil, apperror.Forbidden()
	}
	return session, nil
}

func toConversationMessages(in []dto.IncomingChatMessage) ([]conversation.Message, error) {
	out := make([]conversation.Message, 0, len(in))
	for _, m := range in {
		role, err := conversation.NormalizeRole(m.Role)
		if err != nil {
			if errors.Is(err, conversation.ErrInvalidRole) {
				return nil, apperror.Validation(err.Error())
			}
			return nil, err
		}
		out = append(out, conversation.Message{
			Role:           role,
			Content:        m.Content,
			IdempotencyKey: strings.TrimSpace(m.IdempotencyKey),
		})
	}
	return out, nil
}

func toSessionSummary(session *entity.ChatSession, preview string) *dto.GetAllSessionsResponse {
	return &dto.GetAllSessionsResponse{
		Id:        session.Id,
		Title:     session.Title,
		Preview:   preview,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
