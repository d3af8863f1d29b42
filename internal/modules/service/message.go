package service

import (
	"context"
	"errors"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/dappwork/marketplace/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgInvalidMessage = "Invalid message data"

type MessageService interface {
	Thread(ctx context.Context, senderID, receiverID uuid.UUID) ([]*model.Message, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error)
	Create(ctx context.Context, in CreateMessageInput) (*model.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type messageService struct {
	messages repo.MessageRepo
	users    repo.UserRepo
	projects repo.ProjectRepo
	inbox    InboxCache
	notify   notifier
	log      *zap.Logger
}

func NewMessageService(messages repo.MessageRepo, users repo.UserRepo, projects repo.ProjectRepo, inbox InboxCache, pub EventPublisher, log *zap.Logger) MessageService {
	if inbox == nil {
		inbox = NoopInbox()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &messageService{
		messages: messages,
		users:    users,
		projects: projects,
		inbox:    inbox,
		notify:   newNotifier(pub, log),
		log:      log,
	}
}

type CreateMessageInput struct {
	ProjectID      *uuid.UUID `json:"projectId" swaggertype:"string" format:"uuid"`
	SenderID       *uuid.UUID `json:"senderId" binding:"required" swaggertype:"string" format:"uuid"`
	ReceiverID     *uuid.UUID `json:"receiverId" binding:"required" swaggertype:"string" format:"uuid"`
	Content        string     `json:"content" binding:"required" example:"Hi, is the audit scope final?"`
	FileAttachment *string    `json:"fileAttachment"`
}

func (s *messageService) Thread(ctx context.Context, senderID, receiverID uuid.UUID) ([]*model.Message, error) {
	return s.messages.ListBetween(ctx, senderID, receiverID)
}

func (s *messageService) Conversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	entries, err := s.inboxEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListByIDs(ctx, counterparts(entries))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return ResolveInbox(entries, byID), nil
}

// inboxEntries serves the cached summary or rebuilds it from the store. The generation
// is read before listing so that a write landing mid-rebuild keeps the result out of the cache.
func (s *messageService) inboxEntries(ctx context.Context, userID uuid.UUID) ([]InboxEntry, error) {
	if cached, ok, err := s.inbox.Get(ctx, userID); err != nil {
		telemetry.RecordInboxLookup("error")
		s.log.Warn("inbox cache read", zap.String("user_id", userID.String()), zap.Error(err))
	} else if ok {
		telemetry.RecordInboxLookup("hit")
		return cached, nil
	} else {
		telemetry.RecordInboxLookup("miss")
	}

	version, verr := s.inbox.Version(ctx, userID)
	msgs, err := s.messages.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := SummarizeInbox(userID, msgs)

	if verr != nil {
		s.log.Warn("inbox cache version", zap.String("user_id", userID.String()), zap.Error(verr))
		return entries, nil
	}
	if err := s.inbox.Set(ctx, userID, version, entries); err != nil && !errors.Is(err, ErrInboxStale) {
		s.log.Warn("inbox cache write", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return entries, nil
}

func (s *messageService) Create(ctx context.Context, in CreateMessageInput) (*model.Message, error) {
	if err := checkInput(msgInvalidMessage, in); err != nil {
		return nil, err
	}
	var fe fieldErrors
	if *in.SenderID == *in.ReceiverID {
		fe.add("receiverId", "must differ from senderId")
	}
	if err := userExists(ctx, s.users, &fe, "senderId", in.SenderID); err != nil {
		return nil, err
	}
	if err := userExists(ctx, s.users, &fe, "receiverId", in.ReceiverID); err != nil {
		return nil, err
	}
	if in.ProjectID != nil {
		_, err := s.projects.GetByID(ctx, *in.ProjectID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fe.add("projectId", "does not reference an existing project")
		case err != nil:
			return nil, err
		}
	}
	if err := fe.err(msgInvalidMessage); err != nil {
		return nil, err
	}

	m := &model.Message{
		ProjectID:      in.ProjectID,
		SenderID:       *in.SenderID,
		ReceiverID:     *in.ReceiverID,
		Content:        in.Content,
		FileAttachment: in.FileAttachment,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	telemetry.RecordEntityCreated("message")
	s.invalidate(ctx, m)
	s.notify.emit(ctx, Event{
		Kind:      EventMessageCreated,
		EntityID:  m.ID,
		ProjectID: m.ProjectID,
		Data:      map[string]any{"senderId": m.SenderID, "receiverId": m.ReceiverID},
	})
	return m, nil
}

// MarkRead sets isRead on the message. Repeating it is a no-op success.
func (s *messageService) MarkRead(ctx context.Context, id uuid.UUID) error {
	m, err := s.messages.MarkRead(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrMessageNotFound)
	}
	s.invalidate(ctx, m)
	return nil
}

func (s *messageService) invalidate(ctx context.Context, m *model.Message) {
	if err := s.inbox.Invalidate(ctx, m.SenderID, m.ReceiverID); err != nil {
		s.log.Warn("inbox cache invalidate", zap.String("message_id", m.ID.String()), zap.Error(err))
	}
}
