package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event kinds published after a successful write.
const (
	EventProjectCreated         = "project.created"
	EventProposalCreated        = "proposal.created"
	EventMessageCreated         = "message.created"
	EventMilestoneStatusChanged = "milestone.status_changed"
)

type Event struct {
	Kind       string         `json:"kind"`
	EntityID   uuid.UUID      `json:"entityId"`
	ProjectID  *uuid.UUID     `json:"projectId,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data,omitempty"`
}

// EventPublisher delivers domain events. Publishing failures are logged by the caller
// and never fail the write that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type noopPublisher struct{}

func NoopPublisher() EventPublisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// ErrInboxStale is returned by InboxCache.Set when the inbox was invalidated after
// the entries were computed.
var ErrInboxStale = errors.New("inbox changed while it was rebuilt")

// InboxCache stores each user's inbox entries under a generation counter.
// Invalidate bumps the generation; Set only stores entries computed at the current one.
type InboxCache interface {
	Version(ctx context.Context, userID uuid.UUID) (int64, error)
	Get(ctx context.Context, userID uuid.UUID) ([]InboxEntry, bool, error)
	Set(ctx context.Context, userID uuid.UUID, version int64, entries []InboxEntry) error
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
}

type noopInbox struct{}

func NoopInbox() InboxCache { return noopInbox{} }

func (noopInbox) Version(context.Context, uuid.UUID) (int64, error)          { return 0, nil }
func (noopInbox) Get(context.Context, uuid.UUID) ([]InboxEntry, bool, error) { return nil, false, nil }
func (noopInbox) Set(context.Context, uuid.UUID, int64, []InboxEntry) error  { return nil }
func (noopInbox) Invalidate(context.Context, ...uuid.UUID) error             { return nil }
