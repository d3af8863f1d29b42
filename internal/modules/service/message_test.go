package service

import (
	"context"
	"sync"
	"testing"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/dappwork/marketplace/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func send(t *testing.T, ts *testServices, from, to uuid.UUID, content string) uuid.UUID {
	t.Helper()
	m, err := ts.messages.Create(context.Background(), CreateMessageInput{SenderID: &from, ReceiverID: &to, Content: content})
	require.NoError(t, err)
	return m.ID
}

func TestMessageService_ConversationShowsLatestMessage(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	b := ts.user(t, "bob", true)

	send(t, ts, b.ID, a.ID, "hi")
	send(t, ts, a.ID, b.ID, "hello")

	convs, err := ts.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, b.ID, convs[0].User.ID)
	assert.Equal(t, "hello", convs[0].LastMessage.Content)
	assert.Equal(t, 1, convs[0].UnreadCount)

	thread, err := ts.messages.Thread(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi", thread[0].Content)
	assert.Equal(t, "hello", thread[1].Content)
}

func TestMessageService_MarkRead(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	b := ts.user(t, "bob", true)
	id := send(t, ts, b.ID, a.ID, "ping")

	require.NoError(t, ts.messages.MarkRead(ctx, id))
	require.NoError(t, ts.messages.MarkRead(ctx, id))

	convs, err := ts.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, 0, convs[0].UnreadCount)
	assert.True(t, convs[0].LastMessage.IsRead)

	assert.ErrorIs(t, ts.messages.MarkRead(ctx, uuid.New()), ErrMessageNotFound)
}

func TestMessageService_CreateErrors(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	ghost := uuid.New()
	missingProject := uuid.New()
	b := ts.user(t, "bob", true)

	tests := []struct {
		name      string
		in        CreateMessageInput
		wantField string
	}{
		{"empty content", CreateMessageInput{SenderID: &a.ID, ReceiverID: &b.ID}, "content"},
		{"missing receiver", CreateMessageInput{SenderID: &a.ID, Content: "x"}, "receiverId"},
		{"self message", CreateMessageInput{SenderID: &a.ID, ReceiverID: &a.ID, Content: "x"}, "receiverId"},
		{"unknown sender", CreateMessageInput{SenderID: &ghost, ReceiverID: &b.ID, Content: "x"}, "senderId"},
		{"unknown project", CreateMessageInput{ProjectID: &missingProject, SenderID: &a.ID, ReceiverID: &b.ID, Content: "x"}, "projectId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.messages.Create(ctx, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, fieldNames(verr), tt.wantField)
		})
	}
	assert.Empty(t, ts.pub.kinds())
}

func TestMessageService_InboxCache(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	b := ts.user(t, "bob", true)
	send(t, ts, b.ID, a.ID, "first")

	_, err := ts.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)
	_, cached, _ := ts.inbox.Get(ctx, a.ID)
	require.True(t, cached)

	id := send(t, ts, b.ID, a.ID, "second")
	_, cached, _ = ts.inbox.Get(ctx, a.ID)
	assert.False(t, cached)

	convs, err := ts.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", convs[0].LastMessage.Content)
	assert.Equal(t, 2, convs[0].UnreadCount)

	require.NoError(t, ts.messages.MarkRead(ctx, id))
	_, cached, _ = ts.inbox.Get(ctx, a.ID)
	assert.False(t, cached)
	assert.Contains(t, ts.inbox.invalidated, b.ID)
}

// interleavingMessages runs afterList once, right after the first ListByParticipant
// has read the store.
type interleavingMessages struct {
	repo.MessageRepo
	once      sync.Once
	afterList func()
}

func (r *interleavingMessages) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*model.Message, error) {
	msgs, err := r.MessageRepo.ListByParticipant(ctx, userID)
	r.once.Do(r.afterList)
	return msgs, err
}

func TestMessageService_WriteDuringInboxRebuildIsNotCached(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	b := ts.user(t, "bob", true)
	send(t, ts, b.ID, a.ID, "hi")

	msgs := &interleavingMessages{
		MessageRepo: ts.store.Messages(),
		afterList:   func() { send(t, ts, b.ID, a.ID, "second") },
	}
	svc := NewMessageService(msgs, ts.store.Users(), ts.store.Projects(), ts.inbox, ts.pub, zap.NewNop())

	_, err := svc.Conversations(ctx, a.ID)
	require.NoError(t, err)
	_, cached, _ := ts.inbox.Get(ctx, a.ID)
	assert.False(t, cached)

	convs, err := svc.Conversations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, 2, convs[0].UnreadCount)
	assert.Equal(t, "second", convs[0].LastMessage.Content)
}

func TestMessageService_CachedInboxShowsCurrentProfile(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	a := ts.user(t, "alice", false)
	b := ts.user(t, "bob", true)
	send(t, ts, b.ID, a.ID, "hi")

	_, err := ts.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)

	_, err = ts.users.Update(ctx, b.ID, UpdateUserInput{Username: ptr("bob_renamed"), Bio: ptr("Solidity auditor")})
	require.NoError(t, err)

	_, cached, _ := ts.inbox.Get(ctx, a.ID)
	require.True(t, cached)

	convs, err := ts.messages.Conversations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "bob_renamed", convs[0].User.Username)
	require.NotNil(t, convs[0].User.Bio)
	assert.Equal(t, "Solidity auditor", *convs[0].User.Bio)
	assert.Equal(t, "hi", convs[0].LastMessage.Content)
}
