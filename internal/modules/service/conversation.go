package service

import (
	"slices"

	"github.com/dappwork/marketplace/internal/modules/model"
	"github.com/google/uuid"
)

// Conversation is one row of a user's inbox: the other participant, the latest
// message exchanged with them, and how many of their messages are still unread.
type Conversation struct {
	User        *model.User    `json:"user"`
	LastMessage *model.Message `json:"lastMessage"`
	UnreadCount int            `json:"unreadCount"`
}

// InboxEntry is a Conversation without the counterpart's profile. Only message data
// is cached; profiles are loaded on every read.
type InboxEntry struct {
	CounterpartID uuid.UUID      `json:"counterpartId"`
	LastMessage   *model.Message `json:"lastMessage"`
	UnreadCount   int            `json:"unreadCount"`
}

// SummarizeInbox groups messages by counterpart of userID, most recently active first.
// msgs must be every message userID sent or received, oldest first.
func SummarizeInbox(userID uuid.UUID, msgs []*model.Message) []InboxEntry {
	unread := make(map[uuid.UUID]int)
	for _, m := range msgs {
		if m.ReceiverID == userID && m.SenderID != userID && !m.IsRead {
			unread[m.SenderID]++
		}
	}

	// Newest first. Reversing before the stable sort keeps later-stored messages
	// ahead of earlier ones that share a timestamp.
	ordered := slices.Clone(msgs)
	slices.Reverse(ordered)
	slices.SortStableFunc(ordered, func(a, b *model.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	seen := make(map[uuid.UUID]struct{})
	out := make([]InboxEntry, 0)
	for _, m := range ordered {
		other := m.Counterpart(userID)
		if _, done := seen[other]; done {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, InboxEntry{CounterpartID: other, LastMessage: m, UnreadCount: unread[other]})
	}
	return out
}

// ResolveInbox attaches profiles to entries. Counterparts missing from users are left out.
func ResolveInbox(entries []InboxEntry, users map[uuid.UUID]*model.User) []Conversation {
	out := make([]Conversation, 0, len(entries))
	for _, e := range entries {
		u, ok := users[e.CounterpartID]
		if !ok {
			continue
		}
		out = append(out, Conversation{User: u, LastMessage: e.LastMessage, UnreadCount: e.UnreadCount})
	}
	return out
}

// BuildConversations is SummarizeInbox followed by ResolveInbox.
func BuildConversations(userID uuid.UUID, msgs []*model.Message, users map[uuid.UUID]*model.User) []Conversation {
	return ResolveInbox(SummarizeInbox(userID, msgs), users)
}

func counterparts(entries []InboxEntry) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.CounterpartID)
	}
	return ids
}
