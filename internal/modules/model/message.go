package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID      *uuid.UUID `gorm:"type:uuid;index:ix_messages_project_id" json:"projectId"`
	SenderID       uuid.UUID  `gorm:"type:uuid;not null;index:ix_messages_sender_receiver,priority:1" json:"senderId"`
	ReceiverID     uuid.UUID  `gorm:"type:uuid;not null;index:ix_messages_sender_receiver,priority:2;index:ix_messages_receiver_unread,priority:1" json:"receiverId"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	FileAttachment *string    `gorm:"type:text" json:"fileAttachment"`
	IsRead         bool       `gorm:"not null;index:ix_messages_receiver_unread,priority:2" json:"isRead"`

	// CreatedAt is never written after insert.
	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`

	Sender   *User    `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`
	Receiver *User    `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE;" json:"-"`
	Project  *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"-"`
}

func (Message) TableName() string { return "messages" }

func (m *Message) Clone() *Message {
	c := *m
	c.ProjectID = cloneUUID(m.ProjectID)
	c.FileAttachment = cloneString(m.FileAttachment)
	c.Sender, c.Receiver, c.Project = nil, nil, nil
	return &c
}

// Counterpart returns the participant of m that is not userID.
func (m *Message) Counterpart(userID uuid.UUID) uuid.UUID {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
