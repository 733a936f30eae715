package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat entry.
type Message struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ChatID      uuid.UUID    `gorm:"column:chat_id;type:uuid;not null"`
	SenderID    uuid.UUID    `gorm:"column:sender_id;type:uuid;not null"`
	Body        string       `gorm:"column:body;not null"`
	IsRead      bool         `gorm:"column:is_read;not null;default:false"`
	Attachments []Attachment `gorm:"many2many:message_attachments"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
}
