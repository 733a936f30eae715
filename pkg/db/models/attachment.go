package models

import (
	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/pkg/enums"
)

// Attachment is a stored file referenced by feedback or chat messages.
type Attachment struct {
	ID   uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	File string               `gorm:"column:file;not null"`
	Kind enums.AttachmentKind `gorm:"column:kind;not null;default:'image'"`
}
