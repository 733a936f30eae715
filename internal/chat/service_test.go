package chat

import (
	"testing"

	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
)

func TestIsParticipant(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	chat := &models.Chat{OwnerID: owner, DialogueWithID: other}

	if !isParticipant(chat, owner) {
		t.Fatal("expected owner to be a participant")
	}
	if !isParticipant(chat, other) {
		t.Fatal("expected dialogue partner to be a participant")
	}
	if isParticipant(chat, uuid.New()) {
		t.Fatal("expected stranger to be excluded")
	}
}

func TestMessageDTOFlattensAttachments(t *testing.T) {
	row := &models.Message{
		ID:       uuid.New(),
		ChatID:   uuid.New(),
		SenderID: uuid.New(),
		Body:     "on my way",
		Attachments: []models.Attachment{
			{File: "map.png"},
		},
	}

	dto := toMessageDTO(row)
	if dto.Body != "on my way" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if len(dto.Attachments) != 1 || dto.Attachments[0] != "map.png" {
		t.Fatalf("unexpected attachments %v", dto.Attachments)
	}
}
