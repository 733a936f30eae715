package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aidosmk/food-delivery-backend/api/responses"
	"github.com/aidosmk/food-delivery-backend/api/validators"
	"github.com/aidosmk/food-delivery-backend/internal/chat"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

type startChatRequest struct {
	OrderID        uuid.UUID `json:"order_id" validate:"required"`
	DialogueWithID uuid.UUID `json:"dialogue_with_id" validate:"required"`
}

type sendMessageRequest struct {
	Body        string              `json:"body"`
	Attachments []attachmentRequest `json:"attachments"`
}

// StartChat opens (or reuses) an order dialogue for the caller.
func StartChat(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body startChatRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		opened, err := svc.Start(r.Context(), userID, chat.StartChatInput{
			OrderID:        body.OrderID,
			DialogueWithID: body.DialogueWithID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, opened)
	}
}

// ListChats returns dialogues the caller participates in.
func ListChats(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		chats, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, chats)
	}
}

// SendChatMessage appends a message to the dialogue.
func SendChatMessage(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		chatID, err := pathUUID(r, "chatId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sendMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := chat.SendMessageInput{Body: body.Body}
		for _, attachment := range body.Attachments {
			kind, err := enums.ParseAttachmentKind(attachment.Kind)
			if err != nil {
				kind = enums.AttachmentKindImage
			}
			input.Attachments = append(input.Attachments, chat.AttachmentInput{File: attachment.File, Kind: kind})
		}

		sent, err := svc.SendMessage(r.Context(), chatID, userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sent)
	}
}

// ListChatMessages returns a cursor page of the dialogue history.
func ListChatMessages(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		chatID, err := pathUUID(r, "chatId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		messages, next, err := svc.ListMessages(r.Context(), chatID, userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, messages, next)
	}
}

// MarkChatRead flags the other participant's messages as read.
func MarkChatRead(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		chatID, err := pathUUID(r, "chatId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkRead(r.Context(), chatID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "read"})
	}
}
