package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aidosmk/food-delivery-backend/pkg/db/models"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	pkgerrors "github.com/aidosmk/food-delivery-backend/pkg/errors"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
	"github.com/aidosmk/food-delivery-backend/pkg/pagination"
)

// StartChatInput opens a dialogue around an order.
type StartChatInput struct {
	OrderID        uuid.UUID
	DialogueWithID uuid.UUID
}

// SendMessageInput holds a validated outgoing message.
type SendMessageInput struct {
	Body        string
	Attachments []AttachmentInput
}

// AttachmentInput references an uploaded file.
type AttachmentInput struct {
	File string
	Kind enums.AttachmentKind
}

// ChatDTO is the API shape of a dialogue.
type ChatDTO struct {
	ID             uuid.UUID   `json:"id"`
	OrderID        uuid.UUID   `json:"order_id"`
	OwnerID        uuid.UUID   `json:"owner_id"`
	DialogueWithID uuid.UUID   `json:"dialogue_with_id"`
	LastMessage    *MessageDTO `json:"last_message,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// MessageDTO is the API shape of a chat message.
type MessageDTO struct {
	ID          uuid.UUID `json:"id"`
	ChatID      uuid.UUID `json:"chat_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"is_read"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service exposes order chat operations.
type Service interface {
	Start(ctx context.Context, ownerID uuid.UUID, input StartChatInput) (*ChatDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ChatDTO, error)
	SendMessage(ctx context.Context, chatID, senderID uuid.UUID, input SendMessageInput) (*MessageDTO, error)
	ListMessages(ctx context.Context, chatID, userID uuid.UUID, params pagination.Params) ([]MessageDTO, string, error)
	MarkRead(ctx context.Context, chatID, userID uuid.UUID) error
}

// service implements the chat service.
type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a chat service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Start opens a chat for an order. Reuses an existing dialogue between the
// same pair when one already exists.
func (s *service) Start(ctx context.Context, ownerID uuid.UUID, input StartChatInput) (*ChatDTO, error) {
	if input.DialogueWithID == ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot open a chat with yourself")
	}

	existing, err := s.repo.FindForOrderPair(ctx, input.OrderID, ownerID, input.DialogueWithID)
	if err == nil {
		return toChatDTO(existing), nil
	}
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	chat := &models.Chat{
		OrderID:        input.OrderID,
		OwnerID:        ownerID,
		DialogueWithID: input.DialogueWithID,
	}
	if _, err := s.repo.Create(ctx, chat); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating chat")
	}
	return toChatDTO(chat), nil
}

// ListForUser returns chats the user participates in, either side, each
// with its most recent message for preview rendering.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]ChatDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing chats")
	}
	out := make([]ChatDTO, 0, len(rows))
	for i := range rows {
		dto := toChatDTO(&rows[i])
		last, err := s.repo.LastMessage(ctx, rows[i].ID)
		if err == nil {
			dto.LastMessage = toMessageDTO(last)
		}
		out = append(out, *dto)
	}
	return out, nil
}

// SendMessage appends a message to the chat. Only participants may post.
func (s *service) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, input SendMessageInput) (*MessageDTO, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" && len(input.Attachments) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body or attachment required")
	}

	chat, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(chat, senderID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this chat")
	}

	message := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Body:     body,
	}
	for _, attachment := range input.Attachments {
		kind := attachment.Kind
		if !kind.IsValid() {
			kind = enums.AttachmentKindImage
		}
		message.Attachments = append(message.Attachments, models.Attachment{
			File: attachment.File,
			Kind: kind,
		})
	}

	if _, err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sending message")
	}
	return toMessageDTO(message), nil
}

// ListMessages returns a cursor page of the chat history, newest first.
func (s *service) ListMessages(ctx context.Context, chatID, userID uuid.UUID, params pagination.Params) ([]MessageDTO, string, error) {
	chat, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		return nil, "", err
	}
	if !isParticipant(chat, userID) {
		return nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this chat")
	}

	rows, next, err := s.repo.ListMessages(ctx, chatID, params)
	if err != nil {
		return nil, "", err
	}
	out := make([]MessageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toMessageDTO(&rows[i]))
	}
	return out, next, nil
}

// MarkRead flags every message sent by the other participant as read.
func (s *service) MarkRead(ctx context.Context, chatID, userID uuid.UUID) error {
	chat, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !isParticipant(chat, userID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not a participant of this chat")
	}
	return s.repo.MarkMessagesRead(ctx, chatID, userID)
}

func isParticipant(chat *models.Chat, userID uuid.UUID) bool {
	return chat.OwnerID == userID || chat.DialogueWithID == userID
}

func toChatDTO(c *models.Chat) *ChatDTO {
	if c == nil {
		return nil
	}
	return &ChatDTO{
		ID:             c.ID,
		OrderID:        c.OrderID,
		OwnerID:        c.OwnerID,
		DialogueWithID: c.DialogueWithID,
		CreatedAt:      c.CreatedAt,
	}
}

func toMessageDTO(m *models.Message) *MessageDTO {
	if m == nil {
		return nil
	}
	dto := &MessageDTO{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
	for i := range m.Attachments {
		dto.Attachments = append(dto.Attachments, m.Attachments[i].File)
	}
	return dto
}

// Repository wires together chat persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the chat row.
func (r *Repository) Create(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return nil, err
	}
	return chat, nil
}

// FindByID loads a single chat.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat not found")
		}
		return nil, err
	}
	return &chat, nil
}

// FindForOrderPair finds the dialogue between two users on an order,
// regardless of which side opened it.
func (r *Repository) FindForOrderPair(ctx context.Context, orderID, a, b uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Where("(owner_id = ? AND dialogue_with_id = ?) OR (owner_id = ? AND dialogue_with_id = ?)", a, b, b, a).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "chat not found")
		}
		return nil, err
	}
	return &chat, nil
}

// ListForUser returns every chat the user is part of, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Chat, error) {
	var rows []models.Chat
	err := r.db.WithContext(ctx).
		Where("owner_id = ? OR dialogue_with_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateMessage inserts the message with its attachments.
func (r *Repository) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages returns a cursor page of the chat's messages with
// attachments, newest first.
func (r *Repository) ListMessages(ctx context.Context, chatID uuid.UUID, params pagination.Params) ([]models.Message, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	query := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Message
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	pageSize := pagination.NormalizeLimit(params.Limit)
	var next string
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// LastMessage returns the chat's most recent message.
func (r *Repository) LastMessage(ctx context.Context, chatID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no messages yet")
		}
		return nil, err
	}
	return &message, nil
}

// MarkMessagesRead flags unread messages from the other participant.
func (r *Repository) MarkMessagesRead(ctx context.Context, chatID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = false", chatID, readerID).
		Update("is_read", true).Error
}
