package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"chat-processor/internal/domain"
)

const defaultContentType = "text/plain"

// Status is the envelope status. Only StatusProcessed and StatusFailed are
// produced; StatusApproved and StatusRejected are reserved for a future
// moderation extension.
type Status string

const (
	StatusProcessed Status = "PROCESSED"
	StatusApproved  Status = "APPROVED"
	StatusFailed    Status = "FAILED"
	StatusRejected  Status = "REJECTED"
)

// ChatContent is the message substructure of the Amazon Connect chat event.
// Fields not consumed by the pipeline are still declared so the event
// decodes losslessly.
type ChatContent struct {
	AbsoluteTime     string `json:"absoluteTime"`
	Content          string `json:"content"`
	ContentType      string `json:"contentType"`
	ID               string `json:"id"`
	ParticipantID    string `json:"participantId"`
	DisplayName      string `json:"displayName"`
	ParticipantRole  string `json:"participantRole"`
	InitialContactID string `json:"initialContactId"`
	ContactID        string `json:"contactId"`
}

// Event is the inbound per-turn chat event.
type Event struct {
	Version               string      `json:"version"`
	InstanceID            string      `json:"instanceId"`
	AssociatedResourceARN string      `json:"associatedResourceArn"`
	ChatContent           ChatContent `json:"chatContent"`
}

// Envelope is the fixed-shape response returned for every invocation.
type Envelope struct {
	Status Status `json:"status"`
	Result Result `json:"result"`
}

type Result struct {
	ProcessedChatContent ProcessedChatContent `json:"processedChatContent"`
}

type ProcessedChatContent struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// MessageProcessor is the per-role processing pipeline consumed by the
// handler. Implementations never return errors; every stage fails soft to
// earlier output.
type MessageProcessor interface {
	ProcessCustomerMessage(ctx context.Context, content, contactID string) string
	ProcessAgentMessage(ctx context.Context, content, contactID string) string
	CorrectOnly(ctx context.Context, content string) string
}

type Handler struct {
	processor MessageProcessor
	log       *slog.Logger
}

func NewHandler(processor MessageProcessor, log *slog.Logger) (*Handler, error) {
	if processor == nil {
		return nil, errors.New("handler: processor must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{processor: processor, log: log}, nil
}

// Handle processes one chat event and always returns a well-formed envelope
// with a nil error: anything unexpected escaping the pipeline is caught
// here and converted into a FAILED envelope carrying the original content.
func (h *Handler) Handle(ctx context.Context, event Event) (out Envelope, err error) {
	msg := messageFromEvent(event)
	log := h.log.With(
		"requestId", uuid.NewString(),
		"contactId", msg.ContactID,
		"role", string(msg.ParticipantRole),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("message processing panicked, passing content through", "panic", r)
			out = envelope(StatusFailed, messageFromEvent(event))
			err = nil
		}
	}()

	// Nothing to process; no collaborator is invoked.
	if strings.TrimSpace(msg.Content) == "" {
		return envelope(StatusProcessed, msg), nil
	}

	processed := msg
	switch msg.ParticipantRole {
	case domain.RoleCustomer:
		processed.Content = h.processor.ProcessCustomerMessage(ctx, msg.Content, msg.ContactID)
	case domain.RoleAgent:
		processed.Content = h.processor.ProcessAgentMessage(ctx, msg.Content, msg.ContactID)
	case domain.RoleOther:
		processed.Content = h.processor.CorrectOnly(ctx, msg.Content)
	}

	log.Info("message processed", "changed", processed.Content != msg.Content)
	return envelope(StatusProcessed, processed), nil
}

// messageFromEvent extracts the chat message, applying the documented
// defaults for missing fields.
func messageFromEvent(event Event) domain.ChatMessage {
	contentType := event.ChatContent.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	contactID := event.ChatContent.ContactID
	if contactID == "" {
		contactID = event.ChatContent.InitialContactID
	}
	return domain.ChatMessage{
		Content:         event.ChatContent.Content,
		ContentType:     contentType,
		ParticipantRole: domain.ParseRole(event.ChatContent.ParticipantRole),
		ContactID:       contactID,
	}
}

func envelope(status Status, msg domain.ChatMessage) Envelope {
	return Envelope{
		Status: status,
		Result: Result{
			ProcessedChatContent: ProcessedChatContent{
				Content:     msg.Content,
				ContentType: msg.ContentType,
			},
		},
	}
}
