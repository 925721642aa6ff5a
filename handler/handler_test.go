package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	customerOut string
	agentOut    string
	correctOut  string
	panicWith   any

	customerCalls int
	agentCalls    int
	correctCalls  int
	lastContent   string
	lastContactID string
}

func (s *stubProcessor) ProcessCustomerMessage(_ context.Context, content, contactID string) string {
	s.customerCalls++
	s.lastContent = content
	s.lastContactID = contactID
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.customerOut
}

func (s *stubProcessor) ProcessAgentMessage(_ context.Context, content, contactID string) string {
	s.agentCalls++
	s.lastContent = content
	s.lastContactID = contactID
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.agentOut
}

func (s *stubProcessor) CorrectOnly(_ context.Context, content string) string {
	s.correctCalls++
	s.lastContent = content
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.correctOut
}

func makeEvent(content, contentType, role, contactID string) Event {
	return Event{
		Version:    "1.0",
		InstanceID: "instance-1",
		ChatContent: ChatContent{
			Content:         content,
			ContentType:     contentType,
			ParticipantRole: role,
			ContactID:       contactID,
		},
	}
}

func mustNewHandler(t *testing.T, p MessageProcessor) *Handler {
	t.Helper()
	h, err := NewHandler(p, nil)
	require.NoError(t, err)
	return h
}

func TestNewHandler_NilProcessor(t *testing.T) {
	_, err := NewHandler(nil, nil)
	require.Error(t, err)
}

func TestHandle_EmptyContentShortCircuits(t *testing.T) {
	p := &stubProcessor{}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("", "text/plain", "CUSTOMER", "c1"))
	require.NoError(t, err)
	require.Equal(t, StatusProcessed, out.Status)
	require.Equal(t, "", out.Result.ProcessedChatContent.Content)
	require.Equal(t, "text/plain", out.Result.ProcessedChatContent.ContentType)
	require.Zero(t, p.customerCalls+p.agentCalls+p.correctCalls)
}

func TestHandle_WhitespaceOnlyContentShortCircuits(t *testing.T) {
	p := &stubProcessor{}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("   \n\t ", "", "AGENT", "c1"))
	require.NoError(t, err)
	require.Equal(t, StatusProcessed, out.Status)
	// Content passes through exactly, whitespace included.
	require.Equal(t, "   \n\t ", out.Result.ProcessedChatContent.Content)
	require.Zero(t, p.customerCalls+p.agentCalls+p.correctCalls)
}

func TestHandle_MissingContentTypeDefaults(t *testing.T) {
	p := &stubProcessor{customerOut: "processed"}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("hola", "", "CUSTOMER", "c1"))
	require.NoError(t, err)
	require.Equal(t, "text/plain", out.Result.ProcessedChatContent.ContentType)
}

func TestHandle_RoutesCustomer(t *testing.T) {
	p := &stubProcessor{customerOut: "customer result"}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("hola", "text/plain", "CUSTOMER", "c1"))
	require.NoError(t, err)
	require.Equal(t, StatusProcessed, out.Status)
	require.Equal(t, "customer result", out.Result.ProcessedChatContent.Content)
	require.Equal(t, 1, p.customerCalls)
	require.Equal(t, "c1", p.lastContactID)
}

func TestHandle_RoutesAgent(t *testing.T) {
	p := &stubProcessor{agentOut: "agent result"}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("hello", "text/plain", "AGENT", "c2"))
	require.NoError(t, err)
	require.Equal(t, "agent result", out.Result.ProcessedChatContent.Content)
	require.Equal(t, 1, p.agentCalls)
	require.Zero(t, p.customerCalls)
}

func TestHandle_UnknownRoleCorrectsOnly(t *testing.T) {
	p := &stubProcessor{correctOut: "corrected only"}
	h := mustNewHandler(t, p)

	for _, role := range []string{"SYSTEM", "supervisor", ""} {
		p.correctCalls = 0
		out, err := h.Handle(context.Background(), makeEvent("text", "text/plain", role, "c1"))
		require.NoError(t, err)
		require.Equal(t, "corrected only", out.Result.ProcessedChatContent.Content)
		require.Equal(t, 1, p.correctCalls, "role %q", role)
		require.Zero(t, p.customerCalls+p.agentCalls)
	}
}

func TestHandle_ContactIDFallsBackToInitialContactID(t *testing.T) {
	p := &stubProcessor{customerOut: "ok"}
	h := mustNewHandler(t, p)

	event := makeEvent("hola", "text/plain", "CUSTOMER", "")
	event.ChatContent.InitialContactID = "initial-7"
	_, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, "initial-7", p.lastContactID)
}

func TestHandle_PanicProducesFailedEnvelope(t *testing.T) {
	p := &stubProcessor{panicWith: "boom"}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("hola amigo", "text/markdown", "CUSTOMER", "c1"))
	require.NoError(t, err)
	require.Equal(t, StatusFailed, out.Status)
	// Original content and content type pass through unmodified.
	require.Equal(t, "hola amigo", out.Result.ProcessedChatContent.Content)
	require.Equal(t, "text/markdown", out.Result.ProcessedChatContent.ContentType)
}

func TestHandle_PanicWithMissingContentTypeStillWellFormed(t *testing.T) {
	p := &stubProcessor{panicWith: "boom"}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("text", "", "AGENT", "c1"))
	require.NoError(t, err)
	require.Equal(t, StatusFailed, out.Status)
	require.Equal(t, "text/plain", out.Result.ProcessedChatContent.ContentType)
}

func TestHandle_Idempotence(t *testing.T) {
	p := &stubProcessor{agentOut: "stable"}
	h := mustNewHandler(t, p)
	event := makeEvent("hello", "text/plain", "AGENT", "c1")

	first, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	second, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, first.Status, second.Status)
	require.Equal(t, first.Result, second.Result)
}

func TestParseRoleIsCaseSensitive(t *testing.T) {
	p := &stubProcessor{correctOut: "corrected"}
	h := mustNewHandler(t, p)

	out, err := h.Handle(context.Background(), makeEvent("text", "text/plain", strings.ToLower("CUSTOMER"), "c1"))
	require.NoError(t, err)
	require.Equal(t, "corrected", out.Result.ProcessedChatContent.Content)
	require.Zero(t, p.customerCalls)
}
