package domain

// ParticipantRole identifies the speaker of a chat turn.
type ParticipantRole string

const (
	RoleCustomer ParticipantRole = "CUSTOMER"
	RoleAgent    ParticipantRole = "AGENT"
	RoleOther    ParticipantRole = "OTHER"
)

// ParseRole maps the raw participantRole value from the chat event onto the
// closed role set. Anything unrecognized, including the empty string, is
// RoleOther so the message still receives grammar correction.
func ParseRole(raw string) ParticipantRole {
	switch raw {
	case string(RoleCustomer):
		return RoleCustomer
	case string(RoleAgent):
		return RoleAgent
	default:
		return RoleOther
	}
}

// ChatMessage is the per-invocation view of one inbound chat turn. It is
// built fresh from the event and never persisted.
type ChatMessage struct {
	Content         string
	ContentType     string
	ParticipantRole ParticipantRole
	ContactID       string
}
