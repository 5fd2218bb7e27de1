// Package conversation decides which incoming chat messages are new, and
// derives session titles and list previews.
package conversation

import (
	"errors"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

var ErrInvalidRole = errors.New("role must be one of user, assistant, system")

type Message struct {
	Role           string
	Content        string
	IdempotencyKey string
}

// NormalizeRole lowercases role and defaults an empty one to user.
func NormalizeRole(role string) (string, error) {
	r := strings.ToLower(strings.TrimSpace(role))
	switch r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAssistant, RoleSystem:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// HasContent reports whether any message would be considered for appending.
func HasContent(messages []Message) bool {
	for _, m := range messages {
		if !IsBlank(m.Content) {
			return true
		}
	}
	return false
}

// Ledger tracks, per session, the last stored content for each role and the
// idempotency keys already used.
type Ledger struct {
	lastByRole map[string]string
	keys       map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{
		lastByRole: make(map[string]string),
		keys:       make(map[string]struct{}),
	}
}

// Observe records a stored message. Call it in storage order.
func (l *Ledger) Observe(role, content, idempotencyKey string) {
	l.lastByRole[role] = content
	if idempotencyKey != "" {
		l.keys[idempotencyKey] = struct{}{}
	}
}

// ObserveKey records an idempotency key without touching the per-role state.
func (l *Ledger) ObserveKey(idempotencyKey string) {
	if idempotencyKey != "" {
		l.keys[idempotencyKey] = struct{}{}
	}
}

// Accepts reports whether m would be appended. Blank content, a known
// idempotency key, or the same content as the last message of the same role
// are rejected.
func (l *Ledger) Accepts(m Message) bool {
	if IsBlank(m.Content) {
		return false
	}
	if m.IdempotencyKey != "" {
		if _, seen := l.keys[m.IdempotencyKey]; seen {
			return false
		}
	}
	last, ok := l.lastByRole[m.Role]
	return !ok || last != m.Content
}

// Reconcile returns the messages of incoming that should be appended, in
// order. Accepted messages are observed, so a repeat later in the same batch
// is compared against them.
func (l *Ledger) Reconcile(incoming []Message) []Message {
	accepted := make([]Message, 0, len(incoming))
	for _, m := range incoming {
		if !l.Accepts(m) {
			continue
		}
		l.Observe(m.Role, m.Content, m.IdempotencyKey)
		accepted = append(accepted, m)
	}
	return accepted
}
