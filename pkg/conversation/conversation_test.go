package conversation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: RoleUser},
		{in: "USER", want: RoleUser},
		{in: " Assistant ", want: RoleAssistant},
		{in: "system", want: RoleSystem},
		{in: "tool", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeRole(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRole)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestReconcile_ComparesOnlyWithLastOfSameRole(t *testing.T) {
	ledger := NewLedger()
	ledger.Observe(RoleUser, "hello", "")
	ledger.Observe(RoleAssistant, "hi there", "")

	accepted := ledger.Reconcile([]Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "how are you"},
	})

	assert.Equal(t, []Message{
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "how are you"},
	}, accepted)
}

func TestReconcile_ResendIsNoop(t *testing.T) {
	ledger := NewLedger()
	batch := []Message{{Role: RoleUser, Content: "explain goroutines"}}

	first := ledger.Reconcile(batch)
	second := ledger.Reconcile(batch)

	assert.Len(t, first, 1)
	assert.Empty(t, second)
}

func TestReconcile_OlderDuplicateIsAppended(t *testing.T) {
	ledger := NewLedger()
	ledger.Observe(RoleUser, "A", "")
	ledger.Observe(RoleUser, "B", "")

	accepted := ledger.Reconcile([]Message{{Role: RoleUser, Content: "A"}})
	assert.Len(t, accepted, 1)
}

func TestReconcile_SkipsBlankAndKnownKeys(t *testing.T) {
	ledger := NewLedger()
	ledger.ObserveKey("k-1")

	accepted := ledger.Reconcile([]Message{
		{Role: RoleUser, Content: "   "},
		{Role: RoleUser, Content: "new text", IdempotencyKey: "k-1"},
		{Role: RoleUser, Content: "fresh", IdempotencyKey: "k-2"},
		{Role: RoleUser, Content: "again", IdempotencyKey: "k-2"},
	})

	assert.Equal(t, []Message{{Role: RoleUser, Content: "fresh", IdempotencyKey: "k-2"}}, accepted)
}

func TestHasContent(t *testing.T) {
	assert.False(t, HasContent(nil))
	assert.False(t, HasContent([]Message{{Content: " \n\t"}}))
	assert.True(t, HasContent([]Message{{Content: " "}, {Content: "x"}}))
}

func TestTitle(t *testing.T) {
	now := time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC)

	t.Run("first non-blank user message", func(t *testing.T) {
		title := Title([]Message{
			{Role: RoleSystem, Content: "be terse"},
			{Role: RoleUser, Content: "  "},
			{Role: RoleUser, Content: "  What is a channel?  "},
		}, now)
		assert.Equal(t, "What is a channel?", title)
	})

	t.Run("long message truncated", func(t *testing.T) {
		long := strings.Repeat("a", 45)
		assert.Equal(t, strings.Repeat("a", 40)+"...", Title([]Message{{Role: RoleUser, Content: long}}, now))
	})

	t.Run("fallback to date", func(t *testing.T) {
		assert.Equal(t, "Chat - 2024-05-02", Title([]Message{{Role: RoleAssistant, Content: "hi"}}, now))
	})
}

func TestTruncate_CountsRunes(t *testing.T) {
	s := strings.Repeat("é", 120)
	assert.Equal(t, s, Preview(s))
	assert.Equal(t, strings.Repeat("é", 120)+"...", Preview(s+"é"))
	assert.Equal(t, "", Preview(""))
}
