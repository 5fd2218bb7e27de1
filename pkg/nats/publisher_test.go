package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "learning.topic_completed", Subject("TOPIC_COMPLETED"))
	assert.Equal(t, "learning.chat_session_deleted", Subject("CHAT_SESSION_DELETED"))
	assert.Equal(t, "learning.bad_type_", Subject("BAD TYPE*"))
}

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent([]byte(`{"type":"TOPIC_COMPLETED","occurred_at":"2024-03-10T12:00:00Z","data":{"topic":"Go"}}`))
	require.NoError(t, err)
	assert.Equal(t, "TOPIC_COMPLETED", event.EventType())
	assert.Equal(t, "Go", event.Payload()["topic"])
	assert.Equal(t, 2024, event.Timestamp().Year())

	_, err = DecodeEvent([]byte(`{"data":{}}`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}
