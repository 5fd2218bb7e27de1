package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML("# Channels\n\nUse `make(chan int)`.\n\n- send\n- receive")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Channels</h1>")
	assert.Contains(t, out, "<code>make(chan int)</code>")
	assert.Contains(t, out, "<li>send</li>")
}

func TestToHTML_DropsRawHTML(t *testing.T) {
	out, err := ToHTML("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
