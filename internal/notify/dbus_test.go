//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/nonexistent/bus")

	n := New()
	id, err := n.Notify(Notification{Title: "x"})

	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestNotifyReplacesExisting(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n := New()

	id1, err := n.Notify(Notification{Title: "Track 1", Body: "Artist", Timeout: 2000})
	require.NoError(t, err)
	id2, err := n.Notify(Notification{Title: "Track 2", Body: "Artist", Timeout: 1000, ReplacesID: id1})
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.NoError(t, n.Close(id2))
}
