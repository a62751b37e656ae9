package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotify(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText, gotMode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChat = r.FormValue("chat_id")
		gotText = r.FormValue("text")
		gotMode = r.FormValue("parse_mode")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewTelegramNotifier("token123", "chat456")
	n.endpoint = server.URL

	require.NoError(t, n.Notify(context.Background(), "Alerte", "5 articles en attente"))

	assert.Equal(t, "/bottoken123/sendMessage", gotPath)
	assert.Equal(t, "chat456", gotChat)
	assert.Equal(t, "*Alerte*\n5 articles en attente", gotText)
	assert.Equal(t, "Markdown", gotMode)
}

func TestTelegramNotifyHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := NewTelegramNotifier("token", "chat")
	n.endpoint = server.URL

	err := n.Notify(context.Background(), "T", "M")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram error")
}

func TestTelegramNotifyMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewTelegramNotifier("", "")
	err := n.Notify(context.Background(), "T", "M")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "misconfigured")
}
