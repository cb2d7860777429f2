package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+33612345678", "+33612345678"},
		{"33612345678", "+33612345678"},
		{"06 12 34 56 78", "+0612345678"},
		{"06-12-34-56-78", "+0612345678"},
		{"", ""},
		{"abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestTruncate(t *testing.T) {
	short := "see you tomorrow"
	assert.Equal(t, short, Truncate(short))

	long := strings.Repeat("a", MaxMessageLength+10)
	got := Truncate(long)
	assert.Len(t, []rune(got), MaxMessageLength)
	assert.True(t, strings.HasSuffix(got, "..."))

	exact := strings.Repeat("b", MaxMessageLength)
	assert.Equal(t, exact, Truncate(exact))
}

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		var req sendRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "acc-1", req.Account)
		assert.Equal(t, "DriveDesk", req.From)
		assert.Equal(t, "+0612345678", req.To)
		assert.Equal(t, "Session tomorrow at 10:00", req.Text)

		_ = json.NewEncoder(w).Encode(sendResponse{MessageID: "msg-42"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acc-1", "secret-token", "DriveDesk", 5*time.Second)

	id, err := c.Send(context.Background(), "06 12 34 56 78", "Session tomorrow at 10:00")
	assert.NoError(t, err)
	assert.Equal(t, "msg-42", id)
}

func TestSend_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(sendResponse{Error: "invalid destination"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acc-1", "token", "DriveDesk", time.Second)

	_, err := c.Send(context.Background(), "+33612345678", "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid destination")
}

func TestSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "account suspended", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "acc-1", "token", "DriveDesk", time.Second)

	_, err := c.Send(context.Background(), "+33612345678", "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "account suspended")
}
