package turnstile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyWithoutTokenOrSecret(t *testing.T) {
	client := NewClient(time.Second)

	err := client.Verify(context.Background(), "secret", "")
	assert.ErrorIs(t, err, ErrMissingToken)

	err = client.Verify(context.Background(), "", "token")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestVerifySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.PostFormValue("secret"))
		assert.Equal(t, "test-token", r.PostFormValue("response"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, time.Second)
	assert.NoError(t, client.Verify(context.Background(), "test-secret", "test-token"))
}

func TestVerifyRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, time.Second)
	err := client.Verify(context.Background(), "test-secret", "bad-token")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyUnreachableProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // deliberately closed

	client := NewClientWithURL(server.URL, time.Second)
	err := client.Verify(context.Background(), "test-secret", "test-token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, time.Second)
	err := client.Verify(context.Background(), "test-secret", "test-token")
	assert.Error(t, err)
}
