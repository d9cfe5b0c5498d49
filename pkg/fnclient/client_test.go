package fnclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTokenSource struct{}

func (failingTokenSource) Token(context.Context) (string, error) {
	return "", errors.New("session expired")
}

// TestCall_Success - успешный вызов возвращает тело как есть
func TestCall_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-checkout", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "premium", body["plan_type"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://pay.example/s/1"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, StaticToken("tok-123"))
	raw, err := client.Call(context.Background(), "create-checkout", map[string]string{"plan_type": "premium"}, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://pay.example/s/1"}`, string(raw))
}

// TestCall_ServerErrorMessage - сообщение из тела {"error":"..."} пробрасывается
func TestCall_ServerErrorMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Unknown plan type"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Call(context.Background(), "create-checkout", nil, "")
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusBadRequest, callErr.StatusCode)
	assert.Equal(t, "Unknown plan type", callErr.Message)
}

// TestCall_NestedErrorMessage - вложенная форма {"error":{"message":"..."}}
func TestCall_NestedErrorMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"Insufficient permissions"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Call(context.Background(), "upload", nil, "")

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "Insufficient permissions", callErr.Message)
}

// TestCall_GenericError - без тела сообщение содержит код статуса
func TestCall_GenericError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, nil)
	_, err := client.Call(context.Background(), "dispatch", nil, "")

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Contains(t, callErr.Message, "502")
}

// TestCall_SessionError - отказ источника токена дает SessionError,
// запрос на сервер не уходит
func TestCall_SessionError(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL, failingTokenSource{})
	_, err := client.Call(context.Background(), "dispatch", nil, "")

	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.False(t, called)
}

// TestCall_NoTokenOmitsHeader - пустой токен означает анонимный вызов
func TestCall_NoTokenOmitsHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, StaticToken(""))
	_, err := client.Call(context.Background(), "health", nil, http.MethodGet)
	require.NoError(t, err)
}
