// Package fnclient - клиент для вызова именованных функций API
// из доверенных со-сервисов и CLI-утилит.
package fnclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource выдает bearer-токен текущей сессии.
// Пустой токен без ошибки означает анонимный вызов:
// отказ тогда остается за серверной аутентификацией.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken - TokenSource с фиксированным токеном
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// SessionError - отказ получения сессии/токена.
// Отличим от HTTP-ошибок вызываемой функции.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session error: %v", e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// CallError - не-2xx ответ вызываемой функции
type CallError struct {
	StatusCode int
	Message    string
}

func (e *CallError) Error() string {
	return e.Message
}

// Client вызывает функции по имени относительно базового URL
type Client struct {
	baseURL    string
	tokenSrc   TokenSource
	httpClient *http.Client
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (таймауты, транспорт, тесты)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New создает клиент. tokenSrc может быть nil для анонимных вызовов.
func New(baseURL string, tokenSrc TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		tokenSrc: tokenSrc,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call вызывает функцию name методом method (по умолчанию POST).
// payload сериализуется в JSON-тело, nil означает пустое тело.
// Успешный ответ возвращается как есть, без валидации схемы.
func (c *Client) Call(ctx context.Context, name string, payload interface{}, method string) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(name, "/"))
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokenSrc != nil {
		token, err := c.tokenSrc.Token(ctx)
		if err != nil {
			return nil, &SessionError{Err: err}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &CallError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		}
	}

	return json.RawMessage(raw), nil
}

// errorMessage извлекает сообщение из тела ошибки.
// Поддерживаются обе формы: {"error": "msg"} и {"error": {"message": "msg"}}.
func errorMessage(body []byte, statusCode int) string {
	generic := fmt.Sprintf("edge function returned status %d", statusCode)
	if len(body) == 0 {
		return generic
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	return generic
}
