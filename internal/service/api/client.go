package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/empathic-coach/client/internal/metrics"
	"github.com/zhouzirui/empathic-coach/client/internal/model/chat"
	"github.com/zhouzirui/empathic-coach/client/internal/model/payment"
)

// Operation names, used for errors, logs and metrics.
const (
	OpSendMessage        = "send_message"
	OpListConversations  = "list_conversations"
	OpGetConversation    = "get_conversation"
	OpDeleteConversation = "delete_conversation"
	OpCreateCheckout     = "create_checkout_session"
	OpPaymentStatus      = "get_payment_status"
	OpHealth             = "health"
)

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// Health is the reply of GET /health.
type Health struct {
	Status    string         `json:"status"`
	Timestamp chat.Timestamp `json:"timestamp"`
}

// Client talks to the coach backend. Every call is one request/response
// exchange with no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every exchange on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client bound to baseURL (scheme://host[:port]).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendMessage posts a message. A nil conversationID asks the server to start
// a new conversation.
func (c *Client) SendMessage(ctx context.Context, content string, conversationID *string) (*chat.SendResult, error) {
	body := chat.SendRequest{Content: content, ConversationID: conversationID}
	var result chat.SendResult
	if err := c.do(ctx, OpSendMessage, http.MethodPost, "/api/v1/messages", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListConversations returns the most recent conversations.
func (c *Client) ListConversations(ctx context.Context) ([]chat.ConversationSummary, error) {
	var result []chat.ConversationSummary
	if err := c.do(ctx, OpListConversations, http.MethodGet, "/api/v1/conversations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetConversation returns one conversation with its stored messages.
func (c *Client) GetConversation(ctx context.Context, id string) (*chat.ConversationDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: %w", OpGetConversation, ErrEmptyID)
	}
	var result chat.ConversationDetail
	if err := c.do(ctx, OpGetConversation, http.MethodGet, "/api/v1/conversations/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteConversation removes a conversation on the server.
func (c *Client) DeleteConversation(ctx context.Context, id string) (*chat.DeleteResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: %w", OpDeleteConversation, ErrEmptyID)
	}
	var result chat.DeleteResult
	if err := c.do(ctx, OpDeleteConversation, http.MethodDelete, "/api/v1/conversations/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateCheckoutSession asks the backend for a hosted checkout URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, plan, userID, userEmail string) (*payment.CheckoutSession, error) {
	body := payment.CheckoutRequest{Plan: plan, UserID: userID, UserEmail: userEmail}
	var result payment.CheckoutSession
	if err := c.do(ctx, OpCreateCheckout, http.MethodPost, "/api/v1/checkout", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPaymentStatus polls the outcome of a checkout session once.
func (c *Client) GetPaymentStatus(ctx context.Context, sessionID string) (*payment.Status, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%s: %w", OpPaymentStatus, ErrEmptyID)
	}
	query := url.Values{"session_id": []string{sessionID}}
	var result payment.Status
	if err := c.do(ctx, OpPaymentStatus, http.MethodGet, "/api/v1/payment-status?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var result Health
	if err := c.do(ctx, OpHealth, http.MethodGet, "/health", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	target := c.baseURL + path
	started := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		elapsed := time.Since(started)
		c.metrics.ObserveAPI(op, outcome, elapsed)
		if err != nil {
			c.logger.Warn("api request failed",
				zap.String("op", op),
				zap.String("method", method),
				zap.String("url", target),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
			return
		}
		c.logger.Debug("api request",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("url", target),
			zap.Duration("elapsed", elapsed),
		)
	}()

	var reader io.Reader
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			outcome = metrics.OutcomeTransport
			return fmt.Errorf("%s: marshal request: %w", op, marshalErr)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return &NetworkError{Op: op, Method: method, URL: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return &NetworkError{Op: op, Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeHTTPError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &NetworkError{
			Op:         op,
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(raw),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		outcome = metrics.OutcomeDecode
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
