package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/stxfarm/farm-market/internal/clarity"
)

// PostConditionMode controls how the wallet bounds balance changes for a
// call. Purchases use ModeAllow because the exact STX cost is not
// predictable client-side.
type PostConditionMode string

const (
	ModeDeny  PostConditionMode = "deny"
	ModeAllow PostConditionMode = "allow"
)

// Call describes a contract call to sign and broadcast.
type Call struct {
	Contract          string            `json:"contract"` // "address.name"
	Function          string            `json:"function"`
	Args              []clarity.Arg     `json:"arguments"`
	Network           string            `json:"network"`
	Sender            string            `json:"sender"`
	PostConditionMode PostConditionMode `json:"post_condition_mode,omitempty"`
}

// Submission is the handle returned once the bridge accepts a call for
// broadcast. It is not a confirmation receipt.
type Submission struct {
	ID   uuid.UUID // client-side handle
	TxID string    // transaction id reported by the bridge
}

// Broadcaster submits signed contract calls.
type Broadcaster interface {
	Submit(ctx context.Context, call Call) (Submission, error)
}

// BridgeError represents a submission the bridge refused.
type BridgeError struct {
	StatusCode int
	Reason     string
}

func (e *BridgeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("wallet bridge error %d: %s", e.StatusCode, e.Reason)
	}
	return "wallet bridge: " + e.Reason
}

// Bridge submits calls to a local wallet bridge over HTTP. The bridge
// holds the signing key and returns once the transaction is broadcast.
type Bridge struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// NewBridge creates a wallet bridge client.
func NewBridge(baseURL string, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// WithBridgeTimeout sets the HTTP client timeout.
func WithBridgeTimeout(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		b.httpClient.Timeout = d
	}
}

// WithBridgeLogger sets the logger.
func WithBridgeLogger(logger *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithBridgeHTTPClient sets a custom HTTP client.
func WithBridgeHTTPClient(hc *http.Client) BridgeOption {
	return func(b *Bridge) {
		b.httpClient = hc
	}
}

type bridgeResponse struct {
	TxID   string `json:"txid"`
	Reason string `json:"reason,omitempty"`
}

// Submit signs and broadcasts a contract call. It returns when the
// bridge accepts the transaction, not when it confirms.
func (b *Bridge) Submit(ctx context.Context, call Call) (Submission, error) {
	if call.Args == nil {
		call.Args = []clarity.Arg{}
	}
	body, err := json.Marshal(call)
	if err != nil {
		return Submission{}, fmt.Errorf("encode call: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/contract-call", bytes.NewReader(body))
	if err != nil {
		return Submission{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return Submission{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Submission{}, fmt.Errorf("read response: %w", err)
	}

	var parsed bridgeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil && resp.StatusCode < 400 {
		return Submission{}, fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		reason := parsed.Reason
		if reason == "" {
			reason = http.StatusText(resp.StatusCode)
		}
		return Submission{}, &BridgeError{StatusCode: resp.StatusCode, Reason: reason}
	}

	sub := Submission{ID: uuid.New(), TxID: parsed.TxID}

	b.logger.Info("transaction submitted",
		"function", call.Function,
		"txid", sub.TxID,
		"submission_id", sub.ID,
	)

	return sub, nil
}
