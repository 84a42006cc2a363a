package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stxfarm/farm-market/internal/clarity"
	"github.com/stxfarm/farm-market/internal/metrics"
)

// RPCError represents a failed call against the node API.
type RPCError struct {
	StatusCode int
	Function   string
	Message    string
	Body       []byte
}

func (e *RPCError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("contract call %s: node error %d: %s", e.Function, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("contract call %s: %s", e.Function, e.Message)
}

// callReadRequest is the body for POST /v2/contracts/call-read.
type callReadRequest struct {
	Sender    string        `json:"sender"`
	Arguments []clarity.Arg `json:"arguments"`
}

// callReadResponse is the node's reply. When Okay is false the call was
// rejected by the contract and Cause carries the reason.
type callReadResponse struct {
	Okay   bool            `json:"okay"`
	Result json.RawMessage `json:"result"`
	Cause  string          `json:"cause"`
}

// CallReadOnly invokes a read-only contract function and returns the raw
// result value. The sender principal is required by the node but has no
// effect on read-only semantics.
func (c *Client) CallReadOnly(ctx context.Context, function string, args []clarity.Arg, sender string) (clarity.Raw, error) {
	metrics.ContractReads.WithLabelValues(function).Inc()

	raw, err := c.callReadOnly(ctx, function, args, sender)
	if err != nil {
		metrics.ContractReadFailures.WithLabelValues(function).Inc()
		return nil, err
	}
	return raw, nil
}

func (c *Client) callReadOnly(ctx context.Context, function string, args []clarity.Arg, sender string) (clarity.Raw, error) {
	if args == nil {
		args = []clarity.Arg{}
	}
	body, err := json.Marshal(callReadRequest{Sender: sender, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/contracts/call-read/%s/%s/%s",
		c.baseURL, c.contract.Address, c.contract.Name, function)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &RPCError{
			StatusCode: resp.StatusCode,
			Function:   function,
			Message:    http.StatusText(resp.StatusCode),
			Body:       respBody,
		}
	}

	var parsed callReadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if !parsed.Okay {
		return nil, &RPCError{
			Function: function,
			Message:  "call rejected: " + parsed.Cause,
			Body:     respBody,
		}
	}

	return clarity.Raw(parsed.Result), nil
}
