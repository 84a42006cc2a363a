package chain

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stxfarm/farm-market/internal/clarity"
)

var testContract = ContractRef{
	Network: "testnet",
	Address: "STGDS0Y17973EN5TCHNHGJJ9B31XWQ5YXBQ0KQ2Y",
	Name:    "satoshi-farm",
}

func TestNewClient(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewClient("https://node.example.com", testContract)

		if c.baseURL != "https://node.example.com" {
			t.Errorf("baseURL = %q, want %q", c.baseURL, "https://node.example.com")
		}
		if c.httpClient.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
		}
		if c.logger == nil {
			t.Error("logger should not be nil")
		}
	})

	t.Run("with timeout option", func(t *testing.T) {
		c := NewClient("https://node.example.com", testContract, WithTimeout(5*time.Second))
		if c.httpClient.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, 5*time.Second)
		}
	})

	t.Run("with logger option", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		c := NewClient("https://node.example.com", testContract, WithLogger(logger))
		if c.logger != logger {
			t.Error("logger not set correctly")
		}
	})
}

func TestContractRefString(t *testing.T) {
	want := "STGDS0Y17973EN5TCHNHGJJ9B31XWQ5YXBQ0KQ2Y.satoshi-farm"
	if got := testContract.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCallReadOnly(t *testing.T) {
	t.Run("successful call", func(t *testing.T) {
		var gotPath string
		var gotBody callReadRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request body: %v", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"okay":true,"result":{"type":"uint","value":"4"}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, testContract)
		raw, err := c.CallReadOnly(context.Background(), "get-next-item-id", nil, testContract.Address)
		if err != nil {
			t.Fatalf("CallReadOnly failed: %v", err)
		}

		wantPath := "/v2/contracts/call-read/STGDS0Y17973EN5TCHNHGJJ9B31XWQ5YXBQ0KQ2Y/satoshi-farm/get-next-item-id"
		if gotPath != wantPath {
			t.Errorf("path = %q, want %q", gotPath, wantPath)
		}
		if gotBody.Sender != testContract.Address {
			t.Errorf("sender = %q, want %q", gotBody.Sender, testContract.Address)
		}
		if gotBody.Arguments == nil {
			t.Error("arguments should be an empty array, not null")
		}
		if got := clarity.AsUint(raw); got != 4 {
			t.Errorf("decoded result = %d, want 4", got)
		}
	})

	t.Run("arguments forwarded", func(t *testing.T) {
		var gotBody callReadRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(`{"okay":true,"result":{"type":"none"}}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, testContract)
		args := []clarity.Arg{clarity.UintArg(3)}
		if _, err := c.CallReadOnly(context.Background(), "get-item", args, "ST1SENDER"); err != nil {
			t.Fatalf("CallReadOnly failed: %v", err)
		}

		if len(gotBody.Arguments) != 1 {
			t.Fatalf("arguments len = %d, want 1", len(gotBody.Arguments))
		}
		if gotBody.Arguments[0].Type != "uint" || gotBody.Arguments[0].Value != "3" {
			t.Errorf("argument = %+v, want uint 3", gotBody.Arguments[0])
		}
	})

	t.Run("node error surfaces as RPCError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewClient(server.URL, testContract)
		_, err := c.CallReadOnly(context.Background(), "get-item", nil, "ST1SENDER")

		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			t.Fatalf("error = %v, want *RPCError", err)
		}
		if rpcErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("StatusCode = %d, want %d", rpcErr.StatusCode, http.StatusInternalServerError)
		}
	})

	t.Run("rejected call surfaces cause", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"okay":false,"cause":"Unchecked(NoSuchContract)"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, testContract)
		_, err := c.CallReadOnly(context.Background(), "get-item", nil, "ST1SENDER")

		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			t.Fatalf("error = %v, want *RPCError", err)
		}
		if rpcErr.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0 for contract-level rejection", rpcErr.StatusCode)
		}
	})

	t.Run("context cancellation propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewClient(server.URL, testContract)
		if _, err := c.CallReadOnly(ctx, "get-item", nil, "ST1SENDER"); err == nil {
			t.Error("expected error from cancelled context")
		}
	})
}
