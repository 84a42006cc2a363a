package chain

import (
	"log/slog"
	"net/http"
	"time"
)

// ContractRef identifies the fixed marketplace contract.
type ContractRef struct {
	Network string // "testnet" or "mainnet"
	Address string // deployer principal
	Name    string // contract name
}

// String returns the canonical "address.name" form.
func (c ContractRef) String() string {
	return c.Address + "." + c.Name
}

// Client provides read-only access to the contract through a node's API.
type Client struct {
	baseURL    string
	contract   ContractRef
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a read-only contract client.
func NewClient(baseURL string, contract ContractRef, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  baseURL,
		contract: contract,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Contract returns the fixed contract reference this client targets.
func (c *Client) Contract() ContractRef {
	return c.contract
}
