// Package config loads client configuration from YAML with environment
// variable expansion, defaults, and validation.
package config

import "time"

// ClientConfig is the root configuration for the marketplace client.
type ClientConfig struct {
	Node     NodeConfig     `yaml:"node"`
	Wallet   WalletConfig   `yaml:"wallet"`
	Contract ContractConfig `yaml:"contract"`
	Scan     ScanConfig     `yaml:"scan"`
	Sync     SyncConfig     `yaml:"sync"`
}

// NodeConfig holds the Stacks node API settings for read-only calls.
type NodeConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// WalletConfig holds the wallet bridge settings for write calls.
type WalletConfig struct {
	BridgeURL string        `yaml:"bridge_url"`
	Sender    string        `yaml:"sender"` // principal to connect on start, optional
	Timeout   time.Duration `yaml:"timeout"`
}

// ContractConfig pins the marketplace contract. The contract reference
// is fixed configuration, never discovered at runtime.
type ContractConfig struct {
	Network string `yaml:"network"`
	Address string `yaml:"address"`
	Name    string `yaml:"name"`
}

// ScanConfig holds item scan settings.
type ScanConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// SyncConfig holds synchronization controller settings.
type SyncConfig struct {
	RefreshDelay time.Duration `yaml:"refresh_delay"`
}
