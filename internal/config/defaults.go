package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultNodeURL         = "https://api.testnet.hiro.so"
	DefaultNodeTimeout     = 30 * time.Second
	DefaultBridgeURL       = "http://127.0.0.1:8339"
	DefaultBridgeTimeout   = 60 * time.Second
	DefaultContractNetwork = "testnet"
	DefaultContractAddress = "STGDS0Y17973EN5TCHNHGJJ9B31XWQ5YXBQ0KQ2Y"
	DefaultContractName    = "satoshi-farm"
	DefaultScanConcurrency = 8
	DefaultRefreshDelay    = 5 * time.Second
)

func (c *ClientConfig) applyDefaults() {
	if c.Node.URL == "" {
		c.Node.URL = DefaultNodeURL
	}
	if c.Node.Timeout == 0 {
		c.Node.Timeout = DefaultNodeTimeout
	}

	if c.Wallet.BridgeURL == "" {
		c.Wallet.BridgeURL = DefaultBridgeURL
	}
	if c.Wallet.Timeout == 0 {
		c.Wallet.Timeout = DefaultBridgeTimeout
	}

	if c.Contract.Network == "" {
		c.Contract.Network = DefaultContractNetwork
	}
	if c.Contract.Address == "" {
		c.Contract.Address = DefaultContractAddress
	}
	if c.Contract.Name == "" {
		c.Contract.Name = DefaultContractName
	}

	if c.Scan.Concurrency == 0 {
		c.Scan.Concurrency = DefaultScanConcurrency
	}

	if c.Sync.RefreshDelay == 0 {
		c.Sync.RefreshDelay = DefaultRefreshDelay
	}
}
