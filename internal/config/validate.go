package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *ClientConfig) Validate() error {
	if c.Node.URL == "" {
		return errors.New("node.url is required")
	}
	if strings.HasSuffix(c.Node.URL, "/") {
		return errors.New("node.url must not end with a slash")
	}

	if c.Contract.Address == "" {
		return errors.New("contract.address is required")
	}
	if c.Contract.Name == "" {
		return errors.New("contract.name is required")
	}
	switch c.Contract.Network {
	case "testnet", "mainnet", "devnet":
	default:
		return fmt.Errorf("contract.network must be testnet, mainnet or devnet, got %q", c.Contract.Network)
	}

	if c.Scan.Concurrency < 1 {
		return errors.New("scan.concurrency must be >= 1")
	}

	if c.Sync.RefreshDelay < 0 {
		return errors.New("sync.refresh_delay must not be negative")
	}

	return nil
}
