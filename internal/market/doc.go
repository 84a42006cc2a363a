// Package market implements the marketplace domain: item discovery by
// sequential on-chain id, seller balance reads, and transaction
// submission for list/buy/harvest.
//
// Conventions:
//   - Amounts: integer µSTX (1 STX = 1,000,000 µSTX)
//   - Item ids: ledger-assigned, monotonically increasing, never reused
//   - Absence of an id means the item was never created
package market
