// Package chain provides the read-only RPC client for the marketplace
// contract.
//
// Endpoints (Stacks node API):
//   - POST /v2/contracts/call-read/{address}/{name}/{function}
//
// The contract reference (network, address, name) is fixed configuration;
// nothing is discovered at runtime. Reads are idempotent and carry no
// side effects. Failed calls are never retried here: the operator retries
// through an explicit refresh.
package chain
