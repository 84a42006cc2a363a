// Package wallet provides the identity provider and the write RPC path.
//
// Identity tracks the currently connected principal and notifies
// listeners on connect/disconnect. Broadcaster hands signed contract
// calls to a wallet bridge, which returns as soon as the transaction is
// accepted for broadcast. Confirmation is asynchronous and never awaited.
package wallet
