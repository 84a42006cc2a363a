// Package syncer implements the Synchronization Controller.
//
// The controller owns the client's view of the marketplace (item list,
// own balance) and reconciles it against the ledger:
//   - loads both resources on start and on identity connect
//   - supersedes in-flight fetches on explicit refresh; a stale fetch
//     completing late is discarded, the latest completed fetch wins
//   - after a transaction submission, schedules one deferred refetch to
//     give confirmation a fair chance to land (a heuristic, not a receipt)
//   - zeroes the balance immediately on disconnect; the item list is not
//     identity-scoped and stays as last known
//
// View state is published atomically on fetch completion and exposed
// read-only. Nothing here retries automatically: retrying is the
// operator's explicit refresh.
package syncer
