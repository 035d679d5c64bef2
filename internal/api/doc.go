// Package api provides the typed Kalshi REST client used by the basket engine.
//
// REST endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// Market reads work unauthenticated against the public endpoints. Order
// submission requires credentials; every authenticated request is signed
// immediately before it is sent (see internal/auth).
//
// Reads retry with bounded exponential backoff. Order submission is never
// retried: the venue does not guarantee idempotency, so a retry could
// double-fill. Callers that want a retry must issue one explicitly.
package api
