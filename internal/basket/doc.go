// Package basket implements the basket construction and execution engine.
//
// A basket is a weighted set of market legs traded against a single
// budget. Preview computes per-leg allocations from live quotes without
// side effects; Execute submits the allocation as one batched order.
//
// The engine is stateless: every call re-validates its spec and fetches
// quotes fresh. Quotes are never cached across calls — stale prices
// directly cause budget violations.
package basket
