// Package candidate validates untrusted basket proposals against the
// venue's live market universe.
//
// Proposals arrive from sources that cannot be trusted to emit real
// tickers, canonical direction tokens or sane weights (LLM output,
// search results, user paste). Validation never rejects a proposal
// whole: bad legs are dropped or coerced and the cleanup is reported,
// so the caller can show what changed.
//
// The Registry keeps a membership Set of tradeable tickers fresh in the
// background for long-lived embedders; one-shot callers can build a Set
// directly from a gateway listing.
package candidate
