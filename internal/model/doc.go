// Package model defines shared domain types for thematic baskets.
//
// Conventions:
//   - Wire prices: integer cents (a tradeable quote is 1-99)
//   - Dollar amounts: shopspring/decimal, never float64
//   - Weights: relative, non-negative; normalized at allocation time
package model
