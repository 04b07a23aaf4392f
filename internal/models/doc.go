// Package models defines the core domain models for Chitwiser.
//
// # Aggregates
//
//   - Group: a chit group and its embedded Member list. All membership and
//     month/status changes go through Group methods, which enforce the
//     capacity and lifecycle invariants against an explicit transition table.
//   - BiddingRound: the auction held once per group-month, with its own
//     transition table (PENDING -> OPEN -> CLOSED -> FINALIZED).
//
// # Ledger facts
//
//   - Transaction: an append-only money movement (contribution or payout).
//   - Bid: one member's offer in a round, overwritable while the round is open.
//
// # Identity
//
//   - User: a member, employee or admin account with an approval status.
//
// # Design Principles
//
// 1. **Money is decimal**: amounts use shopspring/decimal, never float64
// 2. **Reference by ID**: transactions, rounds and bids reference groups and users by ID strings
// 3. **Embedded members**: members belong to their group and are not separately addressable
// 4. **Versioned aggregates**: Group and BiddingRound carry a Version for optimistic updates
package models
