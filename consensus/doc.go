// Package consensus implements the single authoring node of a proof-of-work
// ledger. The node is the only writer of its chain: it admits transfers from
// its owner, mines blocks, and applies the chain validity rule to its own
// state.
//
// # Core Components
//
// Node: Serializes every command against the ledger and exposes the command
// surface used by the front end (submit, mine, dump, pending check).
//
// Ledger: Interface for the chain, pending pool and balance engine the node
// drives. ledger.Ledger implements it.
//
// # Consensus Rule
//
// A node trusts its chain only while ledger verification passes. Audit runs
// the verification; the first failure halts the node for the rest of the
// session and every later mutating command returns ErrHalted. A tampered
// chain is never repaired or rolled back.
package consensus
