// Package services implements the mutation API: every operation is a
// read-modify-write over one or more entity-store collections, expressed
// so that it is idempotent under retry and preserves the relationship
// invariants (member/pending disjointness, symmetric friendship edges,
// chronological message ordering).
//
// Violated preconditions resolve as silent no-ops, not errors: callers
// re-check resulting state instead of catching exceptions. Errors are
// returned only for storage failures. Identity is trusted as given — the
// excluded auth collaborator vets the caller before any mutation runs.
package services
