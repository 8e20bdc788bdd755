// Package engine implements transactional history rewriting.
//
// It is the core of chisel, responsible for:
//   - Resolving the contiguous range of commits a rewrite must replay
//   - Running squash, drop, and move as checkpoint-protected transactions
//   - Rolling the branch back to its original tip on any failure
//
// Every transaction moves through the same states: validate, checkpoint,
// detach, replay, reattach. The branch ref is only touched in the reattach
// step, so an observer always sees either the fully rewritten history or
// the untouched original.
//
// The engine talks to the repository exclusively through the Backend
// interface, which allows tests to run against an in-memory commit DAG
// instead of a real repository.
package engine
