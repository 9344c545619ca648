// Package service implements the lobby coordinator for the battleship
// server.
//
// The Lobby owns the three pieces of shared state the game needs: the
// player registry (one entry per connection that has joined), the FIFO
// matchmaking queue, and the map of active matches. All access goes
// through Lobby methods behind a single mutex, so message handling is
// serialized per the coordinator-ownership model and session teardown is
// idempotent.
//
// Message Flow:
//
// The transport hands Dispatch the raw bytes of each inbound envelope
// together with the sender's connection-scoped player ID. Dispatch decodes
// the envelope, routes it to exactly one handler, and returns the directed
// outbound envelopes the transport should deliver. Disconnect follows the
// same shape for connection teardown. Handlers never send anything
// themselves; they are synchronous functions from one inbound event to a
// list of outbound messages.
//
// Matchmaking pairs the newest arrival with the oldest waiter; the waiter
// takes seat 0 and moves first. Rule violations and protocol errors are
// answered with an error envelope to the offending sender only and never
// mutate match state.
package service
