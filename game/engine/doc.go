// Package engine provides the core match logic for the battleship server.
//
// The engine package implements the game rules including:
//   - Fleet placement validation (inventory, bounds, overlap, contiguity)
//   - The per-match state machine (setup, in_progress, finished)
//   - Turn arbitration and shot bookkeeping
//   - Win and forfeit detection
//
// Core Types:
//
// Match is the state machine for one two-player game. Fleet and Ship
// describe a player's placement, Cell a zero-based board coordinate.
// Rules captures the board size and required ship inventory; DefaultRules
// returns the classic 10x10 five-ship configuration.
//
// Usage:
//
//	m := engine.NewMatch(id, engine.DefaultRules(), "alice", "bob")
//
//	started, err := m.SubmitFleet(0, fleetA)
//	if err != nil {
//		// placement rejected, match stays in setup
//	}
//
//	if err := m.Fire(0, engine.Cell{Row: 3, Col: 4}); err == nil {
//		// relay the shot to the defender
//	}
//
// Trust Model:
//
// The engine validates placements server-side but does not mirror board
// state for hit detection: the defending client reports each shot's
// outcome, and the engine records which ship kinds the defender has
// reported sunk. A match finishes when every kind in the rules inventory
// has been reported sunk, or when a player forfeits.
//
// All Match methods are pure of I/O and not safe for concurrent use; the
// owning coordinator serializes access.
package engine
