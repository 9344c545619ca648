package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotInSetup      = errors.New("match is not in setup")
	ErrNotInProgress   = errors.New("match is not in progress")
	ErrAlreadyPlaced   = errors.New("fleet already submitted")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrShotPending     = errors.New("previous shot still awaiting result")
	ErrNoShotPending   = errors.New("no shot awaiting result")
	ErrNotDefender     = errors.New("only the defender may report a shot result")
	ErrRepeatTarget    = errors.New("cell already targeted")
	ErrTargetOffBoard  = errors.New("target cell out of bounds")
	ErrShotMismatch    = errors.New("reported coordinates do not match the pending shot")
	ErrBadShotResult   = errors.New("shot result must be hit or miss")
	ErrUnknownShipKind = errors.New("reported sunk ship kind is not in the inventory")
)

// seat holds the per-player half of a match.
type seat struct {
	name  string
	fleet Fleet
	ready bool

	// shots are the cells this seat has fired at; sunk are the kinds of
	// this seat's own ships the seat has reported sunk.
	shots map[Cell]bool
	sunk  map[ShipKind]bool
}

// Match is the state machine for one two-player game. Seat 0 is the player
// who was waiting in the queue and always moves first.
type Match struct {
	id          string
	rules       *Rules
	seats       [2]*seat
	status      MatchStatus
	currentTurn int
	winner      int

	// pendingShot is set between an accepted fire and the defender's
	// fire_result report.
	pendingShot *Cell
}

// Outcome summarizes the state change caused by a reported shot result.
type Outcome struct {
	Result   ShotResult
	ShipSunk ShipKind
	Finished bool
	Winner   int
	NextTurn int
}

// NewMatch creates a match in the setup phase with turn order fixed:
// name0 (the queue waiter) acts first.
func NewMatch(id string, rules *Rules, name0, name1 string) *Match {
	m := &Match{
		id:     id,
		rules:  rules,
		status: StatusSetup,
		winner: -1,
	}
	for i, name := range []string{name0, name1} {
		m.seats[i] = &seat{
			name:  name,
			shots: make(map[Cell]bool),
			sunk:  make(map[ShipKind]bool),
		}
	}
	return m
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Status returns the current lifecycle phase.
func (m *Match) Status() MatchStatus { return m.status }

// CurrentTurn returns the index of the seat allowed to fire.
func (m *Match) CurrentTurn() int { return m.currentTurn }

// Winner returns the winning seat index, or -1 while undecided.
func (m *Match) Winner() int { return m.winner }

// PlayerName returns the display name of the given seat.
func (m *Match) PlayerName(index int) string { return m.seats[index].name }

// Fleet returns the validated fleet of the given seat, or nil during setup.
func (m *Match) Fleet(index int) Fleet { return m.seats[index].fleet }

// SubmitFleet validates and stores one player's placement. It reports
// started=true when this submission completes setup and the match moves to
// in_progress. A rejected placement leaves the match untouched.
func (m *Match) SubmitFleet(index int, fleet Fleet) (started bool, err error) {
	if m.status != StatusSetup {
		return false, ErrNotInSetup
	}
	if m.seats[index].ready {
		return false, ErrAlreadyPlaced
	}
	if err := ValidateFleet(m.rules, fleet); err != nil {
		return false, err
	}

	m.seats[index].fleet = fleet
	m.seats[index].ready = true

	if m.seats[0].ready && m.seats[1].ready {
		m.status = StatusInProgress
		return true, nil
	}
	return false, nil
}

// Fire validates a shot from the given seat. On success the caller relays
// the coordinates to the defender; the turn does not advance until the
// defender reports the outcome via ReportShot.
func (m *Match) Fire(index int, target Cell) error {
	if m.status != StatusInProgress {
		return ErrNotInProgress
	}
	if index != m.currentTurn {
		return ErrNotYourTurn
	}
	if m.pendingShot != nil {
		return ErrShotPending
	}
	if !m.rules.InBounds(target) {
		return fmt.Errorf("%w: [%d,%d]", ErrTargetOffBoard, target.Row, target.Col)
	}
	if m.seats[index].shots[target] {
		return fmt.Errorf("%w: [%d,%d]", ErrRepeatTarget, target.Row, target.Col)
	}

	m.seats[index].shots[target] = true
	m.pendingShot = &target
	return nil
}

// ReportShot accepts the defender's verdict for the pending shot. The
// defender is authoritative for hit/miss; the engine only tracks which of
// the defender's ship kinds have been reported sunk. Sinking the last kind
// in the inventory finishes the match with the shooter as winner; otherwise
// the turn flips to the defender.
func (m *Match) ReportShot(index int, target Cell, result ShotResult, shipSunk ShipKind) (*Outcome, error) {
	if m.status != StatusInProgress {
		return nil, ErrNotInProgress
	}
	defender := 1 - m.currentTurn
	if index != defender {
		return nil, ErrNotDefender
	}
	if m.pendingShot == nil {
		return nil, ErrNoShotPending
	}
	if target != *m.pendingShot {
		return nil, fmt.Errorf("%w: got [%d,%d], pending [%d,%d]",
			ErrShotMismatch, target.Row, target.Col, m.pendingShot.Row, m.pendingShot.Col)
	}
	if result != ResultHit && result != ResultMiss {
		return nil, fmt.Errorf("%w: %q", ErrBadShotResult, result)
	}
	if shipSunk != "" && m.rules.LengthOf(shipSunk) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShipKind, shipSunk)
	}

	m.pendingShot = nil
	outcome := &Outcome{Result: result, ShipSunk: shipSunk, Winner: -1}

	if result == ResultHit && shipSunk != "" {
		m.seats[defender].sunk[shipSunk] = true
		if len(m.seats[defender].sunk) == m.rules.KindCount() {
			m.status = StatusFinished
			m.winner = m.currentTurn
			outcome.Finished = true
			outcome.Winner = m.winner
			return outcome, nil
		}
	}

	m.currentTurn = defender
	outcome.NextTurn = m.currentTurn
	return outcome, nil
}

// Forfeit ends the match early in favor of the remaining seat, typically
// because the other side disconnected. Safe to call repeatedly; a finished
// match is left as-is.
func (m *Match) Forfeit(leaver int) {
	if m.status == StatusFinished {
		return
	}
	m.status = StatusFinished
	m.winner = 1 - leaver
}
