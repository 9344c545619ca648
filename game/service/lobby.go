package service

import (
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"battleship-server/game/engine"
	"battleship-server/wire"
)

// table pairs an engine match with the player IDs occupying its seats.
type table struct {
	match   *engine.Match
	players [2]string
}

// Lobby coordinates players, matchmaking and active matches. All state is
// owned by the lobby and guarded by one mutex; handlers run to completion
// under it and return the envelopes to deliver.
type Lobby struct {
	mu      sync.Mutex
	rules   *engine.Rules
	players map[string]*Player
	queue   []string // player IDs, oldest first
	tables  map[string]*table
}

// NewLobby creates an empty lobby playing under the given rules.
func NewLobby(rules *engine.Rules) *Lobby {
	return &Lobby{
		rules:   rules,
		players: make(map[string]*Player),
		tables:  make(map[string]*table),
	}
}

// Dispatch decodes one inbound envelope from the given connection and
// routes it to its handler. Every failure is answered with an error
// envelope to the sender only; match state is never touched by a rejected
// message.
func (l *Lobby) Dispatch(playerID string, raw []byte) []Directed {
	msg, err := wire.Decode(raw)
	if err != nil {
		return []Directed{{To: playerID, Message: wire.NewError(err.Error())}}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch msg := msg.(type) {
	case *wire.JoinGame:
		return l.handleJoin(playerID, msg)
	case *wire.SetupComplete:
		return l.handleSetup(playerID, msg)
	case *wire.Fire:
		return l.handleFire(playerID, msg)
	case *wire.FireResult:
		return l.handleFireResult(playerID, msg)
	}
	// Unreachable: Decode only returns the types above.
	return nil
}

// Disconnect tears down everything owned by a connection: its queue slot,
// its registry entry, and its match, awarding the remaining party the win
// by forfeit. Safe to call for unknown IDs and to call twice.
func (l *Lobby) Disconnect(playerID string) []Directed {
	l.mu.Lock()
	defer l.mu.Unlock()

	player, exists := l.players[playerID]
	if !exists {
		return nil
	}
	delete(l.players, playerID)
	l.dequeue(playerID)

	if player.MatchID == "" {
		log.Printf("Player %s (%s) left the lobby", player.Name, playerID)
		return nil
	}

	tbl, active := l.tables[player.MatchID]
	if !active {
		return nil
	}

	tbl.match.Forfeit(player.Seat)
	delete(l.tables, player.MatchID)

	remainingID := tbl.players[1-player.Seat]
	if remaining, ok := l.players[remainingID]; ok {
		remaining.MatchID = ""
	}

	log.Printf("Match %s ended: %s disconnected", player.MatchID, player.Name)
	return []Directed{{
		To:      remainingID,
		Message: wire.NewGameEnd(tbl.match.PlayerName(1-player.Seat), "opponent_disconnected"),
	}}
}

// Stats returns a snapshot of lobby occupancy.
func (l *Lobby) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		Players:       len(l.players),
		Waiting:       len(l.queue),
		ActiveMatches: len(l.tables),
	}
}

// Matches returns summaries of all active matches.
func (l *Lobby) Matches() []MatchSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]MatchSummary, 0, len(l.tables))
	for id, tbl := range l.tables {
		result = append(result, MatchSummary{
			ID:          id,
			Players:     []string{tbl.match.PlayerName(0), tbl.match.PlayerName(1)},
			Status:      string(tbl.match.Status()),
			CurrentTurn: tbl.match.CurrentTurn(),
		})
	}
	return result
}

// handleJoin registers the connection as a player and either pairs it with
// the oldest waiter or enqueues it. The waiter takes seat 0 and moves
// first.
func (l *Lobby) handleJoin(playerID string, msg *wire.JoinGame) []Directed {
	name := strings.TrimSpace(msg.PlayerName)
	if name == "" {
		return []Directed{{To: playerID, Message: wire.NewError("playerName is required")}}
	}
	player, exists := l.players[playerID]
	if exists {
		// A player whose match has ended may join again for a new one;
		// a queued or playing player may not.
		if player.MatchID != "" || l.queued(playerID) {
			return []Directed{{To: playerID, Message: wire.NewError("already joined")}}
		}
		player.Name = name
	} else {
		player = &Player{ID: playerID, Name: name}
		l.players[playerID] = player
	}

	if len(l.queue) == 0 {
		l.queue = append(l.queue, playerID)
		log.Printf("Player %s (%s) queued for a match", name, playerID)
		return nil
	}

	waiterID := l.queue[0]
	l.queue = l.queue[1:]
	waiter := l.players[waiterID]

	matchID := uuid.NewString()
	match := engine.NewMatch(matchID, l.rules, waiter.Name, player.Name)
	l.tables[matchID] = &table{match: match, players: [2]string{waiterID, playerID}}

	waiter.MatchID, waiter.Seat = matchID, 0
	player.MatchID, player.Seat = matchID, 1

	log.Printf("Match %s created: %s vs %s", matchID, waiter.Name, player.Name)
	return []Directed{
		{To: waiterID, Message: wire.NewGameStart(matchID, player.Name, true)},
		{To: playerID, Message: wire.NewGameStart(matchID, waiter.Name, false)},
	}
}

// handleSetup validates and stores the sender's fleet. When the second
// fleet lands, the match starts and both players get the turn announcement.
func (l *Lobby) handleSetup(playerID string, msg *wire.SetupComplete) []Directed {
	player, tbl, errOut := l.activeTable(playerID)
	if errOut != nil {
		return errOut
	}

	started, err := tbl.match.SubmitFleet(player.Seat, engine.Fleet(msg.Ships))
	if err != nil {
		return []Directed{{To: playerID, Message: wire.NewError(err.Error())}}
	}
	if !started {
		return nil
	}

	log.Printf("Match %s started", player.MatchID)
	return []Directed{
		{To: tbl.players[0], Message: wire.NewTurnChange(true)},
		{To: tbl.players[1], Message: wire.NewTurnChange(false)},
	}
}

// handleFire validates the shot and relays it to the defender.
func (l *Lobby) handleFire(playerID string, msg *wire.Fire) []Directed {
	player, tbl, errOut := l.activeTable(playerID)
	if errOut != nil {
		return errOut
	}

	if err := tbl.match.Fire(player.Seat, msg.Coordinates); err != nil {
		return []Directed{{To: playerID, Message: wire.NewError(err.Error())}}
	}

	defenderID := tbl.players[1-player.Seat]
	return []Directed{{To: defenderID, Message: wire.NewOpponentFire(msg.Coordinates)}}
}

// handleFireResult accepts the defender's verdict, forwards it to the
// shooter, and either finishes the match or flips the turn.
func (l *Lobby) handleFireResult(playerID string, msg *wire.FireResult) []Directed {
	player, tbl, errOut := l.activeTable(playerID)
	if errOut != nil {
		return errOut
	}

	outcome, err := tbl.match.ReportShot(player.Seat, msg.Coordinates,
		engine.ShotResult(msg.Result), engine.ShipKind(msg.ShipSunk))
	if err != nil {
		return []Directed{{To: playerID, Message: wire.NewError(err.Error())}}
	}

	shooterSeat := 1 - player.Seat
	shooterID := tbl.players[shooterSeat]
	out := []Directed{{
		To:      shooterID,
		Message: wire.NewShotResult(msg.Coordinates, outcome.Result, outcome.ShipSunk),
	}}

	if outcome.Finished {
		winner := tbl.match.PlayerName(outcome.Winner)
		log.Printf("Match %s won by %s", player.MatchID, winner)
		out = append(out,
			Directed{To: tbl.players[0], Message: wire.NewGameEnd(winner, "")},
			Directed{To: tbl.players[1], Message: wire.NewGameEnd(winner, "")},
		)
		l.closeTable(player.MatchID, tbl)
		return out
	}

	return append(out,
		Directed{To: tbl.players[0], Message: wire.NewTurnChange(outcome.NextTurn == 0)},
		Directed{To: tbl.players[1], Message: wire.NewTurnChange(outcome.NextTurn == 1)},
	)
}

// activeTable resolves the sender to its registry entry and active match.
// A message that references no joinable state is a protocol error answered
// to the sender only.
func (l *Lobby) activeTable(playerID string) (*Player, *table, []Directed) {
	player, exists := l.players[playerID]
	if !exists {
		return nil, nil, []Directed{{To: playerID, Message: wire.NewError("join_game required first")}}
	}
	if player.MatchID == "" {
		return nil, nil, []Directed{{To: playerID, Message: wire.NewError("no active game")}}
	}
	tbl, active := l.tables[player.MatchID]
	if !active {
		return nil, nil, []Directed{{To: playerID, Message: wire.NewError("no active game")}}
	}
	return player, tbl, nil
}

// closeTable discards a finished match and detaches both players from it.
func (l *Lobby) closeTable(matchID string, tbl *table) {
	delete(l.tables, matchID)
	for _, id := range tbl.players {
		if p, ok := l.players[id]; ok {
			p.MatchID = ""
		}
	}
}

// queued reports whether the player is waiting in the queue.
func (l *Lobby) queued(playerID string) bool {
	for _, id := range l.queue {
		if id == playerID {
			return true
		}
	}
	return false
}

// dequeue removes the player from the wait queue if present.
func (l *Lobby) dequeue(playerID string) {
	for i, id := range l.queue {
		if id == playerID {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
}
