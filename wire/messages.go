package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"battleship-server/game/engine"
)

// Client-to-server message types.
const (
	TypeJoinGame      = "join_game"
	TypeSetupComplete = "setup_complete"
	TypeFire          = "fire"
	TypeFireResult    = "fire_result"
)

// Server-to-client message types.
const (
	TypeGameStart    = "game_start"
	TypeOpponentFire = "opponent_fire"
	TypeShotResult   = "shot_result"
	TypeTurnChange   = "turn_change"
	TypeGameEnd      = "game_end"
	TypeError        = "error"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// JoinGame enters the player into matchmaking under a display name.
type JoinGame struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName"`
}

// SetupComplete submits the player's claimed fleet for validation.
type SetupComplete struct {
	Type  string        `json:"type"`
	Ships []engine.Ship `json:"ships"`
}

// Fire requests a shot at the opponent's board.
type Fire struct {
	Type        string      `json:"type"`
	Coordinates engine.Cell `json:"coordinates"`
}

// FireResult is the defender's verdict on the opponent's last shot.
type FireResult struct {
	Type        string      `json:"type"`
	Coordinates engine.Cell `json:"coordinates"`
	Result      string      `json:"result"`
	ShipSunk    string      `json:"shipSunk,omitempty"`
}

// GameStart announces a formed match to one player.
type GameStart struct {
	Type         string `json:"type"`
	GameID       string `json:"gameId"`
	OpponentName string `json:"opponentName"`
	TurnOrder    string `json:"turnOrder"` // "first" or "second"
}

// OpponentFire notifies the defender of an incoming shot.
type OpponentFire struct {
	Type        string      `json:"type"`
	Coordinates engine.Cell `json:"coordinates"`
}

// ShotResult forwards the defender's verdict to the shooter.
type ShotResult struct {
	Type        string      `json:"type"`
	Coordinates engine.Cell `json:"coordinates"`
	Result      string      `json:"result"`
	ShipSunk    string      `json:"shipSunk,omitempty"`
}

// TurnChange tells a player whether it is now their turn.
type TurnChange struct {
	Type       string `json:"type"`
	IsYourTurn bool   `json:"isYourTurn"`
}

// GameEnd announces the match result.
type GameEnd struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
	Reason string `json:"reason,omitempty"`
}

// Error reports a protocol error or rule violation to its sender.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Decode parses an inbound envelope and returns the typed message for its
// discriminant. Unrecognized discriminants yield ErrUnknownType and bodies
// that fail to parse yield ErrMalformed.
func Decode(raw []byte) (interface{}, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var msg interface{}
	switch head.Type {
	case TypeJoinGame:
		msg = &JoinGame{}
	case TypeSetupComplete:
		msg = &SetupComplete{}
	case TypeFire:
		msg = &Fire{}
	case TypeFireResult:
		msg = &FireResult{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, head.Type)
	}

	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return msg, nil
}

// NewGameStart builds a game_start envelope. The waiter (seat 0) is told
// "first", the fresh arrival "second".
func NewGameStart(gameID, opponentName string, movesFirst bool) *GameStart {
	order := "second"
	if movesFirst {
		order = "first"
	}
	return &GameStart{Type: TypeGameStart, GameID: gameID, OpponentName: opponentName, TurnOrder: order}
}

// NewOpponentFire builds an opponent_fire notification.
func NewOpponentFire(target engine.Cell) *OpponentFire {
	return &OpponentFire{Type: TypeOpponentFire, Coordinates: target}
}

// NewShotResult builds a shot_result envelope for the shooter.
func NewShotResult(target engine.Cell, result engine.ShotResult, sunk engine.ShipKind) *ShotResult {
	return &ShotResult{Type: TypeShotResult, Coordinates: target, Result: string(result), ShipSunk: string(sunk)}
}

// NewTurnChange builds a turn_change envelope.
func NewTurnChange(isYourTurn bool) *TurnChange {
	return &TurnChange{Type: TypeTurnChange, IsYourTurn: isYourTurn}
}

// NewGameEnd builds a game_end envelope naming the winner.
func NewGameEnd(winner, reason string) *GameEnd {
	return &GameEnd{Type: TypeGameEnd, Winner: winner, Reason: reason}
}

// NewError builds an error envelope for the offending sender.
func NewError(message string) *Error {
	return &Error{Type: TypeError, Message: message}
}
