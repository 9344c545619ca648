package engine

import (
	"encoding/json"
	"fmt"
)

// ShipKind identifies one of the placeable ship classes.
type ShipKind string

const (
	Carrier    ShipKind = "carrier"
	Battleship ShipKind = "battleship"
	Cruiser    ShipKind = "cruiser"
	Submarine  ShipKind = "submarine"
	Destroyer  ShipKind = "destroyer"

	// Validation constants
	MinBoardSize = 5
	MaxBoardSize = 26
)

// MatchStatus represents the lifecycle phase of a match.
type MatchStatus string

const (
	StatusSetup      MatchStatus = "setup"
	StatusInProgress MatchStatus = "in_progress"
	StatusFinished   MatchStatus = "finished"
)

// ShotResult is the defender-reported outcome of a shot.
type ShotResult string

const (
	ResultHit  ShotResult = "hit"
	ResultMiss ShotResult = "miss"
)

// Cell is a zero-based board coordinate. On the wire it is encoded as a
// two-element [row,col] array.
type Cell struct {
	Row int
	Col int
}

// MarshalJSON encodes the cell as [row,col].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row,col] pair, rejecting anything that is not
// exactly two integers.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinates must be a [row,col] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates must have exactly 2 elements, got %d", len(pair))
	}
	c.Row = pair[0]
	c.Col = pair[1]
	return nil
}

// Ship is one placed vessel: its kind plus the ordered cells it occupies.
type Ship struct {
	Kind  ShipKind `json:"type"`
	Cells []Cell   `json:"positions"`
}

// Fleet is a player's complete claimed placement.
type Fleet []Ship

// ShipClass describes one required entry of the fleet inventory.
type ShipClass struct {
	Kind   ShipKind `json:"kind"`
	Length int      `json:"length"`
	Count  int      `json:"count"`
}

// Rules captures the board dimensions and the ship inventory every fleet
// must match exactly.
type Rules struct {
	Name      string      `json:"name"`
	BoardSize int         `json:"board_size"`
	Inventory []ShipClass `json:"inventory"`
}

// DefaultRules returns the classic battleship configuration: a 10x10 board
// with carrier(5), battleship(4), cruiser(3), submarine(3) and destroyer(2).
func DefaultRules() *Rules {
	return &Rules{
		Name:      "classic",
		BoardSize: 10,
		Inventory: []ShipClass{
			{Kind: Carrier, Length: 5, Count: 1},
			{Kind: Battleship, Length: 4, Count: 1},
			{Kind: Cruiser, Length: 3, Count: 1},
			{Kind: Submarine, Length: 3, Count: 1},
			{Kind: Destroyer, Length: 2, Count: 1},
		},
	}
}

// ValidateRules checks a rules configuration for correctness and playability.
func ValidateRules(rules *Rules) error {
	if rules == nil {
		return fmt.Errorf("rules validation: rules are required")
	}
	if rules.Name == "" {
		return fmt.Errorf("rules validation: name is required")
	}
	if rules.BoardSize < MinBoardSize || rules.BoardSize > MaxBoardSize {
		return fmt.Errorf("rules validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, rules.BoardSize)
	}
	if len(rules.Inventory) == 0 {
		return fmt.Errorf("rules validation: inventory must list at least one ship class")
	}
	seen := make(map[ShipKind]bool, len(rules.Inventory))
	for _, class := range rules.Inventory {
		if class.Kind == "" {
			return fmt.Errorf("rules validation: ship class kind is required")
		}
		if seen[class.Kind] {
			return fmt.Errorf("rules validation: duplicate ship class %q", class.Kind)
		}
		seen[class.Kind] = true
		if class.Length < 1 || class.Length > rules.BoardSize {
			return fmt.Errorf("rules validation: ship %q length must be between 1 and board_size (%d), got %d",
				class.Kind, rules.BoardSize, class.Length)
		}
		if class.Count < 1 {
			return fmt.Errorf("rules validation: ship %q count must be positive, got %d", class.Kind, class.Count)
		}
	}
	return nil
}

// ShipCount returns the total number of ships a valid fleet must contain.
func (r *Rules) ShipCount() int {
	total := 0
	for _, class := range r.Inventory {
		total += class.Count
	}
	return total
}

// KindCount returns how many distinct ship kinds the inventory requires.
func (r *Rules) KindCount() int {
	return len(r.Inventory)
}

// LengthOf returns the required length for a kind, or 0 if the kind is not
// part of the inventory.
func (r *Rules) LengthOf(kind ShipKind) int {
	for _, class := range r.Inventory {
		if class.Kind == kind {
			return class.Length
		}
	}
	return 0
}

// InBounds reports whether the cell lies on the board.
func (r *Rules) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < r.BoardSize && c.Col >= 0 && c.Col < r.BoardSize
}
