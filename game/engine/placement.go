package engine

import (
	"errors"
	"fmt"
	"sort"
)

// Placement rejection categories. Validation errors wrap one of these so
// callers can report the reason class without parsing messages.
var (
	ErrFleetComposition = errors.New("fleet composition does not match inventory")
	ErrShipLength       = errors.New("ship length does not match its kind")
	ErrOutOfBounds      = errors.New("ship cell out of bounds")
	ErrOverlap          = errors.New("ships overlap")
	ErrNotContiguous    = errors.New("ship cells are not a straight contiguous run")
)

// ValidateFleet decides whether a claimed fleet is legal under the rules.
// It checks, in order: the multiset of ship kinds against the inventory,
// each ship's length and bounds, cell overlap across the whole fleet, and
// finally that every ship is a straight run of consecutive cells. It is a
// pure function of the submitted data and never consults the opponent.
func ValidateFleet(rules *Rules, fleet Fleet) error {
	if err := validateComposition(rules, fleet); err != nil {
		return err
	}

	for _, ship := range fleet {
		want := rules.LengthOf(ship.Kind)
		if len(ship.Cells) != want {
			return fmt.Errorf("%w: %s must occupy %d cells, got %d", ErrShipLength, ship.Kind, want, len(ship.Cells))
		}
		for _, cell := range ship.Cells {
			if !rules.InBounds(cell) {
				return fmt.Errorf("%w: %s cell [%d,%d] outside 0..%d range",
					ErrOutOfBounds, ship.Kind, cell.Row, cell.Col, rules.BoardSize-1)
			}
		}
	}

	claimed := make(map[Cell]ShipKind)
	for _, ship := range fleet {
		for _, cell := range ship.Cells {
			if other, taken := claimed[cell]; taken {
				return fmt.Errorf("%w: cell [%d,%d] claimed by both %s and %s",
					ErrOverlap, cell.Row, cell.Col, other, ship.Kind)
			}
			claimed[cell] = ship.Kind
		}
	}

	for _, ship := range fleet {
		if err := validateShape(ship); err != nil {
			return err
		}
	}

	return nil
}

// validateComposition rejects unless the multiset of claimed kinds exactly
// matches the required inventory.
func validateComposition(rules *Rules, fleet Fleet) error {
	counts := make(map[ShipKind]int, len(fleet))
	for _, ship := range fleet {
		counts[ship.Kind]++
	}

	for _, class := range rules.Inventory {
		got := counts[class.Kind]
		if got < class.Count {
			return fmt.Errorf("%w: missing %s (want %d, got %d)", ErrFleetComposition, class.Kind, class.Count, got)
		}
		if got > class.Count {
			return fmt.Errorf("%w: too many %s (want %d, got %d)", ErrFleetComposition, class.Kind, class.Count, got)
		}
		delete(counts, class.Kind)
	}
	for kind := range counts {
		return fmt.Errorf("%w: unknown ship kind %q", ErrFleetComposition, kind)
	}
	return nil
}

// validateShape checks that a ship's cells form one straight horizontal or
// vertical run of consecutive coordinates.
func validateShape(ship Ship) error {
	if len(ship.Cells) <= 1 {
		return nil
	}

	cells := make([]Cell, len(ship.Cells))
	copy(cells, ship.Cells)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})

	horizontal := true
	vertical := true
	for i := 1; i < len(cells); i++ {
		if cells[i].Row != cells[0].Row || cells[i].Col != cells[i-1].Col+1 {
			horizontal = false
		}
		if cells[i].Col != cells[0].Col || cells[i].Row != cells[i-1].Row+1 {
			vertical = false
		}
	}

	// Exactly one orientation must hold; both holding is impossible for
	// length > 1 since the runs diverge after the first cell.
	if !horizontal && !vertical {
		return fmt.Errorf("%w: %s", ErrNotContiguous, ship.Kind)
	}
	return nil
}
