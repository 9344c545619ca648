package wire

import (
	"encoding/json"
	"errors"
	"testing"

	"battleship-server/game/engine"
)

func TestDecode_JoinGame(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"join_game","playerName":"alice"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	join, ok := msg.(*JoinGame)
	if !ok {
		t.Fatalf("Expected *JoinGame, got %T", msg)
	}
	if join.PlayerName != "alice" {
		t.Errorf("Expected player name alice, got %q", join.PlayerName)
	}
}

func TestDecode_SetupComplete(t *testing.T) {
	raw := []byte(`{"type":"setup_complete","ships":[{"type":"destroyer","positions":[[0,0],[0,1]]}]}`)
	msg, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	setup, ok := msg.(*SetupComplete)
	if !ok {
		t.Fatalf("Expected *SetupComplete, got %T", msg)
	}
	if len(setup.Ships) != 1 {
		t.Fatalf("Expected 1 ship, got %d", len(setup.Ships))
	}
	ship := setup.Ships[0]
	if ship.Kind != engine.Destroyer {
		t.Errorf("Expected destroyer, got %q", ship.Kind)
	}
	want := []engine.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	for i, cell := range ship.Cells {
		if cell != want[i] {
			t.Errorf("Expected cell %v, got %v", want[i], cell)
		}
	}
}

func TestDecode_FireAndResult(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"fire","coordinates":[4,6]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	fire := msg.(*Fire)
	if fire.Coordinates != (engine.Cell{Row: 4, Col: 6}) {
		t.Errorf("Unexpected coordinates %v", fire.Coordinates)
	}

	msg, err = Decode([]byte(`{"type":"fire_result","coordinates":[4,6],"result":"hit","shipSunk":"cruiser"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	result := msg.(*FireResult)
	if result.Result != "hit" || result.ShipSunk != "cruiser" {
		t.Errorf("Unexpected result %+v", result)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte(`{"type":"warp_drive"}`)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected %v, got %v", ErrUnknownType, err)
	}
	if _, err := Decode([]byte(`not json`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected %v, got %v", ErrMalformed, err)
	}
	// Valid discriminant but payload of the wrong shape.
	if _, err := Decode([]byte(`{"type":"fire","coordinates":"b4"}`)); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected %v, got %v", ErrMalformed, err)
	}
}

func TestOutboundConstructors(t *testing.T) {
	start := NewGameStart("g1", "bob", true)
	if start.Type != TypeGameStart || start.TurnOrder != "first" {
		t.Errorf("Unexpected game_start %+v", start)
	}
	if NewGameStart("g1", "alice", false).TurnOrder != "second" {
		t.Error("Expected second turn order")
	}

	data, err := json.Marshal(NewShotResult(engine.Cell{Row: 1, Col: 2}, engine.ResultMiss, ""))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	// A miss carries no shipSunk field at all.
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := fields["shipSunk"]; present {
		t.Error("Expected shipSunk to be omitted for a miss")
	}
	if fields["type"] != TypeShotResult {
		t.Errorf("Expected type %q, got %v", TypeShotResult, fields["type"])
	}
}
