// Package config loads and caches battleship rules configurations.
//
// A rules file is a JSON document describing the board size and the ship
// inventory every fleet must match. The manager always carries a
// compiled-in default (the classic 10x10 five-ship game) and can serve
// named variants from a configuration directory.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules := manager.Default()
//	custom, err := manager.Load("small-board")
//
// Loaded rules are validated with engine.ValidateRules and cached; the
// manager is safe for concurrent use.
package config
