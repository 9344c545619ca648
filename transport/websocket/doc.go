// Package websocket provides the WebSocket transport for the battleship
// server.
//
// The package uses a hub model: the Hub tracks one Client per live
// connection, keyed by a connection-scoped player ID assigned at upgrade
// time. Each client runs a read pump and a write pump goroutine.
//
// Message Flow:
//
// The read pump feeds every inbound frame, in order, to the lobby's
// Dispatch and delivers whatever directed envelopes come back. A read
// error (close frame, network drop, missed pongs) funnels into the same
// teardown path: the client is dropped from the hub and the lobby's
// Disconnect output is delivered to the surviving party.
//
// Sends are fire-and-forget through a buffered channel per client; a
// client that cannot keep up is dropped rather than allowed to block the
// rest of the server.
//
// Usage:
//
//	hub := websocket.NewHub(lobby)
//	router.HandleFunc("/ws", hub.ServeWS)
package websocket
