// Package api provides the HTTP surface of the battleship server.
//
// Gameplay is WebSocket-only; the REST routes are a read-only
// observability surface:
//
//	GET /healthz        liveness probe
//	GET /api/stats      lobby occupancy and connection counts
//	GET /api/matches    summaries of the active matches
//	GET /api/rules      names of the available rules configurations
//
// The /ws route mounts the WebSocket hub. Routing uses gorilla/mux and all
// responses are JSON.
package api
