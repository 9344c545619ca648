package service

// Directed is one outbound envelope addressed to a specific player
// connection. The transport marshals Message and delivers it.
type Directed struct {
	To      string
	Message interface{}
}

// Player is the registry record for a connection that has joined.
type Player struct {
	ID      string
	Name    string
	MatchID string // empty while queued or after the match ended
	Seat    int
}

// Stats is a point-in-time snapshot of lobby occupancy.
type Stats struct {
	Players       int `json:"players"`
	Waiting       int `json:"waiting"`
	ActiveMatches int `json:"active_matches"`
}

// MatchSummary describes one active match for the observability API.
type MatchSummary struct {
	ID          string   `json:"id"`
	Players     []string `json:"players"`
	Status      string   `json:"status"`
	CurrentTurn int      `json:"current_turn"`
}
