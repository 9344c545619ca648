package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"battleship-server/game/config"
	"battleship-server/game/service"
	"battleship-server/transport/websocket"
)

// Server is the HTTP server combining the REST surface and the WebSocket
// mount.
type Server struct {
	lobby   *service.Lobby
	hub     *websocket.Hub
	configs *config.Manager
	router  *mux.Router
}

// NewServer creates an API server over the given lobby, hub and config
// manager.
func NewServer(lobby *service.Lobby, hub *websocket.Hub, configs *config.Manager) *Server {
	s := &Server{
		lobby:   lobby,
		hub:     hub,
		configs: configs,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/rules", s.handleListRules).Methods("GET")

	s.router.HandleFunc("/ws", s.hub.ServeWS)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statsResponse extends lobby stats with transport-level counts.
type statsResponse struct {
	service.Stats
	ConnectedClients int `json:"connected_clients"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, statsResponse{
		Stats:            s.lobby.Stats(),
		ConnectedClients: s.hub.ClientCount(),
	})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches := s.lobby.Matches()
	if matches == nil {
		matches = []service.MatchSummary{}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	names, err := s.configs.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"rules": names})
}
