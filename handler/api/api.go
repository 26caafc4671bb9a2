package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tipdao/chat-wallet/handler/bot"
)

// New builds the JSON surface the chat gateway bridge calls with decoded
// user commands. Message delivery flows the other way, through the
// gateway's own callback endpoint.
func New(coordinator *bot.Coordinator, logger *slog.Logger) *Server {
	return &Server{
		coordinator: coordinator,
		logger:      logger.With("server", "api"),
	}
}

type Server struct {
	coordinator *bot.Coordinator
	logger      *slog.Logger
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/commands", s.handleCommand)
	return r
}

type commandRequest struct {
	UserID  string   `json:"user_id"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.Command == "" {
		http.Error(w, "user_id and command are required", http.StatusBadRequest)
		return
	}

	reply := s.coordinator.Handle(r.Context(), req.UserID, bot.Command(req.Command), req.Args)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		s.logger.Error("encode reply", "user", req.UserID, "err", err)
	}
}
