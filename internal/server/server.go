// Package server exposes the webhook and command-dispatch HTTP surface.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"solana-tx-relay/internal/command"
	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/observability"
	"solana-tx-relay/internal/processor"
)

// Body status values. The webhook contract is always HTTP 200; these are
// diagnostics for humans, no caller branches on them.
const (
	statusOK        = "ok"
	statusIgnored   = "ignored"
	statusBadFormat = "bad format"
)

// Server handles inbound webhook and chat-update requests.
type Server struct {
	processor *processor.Processor
	commands  *command.Handler
	chatID    string // default notification destination
	logger    *log.Logger

	mu              sync.Mutex
	startedAt       time.Time
	batchesReceived int
	eventsReceived  int
	commandsHandled int
}

// New creates a Server.
func New(proc *processor.Processor, commands *command.Handler, chatID string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)
	}
	return &Server{
		processor: proc,
		commands:  commands,
		chatID:    chatID,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Routes returns the HTTP mux for the relay.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleWebhook)
	mux.HandleFunc("/telegram", s.handleTelegramUpdate)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", s.handleStatus)

	return mux
}

// webhookBody is the inbound event batch envelope.
type webhookBody struct {
	Transactions *[]domain.TransactionEvent `json:"transactions"`
}

// handleWebhook accepts a transaction batch and processes it synchronously.
// Per-item failures are swallowed inside the processor; the sender always
// gets 200 so it never retries aggressively.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeStatus(w, statusIgnored)
		return
	}

	var body webhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Transactions == nil {
		s.logger.Printf("bad webhook body: %v", err)
		writeStatus(w, statusBadFormat)
		return
	}

	events := *body.Transactions
	s.processor.Process(r.Context(), events, s.chatID)

	s.mu.Lock()
	s.batchesReceived++
	s.eventsReceived += len(events)
	s.mu.Unlock()

	writeStatus(w, statusOK)
}

// telegramUpdate is the chat-platform update envelope.
type telegramUpdate struct {
	Message *struct {
		Text string `json:"text"`
		Chat *struct {
			ID json.Number `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// handleTelegramUpdate dispatches a chat message to the command handler.
// Always 200; the body tells an operator whether the text was a command.
func (s *Server) handleTelegramUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeStatus(w, statusIgnored)
		return
	}

	var update telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil || update.Message == nil || update.Message.Text == "" {
		writeStatus(w, statusBadFormat)
		return
	}

	chatID := s.chatID
	if update.Message.Chat != nil && update.Message.Chat.ID.String() != "" {
		chatID = update.Message.Chat.ID.String()
	}

	outcome := s.commands.Handle(r.Context(), chatID, update.Message.Text)
	if outcome == command.OutcomeHandled {
		s.mu.Lock()
		s.commandsHandled++
		s.mu.Unlock()
	}

	writeStatus(w, string(outcome))
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status          string `json:"status"`
	Uptime          string `json:"uptime"`
	BatchesReceived int    `json:"batches_received"`
	EventsReceived  int    `json:"events_received"`
	CommandsHandled int    `json:"commands_handled"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatusResponse{
		Status:          "running",
		Uptime:          time.Since(s.startedAt).String(),
		BatchesReceived: s.batchesReceived,
		EventsReceived:  s.eventsReceived,
		CommandsHandled: s.commandsHandled,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeStatus writes the trivial acknowledgment body.
func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
