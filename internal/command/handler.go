// Package command parses chat-originated label commands and mutates the
// label store.
package command

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"solana-tx-relay/internal/observability"
	"solana-tx-relay/internal/storage"
	"solana-tx-relay/internal/telegram"
)

// Recognized command prefixes (case-sensitive).
const (
	cmdSetLabel    = "/setlabel"
	cmdRemoveLabel = "/removelabel"
	cmdListLabels  = "/listlabels"
)

// Outcome describes what a Handle call did, for HTTP diagnostics only.
type Outcome string

const (
	// OutcomeHandled means the text matched a command and a reply was sent.
	OutcomeHandled Outcome = "ok"
	// OutcomeIgnored means the text was not a recognized command.
	OutcomeIgnored Outcome = "ignored"
)

// Handler executes label commands. Each command is one atomic
// read-modify-reply sequence: the store mutation (and its persist) completes
// or fails before the reply goes out.
type Handler struct {
	labels   storage.LabelStore
	notifier telegram.Notifier
	logger   *log.Logger
}

// NewHandler creates a Handler.
func NewHandler(labels storage.LabelStore, notifier telegram.Notifier, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(os.Stdout, "[command] ", log.LstdFlags|log.Lshortfile)
	}
	return &Handler{labels: labels, notifier: notifier, logger: logger}
}

// Handle dispatches one chat message. Text not matching a recognized command
// prefix is silently ignored; that is normal chat traffic, not an error.
func (h *Handler) Handle(ctx context.Context, chatID, text string) Outcome {
	switch {
	case text == cmdSetLabel || strings.HasPrefix(text, cmdSetLabel+" "):
		h.handleSetLabel(ctx, chatID, text)
	case text == cmdRemoveLabel || strings.HasPrefix(text, cmdRemoveLabel+" "):
		h.handleRemoveLabel(ctx, chatID, text)
	case text == cmdListLabels:
		h.handleListLabels(ctx, chatID)
	default:
		return OutcomeIgnored
	}
	return OutcomeHandled
}

func (h *Handler) handleSetLabel(ctx context.Context, chatID, text string) {
	parts := strings.SplitN(text, " ", 3)
	if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		observability.RecordCommand(cmdSetLabel, "usage")
		h.reply(ctx, chatID, "Usage: /setlabel <wallet> <label>")
		return
	}
	wallet, label := parts[1], parts[2]

	if err := h.labels.Set(ctx, wallet, label); err != nil {
		observability.RecordCommand(cmdSetLabel, "error")
		h.logger.Printf("set label for %q: %v", wallet, err)
		h.reply(ctx, chatID, "Failed to save label, nothing was changed.")
		return
	}

	observability.RecordCommand(cmdSetLabel, "ok")
	h.reply(ctx, chatID, fmt.Sprintf("Label set: %s → %s", wallet, label))
}

func (h *Handler) handleRemoveLabel(ctx context.Context, chatID, text string) {
	parts := strings.SplitN(text, " ", 3)
	if len(parts) != 2 || parts[1] == "" {
		observability.RecordCommand(cmdRemoveLabel, "usage")
		h.reply(ctx, chatID, "Usage: /removelabel <wallet>")
		return
	}
	wallet := parts[1]

	removed, err := h.labels.Remove(ctx, wallet)
	if err != nil {
		observability.RecordCommand(cmdRemoveLabel, "error")
		h.logger.Printf("remove label for %q: %v", wallet, err)
		h.reply(ctx, chatID, "Failed to remove label, nothing was changed.")
		return
	}
	if !removed {
		observability.RecordCommand(cmdRemoveLabel, "not_found")
		h.reply(ctx, chatID, fmt.Sprintf("No label found for %s", wallet))
		return
	}

	observability.RecordCommand(cmdRemoveLabel, "ok")
	h.reply(ctx, chatID, fmt.Sprintf("Label removed for %s", wallet))
}

func (h *Handler) handleListLabels(ctx context.Context, chatID string) {
	entries, err := h.labels.List(ctx)
	if err != nil {
		observability.RecordCommand(cmdListLabels, "error")
		h.logger.Printf("list labels: %v", err)
		h.reply(ctx, chatID, "Failed to list labels.")
		return
	}

	observability.RecordCommand(cmdListLabels, "ok")
	if len(entries) == 0 {
		h.reply(ctx, chatID, "No labels set.")
		return
	}

	var b strings.Builder
	b.WriteString("Wallet labels:\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s — %s\n", e.Wallet, e.Label)
	}
	h.reply(ctx, chatID, strings.TrimRight(b.String(), "\n"))
}

// reply sends a command response. Delivery failures are logged only; the
// mutation already happened and the webhook caller never sees transport
// errors.
func (h *Handler) reply(ctx context.Context, chatID, text string) {
	if err := h.notifier.Notify(ctx, chatID, text); err != nil {
		h.logger.Printf("send reply: %v", err)
	}
}
