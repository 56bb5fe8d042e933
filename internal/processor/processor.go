// Package processor drives the notification pipeline:
// filter by threshold, resolve labels and token info, format, deliver.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/market"
	"solana-tx-relay/internal/observability"
	"solana-tx-relay/internal/solana"
	"solana-tx-relay/internal/storage"
	"solana-tx-relay/internal/telegram"
)

// DefaultMinAmount is the default minimum SOL amount for a notification.
const DefaultMinAmount = 0.1

// Options configures a Processor.
type Options struct {
	Labels    storage.LabelStore
	Market    market.Resolver
	Notifier  telegram.Notifier
	Archive   storage.NotificationArchive // optional
	MinAmount float64
	Logger    *log.Logger
}

// Processor turns raw transaction batches into chat notifications. A failure
// on one event is logged and never aborts the rest of the batch; delivery and
// archive failures are swallowed after logging.
type Processor struct {
	labels    storage.LabelStore
	market    market.Resolver
	notifier  telegram.Notifier
	archive   storage.NotificationArchive
	minAmount float64
	logger    *log.Logger
}

// New creates a Processor.
func New(opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[processor] ", log.LstdFlags|log.Lshortfile)
	}
	return &Processor{
		labels:    opts.Labels,
		market:    opts.Market,
		notifier:  opts.Notifier,
		archive:   opts.Archive,
		minAmount: opts.MinAmount,
		logger:    logger,
	}
}

// Process handles one inbound batch in order. Events below the minimum
// amount are dropped before any enrichment or side effect.
func (p *Processor) Process(ctx context.Context, events []domain.TransactionEvent, chatID string) {
	for i := range events {
		observability.RecordEventReceived()

		event := &events[i]
		if event.Amount.Float64() < p.minAmount {
			observability.RecordEventFiltered()
			continue
		}

		if err := p.processOne(ctx, event, chatID); err != nil {
			p.logger.Printf("event %d (sig %q): %v", i, event.Signature, err)
		}
	}
}

// processOne enriches, formats, and delivers a single event.
func (p *Processor) processOne(ctx context.Context, event *domain.TransactionEvent, chatID string) error {
	label := p.lookupLabel(ctx, event.Wallet)
	summary := p.market.Resolve(ctx, event.TokenAddress)
	text := formatMessage(event, label, summary)

	err := p.notifier.Notify(ctx, chatID, text)
	observability.RecordNotification(err)
	if err != nil {
		p.logger.Printf("deliver notification (sig %q): %v", event.Signature, err)
	}

	p.archiveRecord(ctx, event, summary, text, err == nil)
	return nil
}

// lookupLabel returns the operator label for a wallet, or "" when none is
// set. A store failure degrades to the truncated-address fallback.
func (p *Processor) lookupLabel(ctx context.Context, wallet string) string {
	label, err := p.labels.Get(ctx, wallet)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Printf("label lookup for %q: %v", wallet, err)
		}
		return ""
	}
	return label
}

// archiveRecord writes the audit row. Best-effort only.
func (p *Processor) archiveRecord(ctx context.Context, event *domain.TransactionEvent, summary domain.TokenSummary, text string, delivered bool) {
	if p.archive == nil {
		return
	}

	rec := &domain.NotificationRecord{
		Wallet:       event.Wallet,
		TokenAddress: event.TokenAddress,
		Symbol:       summary.Symbol,
		Amount:       event.Amount.Float64(),
		Signature:    event.Signature,
		Text:         text,
		Delivered:    delivered,
		SentAt:       time.Now().UnixMilli(),
	}
	if err := p.archive.Insert(ctx, rec); err != nil {
		observability.RecordArchiveError()
		p.logger.Printf("archive notification (sig %q): %v", event.Signature, err)
	}
}

// formatMessage builds the Markdown notification text. When the event has
// none of the structured fields, the free-text description is relayed as-is.
func formatMessage(event *domain.TransactionEvent, label string, summary domain.TokenSummary) string {
	if event.Wallet == "" && event.TokenAddress == "" && event.Signature == "" && event.Description != "" {
		return fmt.Sprintf("🔔 *New Transaction*\n\n%s", event.Description)
	}

	display := domain.DisplayLabel(event.Wallet, label)

	var b strings.Builder
	b.WriteString("🔔 *New Transaction*\n\n")

	// Link the wallet only when it is a real Solana address; labels on
	// malformed or missing wallets stay plain text.
	if solana.IsValidAddress(event.Wallet) {
		fmt.Fprintf(&b, "*Wallet:* [%s](%s)\n", display, solana.AccountURL(event.Wallet))
	} else {
		fmt.Fprintf(&b, "*Wallet:* %s\n", display)
	}

	token := summary.Name
	if summary.Symbol != "" {
		token = fmt.Sprintf("%s (%s)", summary.Name, summary.Symbol)
	}
	fmt.Fprintf(&b, "*Token:* %s\n", token)
	fmt.Fprintf(&b, "*Amount:* %s SOL\n", formatAmount(event.Amount.Float64()))
	fmt.Fprintf(&b, "*Price:* %s\n", formatUSD(summary.Price))
	fmt.Fprintf(&b, "*Market Cap:* %s\n", formatUSD(summary.MarketCap))

	if event.Signature != "" {
		fmt.Fprintf(&b, "\n[View on Solscan](%s)", solana.TxURL(event.Signature))
	}
	return b.String()
}

// formatAmount renders a SOL amount without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatUSD prefixes a provider-native value with $ unless it is the N/A
// default.
func formatUSD(v string) string {
	if v == domain.UnknownValue {
		return v
	}
	return "$" + v
}
