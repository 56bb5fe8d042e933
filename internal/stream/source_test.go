package stream

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-tx-relay/internal/domain"
	"solana-tx-relay/internal/processor"
	"solana-tx-relay/internal/storage/memory"
)

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingNotifier) Notify(_ context.Context, _, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingNotifier) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

type staticResolver struct{}

func (staticResolver) Resolve(_ context.Context, _ string) domain.TokenSummary {
	return domain.UnknownTokenSummary()
}

func TestRun_ConsumesFrames(t *testing.T) {
	upgrader := websocket.Upgrader{}
	frames := []string{
		`{"transactions": [{"wallet": "WalletA", "amount": 2.5, "signature": "SIG1"}]}`,
		`not json at all`,
		`{"transactions": [{"wallet": "WalletB", "amount": 0.01}]}`,
		`{"transactions": [{"wallet": "WalletC", "amount": 1.0, "signature": "SIG3"}]}`,
	}

	var wsSrv *httptest.Server
	wsSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, f := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		}
		// Keep the connection open until the client goes away.
		conn.ReadMessage()
	}))
	defer wsSrv.Close()

	notifier := &recordingNotifier{}
	proc := processor.New(processor.Options{
		Labels:    memory.NewLabelStore(),
		Market:    staticResolver{},
		Notifier:  notifier,
		MinAmount: 0.1,
		Logger:    log.New(io.Discard, "", 0),
	})

	endpoint := "ws" + strings.TrimPrefix(wsSrv.URL, "http")
	source := NewSource(endpoint, proc, "chat1", nil)
	source.logger = log.New(io.Discard, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		source.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(notifier.snapshot()) == 2
	}, 5*time.Second, 10*time.Millisecond, "two above-threshold events should notify, bad frame and filtered event should not")

	texts := notifier.snapshot()
	assert.Contains(t, texts[0], "SIG1")
	assert.Contains(t, texts[1], "SIG3")

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
