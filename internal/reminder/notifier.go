package reminder

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Notifier delivers a digest to the owner.
type Notifier interface {
	Notify(ctx context.Context, d Digest) error
}

// WriterNotifier writes rendered digests to w, at most perMinute a minute.
type WriterNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	limiter *rate.Limiter
}

func NewWriterNotifier(w io.Writer, perMinute int) *WriterNotifier {
	if perMinute <= 0 {
		perMinute = 30
	}
	return &WriterNotifier{
		w:       w,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

func (n *WriterNotifier) Notify(ctx context.Context, d Digest) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for notify slot: %w", err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := io.WriteString(n.w, d.Render()); err != nil {
		return fmt.Errorf("writing digest: %w", err)
	}
	return nil
}
