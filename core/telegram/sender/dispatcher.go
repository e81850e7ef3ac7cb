// Package sender queues outbound Telegram calls so handlers return quickly
// while each chat still sees its messages in order.
package sender

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/recipebot/core/httpclient"
	"github.com/m3rciful/recipebot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Op names the Bot API method a queued call performs.
type Op string

const (
	OpSend Op = "sendMessage"
	OpEdit Op = "editMessageText"
)

var (
	// ErrQueueFull is returned when the chat's worker queue has no free slot.
	ErrQueueFull = errors.New("sender: queue full")
	// ErrClosed is returned once Close has been called.
	ErrClosed = errors.New("sender: dispatcher closed")

	tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	// QueueSize is the total capacity, split evenly across workers.
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// OnFailure is called once per call dropped after its last attempt.
	OnFailure func()
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 500 * time.Millisecond
	}
	return o
}

type call struct {
	ctx    context.Context
	chatID int64
	op     Op
	run    func() error
}

// Dispatcher runs queued calls on a fixed set of workers. All calls for one
// chat land on the same worker, so they execute in submission order.
type Dispatcher struct {
	opts     Options
	queues   []chan call
	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	failures atomic.Int64
}

// NewDispatcher starts the workers.
func NewDispatcher(opts Options) *Dispatcher {
	opts = opts.withDefaults()
	d := &Dispatcher{opts: opts, queues: make([]chan call, opts.Workers)}
	perWorker := max(1, opts.QueueSize/opts.Workers)
	for i := range d.queues {
		q := make(chan call, perWorker)
		d.queues[i] = q
		d.wg.Add(1)
		go d.work(q)
	}
	return d
}

// Do queues run for chatID. It never blocks: a full queue yields ErrQueueFull
// and the caller decides whether to run the call inline.
func (d *Dispatcher) Do(ctx context.Context, chatID int64, op Op, run func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.queues[uint64(chatID)%uint64(len(d.queues))] <- call{ctx: ctx, chatID: chatID, op: op, run: run}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Failures reports how many calls were dropped after exhausting retries.
func (d *Dispatcher) Failures() int64 {
	return d.failures.Load()
}

// Close stops accepting calls and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) work(q <-chan call) {
	defer d.wg.Done()
	for c := range q {
		d.execute(c)
	}
}

func (d *Dispatcher) execute(c call) {
	start := time.Now()
	var err error
	attempt := 0
	for ; ; attempt++ {
		err = c.run()
		if err == nil || (c.op == OpEdit && errors.Is(err, tele.ErrMessageNotModified)) {
			logger.Debug(c.ctx, "tg.sender", "send.ok",
				slog.String("op", string(c.op)),
				slog.Int("attempts", attempt+1),
				slog.Duration("took", time.Since(start)),
			)
			return
		}
		wait, ok := d.retryDelay(err, attempt)
		if !ok {
			break
		}
		logger.Debug(c.ctx, "tg.sender", "send.retry",
			slog.String("op", string(c.op)),
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
			slog.String("err", redact(err)),
		)
		select {
		case <-c.ctx.Done():
			err = c.ctx.Err()
		case <-time.After(wait):
			continue
		}
		break
	}

	d.failures.Add(1)
	if d.opts.OnFailure != nil {
		d.opts.OnFailure()
	}
	logger.Error(c.ctx, "tg.sender", "send.fail",
		slog.String("op", string(c.op)),
		slog.Int64("chat_id", c.chatID),
		slog.Int("attempts", attempt+1),
		slog.Duration("took", time.Since(start)),
		slog.String("err", redact(err)),
	)
}

// retryDelay reports whether err deserves another attempt and how long to
// wait first. Flood control dictates its own delay; network hiccups back off
// linearly; everything else is final.
func (d *Dispatcher) retryDelay(err error, attempt int) (time.Duration, bool) {
	if attempt >= d.opts.MaxRetries {
		return 0, false
	}
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return time.Duration(max(flood.RetryAfter, 1)) * time.Second, true
	}
	if httpclient.ShouldRetry(err) {
		return d.opts.RetryBackoff * time.Duration(attempt+1), true
	}
	return 0, false
}

// redact strips the bot token that telebot embeds in request URLs.
func redact(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}
