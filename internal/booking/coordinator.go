package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dentalpoint/clinic-service/internal/appointment"
)

var (
	ErrConflictNotFound = errors.New("no pending conflict for token")
	ErrSaveCancelled    = errors.New("save cancelled")
)

// pendingTimeout bounds how long an unresolved conflict holds its save
// goroutine before it is cancelled.
const pendingTimeout = 5 * time.Minute

// Outcome is what a coordinated save hands back to the HTTP layer. Either
// Result is set, or ConflictToken and Conflict are set and the save is
// parked until Resolve or Cancel is called with the token.
type Outcome struct {
	Result        *SaveResult
	ConflictToken string
	Conflict      *ConflictDetails
}

type pendingSave struct {
	decider *channelDecider
	result  chan saveReply
}

type saveReply struct {
	result *SaveResult
	err    error
}

// MetricsRecorder interface for recording conflict metrics
type MetricsRecorder interface {
	RecordConflict(ctx context.Context, resolution string)
}

// Coordinator runs saves so that a conflict suspends the save mid-flight and
// surfaces it to the caller as a token. The caller resolves the token with a
// choice, resuming the suspended save exactly where it stopped.
type Coordinator struct {
	service ServiceInterface
	metrics MetricsRecorder

	mu      sync.Mutex
	pending map[string]*pendingSave
}

// NewCoordinator creates a coordinator; metrics may be nil.
func NewCoordinator(service ServiceInterface, metrics MetricsRecorder) *Coordinator {
	return &Coordinator{
		service: service,
		metrics: metrics,
		pending: make(map[string]*pendingSave),
	}
}

// Save runs the booking flow. On conflict the save is suspended and the
// returned Outcome carries the token to resolve it with. The suspended save
// is detached from the caller's request context so it survives until a
// decision arrives or pendingTimeout expires.
func (c *Coordinator) Save(ctx context.Context, appt appointment.Appointment, oldKey string) (*Outcome, error) {
	decider := newChannelDecider()
	replies := make(chan saveReply, 1)
	token := uuid.New().String()

	saveCtx, cancel := context.WithTimeout(context.Background(), pendingTimeout)
	go func() {
		defer cancel()
		defer c.remove(token)
		var result *SaveResult
		var err error
		if oldKey != "" {
			result, err = c.service.Update(saveCtx, oldKey, appt, decider)
		} else {
			result, err = c.service.Save(saveCtx, appt, decider)
		}
		replies <- saveReply{result: result, err: err}
	}()

	select {
	case reply := <-replies:
		return &Outcome{Result: reply.result}, reply.err
	case details := <-decider.details:
		c.add(token, &pendingSave{decider: decider, result: replies})
		return &Outcome{ConflictToken: token, Conflict: &details}, nil
	case <-ctx.Done():
		// The caller went away before the save settled; let the decider
		// cancel the flow and report the cancellation.
		decider.choose(ChoiceCancel)
		return nil, ctx.Err()
	}
}

// Resolve feeds a choice to the suspended save identified by token and waits
// for the save to finish.
func (c *Coordinator) Resolve(ctx context.Context, token string, choice Choice) (*SaveResult, error) {
	if !choice.Valid() {
		return nil, ErrUnknownChoice
	}

	c.mu.Lock()
	entry, ok := c.pending[token]
	if ok {
		delete(c.pending, token)
	}
	c.mu.Unlock()
	if !ok {
		return nil, ErrConflictNotFound
	}

	if c.metrics != nil {
		c.metrics.RecordConflict(ctx, string(choice))
	}
	entry.decider.choose(choice)

	select {
	case reply := <-entry.result:
		return reply.result, reply.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel abandons the suspended save identified by token. Closing the
// conflict dialog maps here.
func (c *Coordinator) Cancel(ctx context.Context, token string) error {
	result, err := c.Resolve(ctx, token, ChoiceCancel)
	if err != nil {
		return err
	}
	if !result.Cancelled {
		return ErrSaveCancelled
	}
	return nil
}

func (c *Coordinator) add(token string, entry *pendingSave) {
	c.mu.Lock()
	c.pending[token] = entry
	c.mu.Unlock()
}

func (c *Coordinator) remove(token string) {
	c.mu.Lock()
	delete(c.pending, token)
	c.mu.Unlock()
}

// channelDecider bridges the synchronous Decider contract onto channels so
// the decision can come from a later HTTP request.
type channelDecider struct {
	details chan ConflictDetails
	choice  chan Choice
}

func newChannelDecider() *channelDecider {
	return &channelDecider{
		details: make(chan ConflictDetails, 1),
		choice:  make(chan Choice, 1),
	}
}

func (d *channelDecider) Decide(ctx context.Context, details ConflictDetails) (Choice, error) {
	select {
	case d.details <- details:
	case <-ctx.Done():
		return ChoiceCancel, ctx.Err()
	}
	select {
	case choice := <-d.choice:
		return choice, nil
	case <-ctx.Done():
		return ChoiceCancel, ctx.Err()
	}
}

// choose is non-blocking; the choice channel is buffered and only one
// decision is ever delivered.
func (d *channelDecider) choose(choice Choice) {
	select {
	case d.choice <- choice:
	default:
	}
}
