package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"ratscrew/pkg/playable"
)

// ErrShiftOver is returned when the dealer is no longer running
var ErrShiftOver = errors.New("dealer is no longer running")

// reasons sent on Client.Close
const (
	closeGameOver  = "game over"
	closeAbandoned = "game abandoned"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// Options controls how the dealer filters player input
type Options struct {
	// SlapCooldown is the minimum time between two accepted slaps from anyone
	SlapCooldown time.Duration
	// InputDelay is the minimum time between two accepted plays from the same player
	InputDelay time.Duration
	// AutoDraw plays for whoever is up on every tick when set
	AutoDraw playable.Tickable
}

// DefaultOptions returns the default dealer options
func DefaultOptions() Options {
	return Options{
		SlapCooldown: time.Second,
		InputDelay:   time.Millisecond * 150,
	}
}

// Dealer owns the game and serializes every input into it
// All access to the game happens on the dealer's run loop.
type Dealer struct {
	logger  logrus.FieldLogger
	game    playable.Playable
	opts    Options
	clients map[*Client]bool
	lock    sync.RWMutex
	now     func() time.Time

	lastSlap    time.Time
	lastPlay    map[int64]time.Time
	logMessages []*playable.LogMessage

	events        chan playable.Event
	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once

	// runLock guards stopped, exec falls back to the caller's goroutine once the run loop is gone
	runLock sync.Mutex
	stopped bool
	done    chan struct{}
}

// NewDealer creates a new dealer for the game
func NewDealer(logger logrus.FieldLogger, game playable.Playable, opts Options) *Dealer {
	return &Dealer{
		logger:        logger,
		game:          game,
		opts:          opts,
		clients:       make(map[*Client]bool),
		now:           time.Now,
		lastPlay:      make(map[int64]time.Time),
		events:        make(chan playable.Event, 256),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
		done:          make(chan struct{}),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// Submit queues a player's input
// This never blocks. false is returned if the input was dropped.
func (d *Dealer) Submit(event playable.Event) bool {
	select {
	case <-d.done:
		return false
	default:
	}

	select {
	case d.events <- event:
		return true
	default:
		d.logger.WithField("event", event.String()).Warn("input queue is full, dropping event")
		return false
	}
}

// StartShift starts the run loop
// The run loop stops when the game is over, ctx is cancelled or EndShift is called.
func (d *Dealer) StartShift(ctx context.Context) {
	go d.runLoop(ctx)
}

// Done is closed once the run loop has exited
func (d *Dealer) Done() <-chan struct{} {
	return d.done
}

func (d *Dealer) runLoop(ctx context.Context) {
	log := d.logger.WithField("game", d.game.Name())
	log.Debug("creating dealer run loop")
	defer d.stop()

	var tick <-chan time.Time
	if d.opts.AutoDraw != nil {
		ticker := time.NewTicker(d.opts.AutoDraw.Delay())
		defer ticker.Stop()
		tick = ticker.C
	}

	d.drainLogMessages()
	d.sendGameData()

	for {
		select {
		case event := <-d.events:
			d.handleEvent(event)
		case <-tick:
			updated, err := d.opts.AutoDraw.Tick()
			if err != nil {
				log.WithError(err).Error("automatic draw failed")
			}

			if updated {
				d.drainLogMessages()
				d.sendGameData()
			}
		case msgs := <-d.game.LogChan():
			d.addLogMessages(msgs)
			d.sendLogData()
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				log.WithField("clients", len(d.Clients())).Debug("clients changed")
			case stateGameEvent:
				d.drainLogMessages()
				d.sendGameData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-ctx.Done():
			log.Debug("context is done, terminating dealer run loop")
			return
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}

		if details, isGameOver := d.game.GetEndOfGameDetails(); isGameOver {
			log.WithField("winner", details.WinnerID).Info("game over")
			d.drainLogMessages()
			d.sendGameData()
			d.sendGameEnded(details)
			return
		}
	}
}

func (d *Dealer) stop() {
	d.runLock.Lock()
	d.stopped = true
	d.runLock.Unlock()

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		default:
			reason := closeAbandoned
			if _, over := d.game.GetEndOfGameDetails(); over {
				reason = closeGameOver
			}

			for _, client := range d.Clients() {
				client.close(reason)
			}

			close(d.done)
			return
		}
	}
}

// exec runs fn on the run loop, or right away if the run loop has exited
func (d *Dealer) exec(fn func()) {
	d.runLock.Lock()
	defer d.runLock.Unlock()

	if d.stopped {
		fn()
		return
	}

	d.execInRunLoop <- fn
}

// handleEvent applies the debounce rules and forwards the event to the game
// NOTE: must only be called from the run loop
func (d *Dealer) handleEvent(event playable.Event) {
	log := d.logger.WithField("event", event.String())
	if !d.accept(event) {
		log.Debug("debounced input")
		return
	}

	updated, err := d.game.Action(event)
	if err != nil {
		log.WithError(err).Debug("rejected input")
		d.broadcast(newErrorResponse(event.String(), err))
		return
	}

	if updated {
		d.drainLogMessages()
		d.sendGameData()
	}
}

// accept returns false if the event arrived too soon after a previous one
func (d *Dealer) accept(event playable.Event) bool {
	now := d.now()

	switch event.Action {
	case playable.ActionSlap:
		if !d.lastSlap.IsZero() && now.Sub(d.lastSlap) < d.opts.SlapCooldown {
			return false
		}

		d.lastSlap = now
	case playable.ActionPlay:
		if last, ok := d.lastPlay[event.PlayerID]; ok && now.Sub(last) < d.opts.InputDelay {
			return false
		}

		d.lastPlay[event.PlayerID] = now
	}

	return true
}

// AddClient adds a client
// The client is immediately sent the current state and recent log.
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	d.clients[client] = true
	d.lock.Unlock()

	d.exec(func() {
		if gs, err := d.game.GetState(); err != nil {
			d.logger.WithError(err).Error("could not get game state")
		} else {
			client.Send(gs)
		}

		client.Send(newLogResponse(d.recentLogMessages()))
	})

	d.notify(stateClientEvent)
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.notify(stateClientEvent)
		return false
	}

	return true
}

// State returns the current state of the game
func (d *Dealer) State(ctx context.Context) (*playable.Response, error) {
	type result struct {
		res *playable.Response
		err error
	}

	ch := make(chan result, 1)
	d.exec(func() {
		res, err := d.game.GetState()
		ch <- result{res: res, err: err}
	})

	select {
	case r := <-ch:
		return r.res, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns how the game ended
// ErrShiftOver is returned while the dealer is still running.
func (d *Dealer) Result() (*playable.GameOverDetails, error) {
	select {
	case <-d.done:
	default:
		return nil, ErrShiftOver
	}

	details, _ := d.game.GetEndOfGameDetails()
	return details, nil
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) notify(s state) {
	select {
	case d.stateChanged <- s:
	default:
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded(details *playable.GameOverDetails) {
	d.broadcast(newGameEndedResponse(details))
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	gs, err := d.game.GetState()
	if err != nil {
		d.logger.WithError(err).Error("could not get game state")
		return
	}

	d.broadcast(gs)
	d.sendLogData()
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendLogData() {
	d.broadcast(newLogResponse(d.recentLogMessages()))
}

func (d *Dealer) broadcast(res *playable.Response) {
	for _, client := range d.Clients() {
		if !client.Send(res) {
			d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropped message")
		}
	}
}
