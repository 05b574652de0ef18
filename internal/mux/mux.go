package mux

import (
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"ratscrew/pkg/room"
)

// Mux serves the read-only spectator view of a game
type Mux struct {
	*gmux.Router
	config  config
	version string
	dealer  *room.Dealer
}

type config struct {
	// stateTimeout is how long a request waits on the dealer's run loop
	stateTimeout time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string, dealer *room.Dealer) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		dealer:  dealer,
		config: config{
			stateTimeout: time.Second * 5,
		},
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	// game data changes with every play
	gr := r.NewRoute().Subrouter()
	gr.Use(noCacheMiddleware)
	gr.Methods(http.MethodGet).Path("/state").Handler(this.getState())
	gr.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}

func noCacheMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
