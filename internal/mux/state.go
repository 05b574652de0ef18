package mux

import (
	"context"
	"net/http"
)

func (m *Mux) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), m.config.stateTimeout)
		defer cancel()

		res, err := m.dealer.State(ctx)
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
