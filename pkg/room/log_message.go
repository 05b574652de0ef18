package room

import (
	"ratscrew/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds a log message
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// drainLogMessages collects everything the game has logged so far
// Note: this must only be called from within the run loop
func (d *Dealer) drainLogMessages() bool {
	added := false
	for {
		select {
		case msgs := <-d.game.LogChan():
			d.addLogMessages(msgs)
			added = true
		default:
			return added
		}
	}
}

func (d *Dealer) recentLogMessages() []*playable.LogMessage {
	return append([]*playable.LogMessage{}, d.logMessages...)
}
