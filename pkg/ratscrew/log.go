package ratscrew

import (
	"ratscrew/pkg/deck"
	"ratscrew/pkg/playable"
)

// sendLogMessages never blocks, messages are dropped when nobody is reading
func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan == nil || len(msg) == 0 {
		return
	}

	select {
	case g.logChan <- msg:
	default:
		g.logger.WithField("game", g.id).Debug("log channel is full, dropping messages")
	}
}

func logMessagesFor(t *Transition) []*playable.LogMessage {
	messages := make([]*playable.LogMessage, 0, len(t.Events))
	for _, e := range t.Events {
		var cards []*deck.Card
		if e.Card != nil {
			cards = []*deck.Card{e.Card}
		}

		var msg *playable.LogMessage
		switch e.Kind {
		case EventCardPlayed:
			msg = playable.CardLogMessage(e.PlayerID, cards, "{} played %s", e.Card)
		case EventChainStarted:
			msg = playable.CardLogMessage(e.PlayerID, cards, "Face card chain! {} played %s, opponent must draw %d", e.Card.RankName(), e.Draws)
		case EventChainRestarted:
			msg = playable.CardLogMessage(e.PlayerID, cards, "{} answered with %s, opponent must draw %d", e.Card.RankName(), e.Draws)
		case EventRoundOver:
			msg = playable.SimpleLogMessage(e.PlayerID, "{} won the round and collected %d cards", e.CardsWon)
		case EventSlapWon:
			msg = playable.SimpleLogMessage(e.PlayerID, "Good slap! {} slapped a %s and collected %d cards", e.Pattern, e.CardsWon)
		case EventSlapFailed:
			msg = playable.CardLogMessage(e.PlayerID, cards, "Slap failed! {} burned %s", e.Card)
		case EventGameOver:
			msg = playable.SimpleLogMessage(e.PlayerID, "{} wins!")
		default:
			continue
		}

		messages = append(messages, msg)
	}

	return messages
}
