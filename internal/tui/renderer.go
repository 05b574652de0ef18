package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"ratscrew/internal/config"
	"ratscrew/pkg/deck"
	"ratscrew/pkg/playable"
	"ratscrew/pkg/ratscrew"
	"ratscrew/pkg/room"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	// raw mode terminals do not translate \n
	newline  = "\r\n"
	cardSize = 9
	logLines = 6
)

// Renderer draws the game to a raw-mode terminal
type Renderer struct {
	out  io.Writer
	keys config.KeyBindings

	state   *ratscrew.GameState
	logs    []*playable.LogMessage
	lastErr string
}

// NewRenderer returns a renderer that writes frames to out
func NewRenderer(out io.Writer, keys config.KeyBindings) *Renderer {
	return &Renderer{
		out:  out,
		keys: keys,
	}
}

// Update records a response from the dealer
// It returns true if the game has ended.
func (r *Renderer) Update(res *playable.Response) bool {
	switch res.Key {
	case room.KeyGame:
		if gs, ok := res.Data.(*ratscrew.GameState); ok {
			r.state = gs
			r.lastErr = ""
		}
	case room.KeyLogs:
		if logs, ok := res.Data.([]*playable.LogMessage); ok {
			r.logs = logs
		}
	case room.KeyError:
		r.lastErr = res.Value
	case room.KeyGameEnded:
		return true
	}

	return false
}

// Watch renders every update until the game ends, the channel is closed or ctx is done
// Frames are drawn at most once every delay.
func (r *Renderer) Watch(ctx context.Context, updates <-chan *playable.Response, delay time.Duration) error {
	if delay <= 0 {
		delay = time.Millisecond
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case res, ok := <-updates:
			if !ok {
				return r.Render()
			}

			if r.Update(res) {
				return r.Render()
			}

			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}

			dirty = false
			if err := r.Render(); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Render draws a full frame
func (r *Renderer) Render() error {
	_, err := io.WriteString(r.out, clearScreen+strings.Join(r.frame(), newline)+newline)
	return err
}

func (r *Renderer) frame() []string {
	lines := []string{"EGYPTIAN RATSCREW", ""}
	if r.state == nil {
		return append(lines, "Shuffling...")
	}

	gs := r.state
	lines = append(lines, pileLines(gs.TopCards)...)
	lines = append(lines, "")

	counts := make([]string, 0, len(gs.Participants)+1)
	for _, p := range gs.Participants {
		counts = append(counts, fmt.Sprintf("Player %d: %2d cards", p.PlayerID, p.CardsInHand))
	}
	counts = append(counts, fmt.Sprintf("Pile: %2d", gs.PileSize))
	lines = append(lines, strings.Join(counts, "    "), statusLine(gs.RoundState))

	if r.lastErr != "" {
		lines = append(lines, "! "+r.lastErr)
	}

	lines = append(lines, "")
	logs := r.logs
	if len(logs) > logLines {
		logs = logs[len(logs)-logLines:]
	}

	for _, msg := range logs {
		lines = append(lines, msg.String())
	}

	return append(lines, "", r.help())
}

func (r *Renderer) help() string {
	return fmt.Sprintf("Player 1: %s play, %s slap    Player 2: %s play, %s slap    Esc quits",
		r.keys.Player1Play, r.keys.Player1Slap, r.keys.Player2Play, r.keys.Player2Slap)
}

func statusLine(rs ratscrew.RoundState) string {
	switch rs.Phase {
	case ratscrew.PhaseGameOver:
		return fmt.Sprintf("Player %d wins!", rs.Winner)
	case ratscrew.PhaseFaceCardChain:
		return fmt.Sprintf("Face card chain! Player %d must draw %d more for Player %d", rs.Turn, rs.DrawsRemaining, rs.ChainOwner)
	}

	return fmt.Sprintf("Player %d to play", rs.Turn)
}

// pileLines draws the cards side by side, bottom-most on the left and the top card on the right
// cards are given top first.
func pileLines(cards []*deck.Card) []string {
	if len(cards) == 0 {
		return []string{"(the pile is empty)"}
	}

	border := "+" + strings.Repeat("-", cardSize) + "+"
	rows := make([][]string, 7)
	for i := len(cards) - 1; i >= 0; i-- {
		card := cards[i]
		name := card.RankName()
		box := []string{
			border,
			fmt.Sprintf("|%-*s|", cardSize, name),
			"|" + strings.Repeat(" ", cardSize) + "|",
			"|" + center(card.Suit.Symbol(), cardSize) + "|",
			"|" + strings.Repeat(" ", cardSize) + "|",
			fmt.Sprintf("|%*s|", cardSize, name),
			border,
		}

		for row, s := range box {
			rows[row] = append(rows[row], s)
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " ")
	}

	return lines
}

func center(s string, width int) string {
	pad := width - 1
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
