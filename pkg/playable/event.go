package playable

import "fmt"

// Action is what a player physically did
type Action int

// action constants
const (
	// ActionPlay places the player's front card on the pile
	ActionPlay Action = iota
	// ActionSlap claims the pile
	ActionSlap
)

func (a Action) String() string {
	switch a {
	case ActionPlay:
		return "play"
	case ActionSlap:
		return "slap"
	}

	return fmt.Sprintf("Action(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	switch string(text) {
	case "play":
		*a = ActionPlay
	case "slap":
		*a = ActionSlap
	default:
		return fmt.Errorf("unknown action: %s", string(text))
	}

	return nil
}

// Event is a single input from a player, delivered by an input adapter
type Event struct {
	PlayerID int64  `json:"playerId"`
	Action   Action `json:"action"`
}

// Play returns a play event for the player
func Play(playerID int64) Event {
	return Event{PlayerID: playerID, Action: ActionPlay}
}

// Slap returns a slap event for the player
func Slap(playerID int64) Event {
	return Event{PlayerID: playerID, Action: ActionSlap}
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d)", e.Action, e.PlayerID)
}
