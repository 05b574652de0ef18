package playable

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ratscrew/pkg/deck"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage(0, "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, time.Now().Before(lm.Time))
	assert.Nil(t, lm.Cards)
	assert.NotEmpty(t, lm.UUID)
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage(1, "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []int64{1}, lm.PlayerIDs)
}

func TestCardLogMessage(t *testing.T) {
	lm := CardLogMessage(2, deck.CardsFromString("5h"), "{} played %s", "5♡")
	assert.Equal(t, "Player 2 played 5♡", lm.String())
	assert.Equal(t, "5h", deck.CardsToString(lm.Cards))
}

func TestLogMessage_String(t *testing.T) {
	lm := &LogMessage{PlayerIDs: []int64{1, 2}, Message: "{} slapped before {}"}
	assert.Equal(t, "Player 1 slapped before Player 2", lm.String())

	lm = &LogMessage{Message: "nothing to replace {}"}
	assert.Equal(t, "nothing to replace {}", lm.String())
}

func TestOK(t *testing.T) {
	assert.Equal(t, &Response{Key: "status", Value: "OK"}, OK())
	assert.Equal(t, "ctx", OK("ctx").Context)
	assert.Equal(t, &Response{Key: "error", Value: "boom"}, ErrorResponse(errors.New("boom")))
}

func TestEvent_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(Slap(2))
	a.NoError(err)
	a.JSONEq(`{"playerId":2,"action":"slap"}`, string(b))

	var e Event
	a.NoError(json.Unmarshal([]byte(`{"playerId":1,"action":"play"}`), &e))
	a.Equal(Play(1), e)

	a.Error(json.Unmarshal([]byte(`{"playerId":1,"action":"jump"}`), &e))
	a.Equal("slap(2)", Slap(2).String())
	a.Equal("Action(9)", Action(9).String())
}
