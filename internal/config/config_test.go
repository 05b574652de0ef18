package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ratscrew/internal/util"
)

func reset() {
	config = Config{}
}

func TestInstance(t *testing.T) {
	reset()
	defer reset()

	clear1 := util.SetEnv("RATSCREW_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("RATSCREW_LOG_LEVEL", "trace")
	defer clear2()

	a := assert.New(t)
	cfg := Instance()
	a.Equal("trace", cfg.Log.Level)
	a.Equal("json", cfg.Log.Format)
	a.Equal("ratscrew.log", cfg.Log.File)
	a.Equal(KeyBindings{Player1Play: "a", Player1Slap: "s", Player2Play: "o", Player2Slap: "p"}, cfg.Keys)
	a.Equal(time.Second*2, cfg.SlapCooldown)
	a.Equal(time.Millisecond*150, cfg.InputDelay)
	a.True(cfg.AutoDraw)
	a.Equal(time.Millisecond*500, cfg.AutoDrawInterval)
	a.Equal(SpectateConfig{Enabled: true, Addr: "127.0.0.1:8080"}, cfg.Spectate)

	// ensure that it's only loaded once
	_ = os.Setenv("RATSCREW_LOG_LEVEL", "error")
	// ensure we aren't using a pointer
	cfg.Log.Level = "bad"
	cfg = Instance()
	a.Equal("trace", cfg.Log.Level)
}

func TestDefaults(t *testing.T) {
	reset()
	defer reset()

	clear1 := util.SetEnv("RATSCREW_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	expected := DefaultConfig()
	expected.loaded = true
	assert.Equal(t, expected, cfg)
}

func TestLoad_EnvFile(t *testing.T) {
	reset()
	defer reset()

	clear1 := util.SetEnv("RATSCREW_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()
	clear2 := util.SetEnv("RATSCREW_ENV_FILE", "testdata/test.env")
	defer clear2()
	defer func() {
		_ = os.Unsetenv("RATSCREW_SEED")
	}()

	assert.NoError(t, Load())
	assert.Equal(t, int64(42), Instance().Seed)
}

func TestLoad_UppercaseKeys(t *testing.T) {
	reset()
	defer reset()

	clear1 := util.SetEnv("RATSCREW_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()
	clear2 := util.SetEnv("RATSCREW_KEYS_PLAYER1_PLAY", "A")
	defer clear2()

	assert.NoError(t, Load())
	assert.Equal(t, "a", Instance().Keys.Player1Play)
}

func TestLoad_Invalid(t *testing.T) {
	reset()
	defer reset()

	clear1 := util.SetEnv("RATSCREW_CONFIG_FILE", "testdata/bad_keys.yaml")
	defer clear1()

	err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `bound to "q"`)
	assert.False(t, config.loaded)

	clear1()
	clear2 := util.SetEnv("RATSCREW_INPUT_DELAY", "soon")
	defer clear2()
	assert.Error(t, Load())
}

func TestKeyBindings_Lower(t *testing.T) {
	keys := KeyBindings{Player1Play: "Q", Player1Slap: "w", Player2Play: "O", Player2Slap: ";"}
	assert.Equal(t, KeyBindings{Player1Play: "q", Player1Slap: "w", Player2Play: "o", Player2Slap: ";"}, keys.Lower())
}

func TestConfig_Validate(t *testing.T) {
	a := assert.New(t)
	a.NoError(DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Keys.Player2Slap = "pp"
	a.EqualError(cfg.Validate(), `keys.player2Slap must be a single character, got "pp"`)

	// case does not make two keys different
	cfg = DefaultConfig()
	cfg.Keys.Player2Play = "Q"
	err := cfg.Validate()
	a.Error(err)
	a.Contains(err.Error(), `bound to "q"`)

	cfg = DefaultConfig()
	cfg.SlapCooldown = -time.Second
	a.EqualError(cfg.Validate(), "delays cannot be negative")

	cfg = DefaultConfig()
	cfg.AutoDraw = true
	cfg.AutoDrawInterval = 0
	a.EqualError(cfg.Validate(), "autoDrawInterval must be greater than 0")
}
