package protocol

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vanguard/game"
)

func TestCodecByName(t *testing.T) {
	assert.Equal(t, "msgpack", CodecByName("MsgPack").Name())
	assert.True(t, CodecByName("msgpack").Binary())
	assert.Equal(t, "json", CodecByName("").Name())
	assert.Equal(t, "json", CodecByName("xml").Name())
}

func TestEncodeRejectsEmptyEnvelope(t *testing.T) {
	_, err := Encode(JSON, "", Advice{})
	assert.Error(t, err)
	_, err = Encode(JSON, MsgAdvice, nil)
	assert.Error(t, err)
}

func TestStateSurvivesBothCodecs(t *testing.T) {
	s := game.NewSession(rand.New(rand.NewSource(1)), nil, nil)
	require.NoError(t, s.Start())
	s.Tick()
	state := BuildState(s, 4200, []string{"shoot"})
	require.Len(t, state.Enemies, 40)
	assert.Equal(t, "PLAYING", state.Phase)

	for _, c := range []Codec{JSON, MsgPack} {
		b, err := Encode(c, MsgState, state)
		require.NoError(t, err, c.Name())

		var env struct {
			T string `json:"t" msgpack:"t"`
			P State  `json:"p" msgpack:"p"`
		}
		require.NoError(t, c.Unmarshal(b, &env), c.Name())
		assert.Equal(t, MsgState, env.T)
		assert.Equal(t, 4200, env.P.HighScore)
		assert.Equal(t, state.Enemies[0], env.P.Enemies[0])
		assert.Equal(t, state.Stats, env.P.Stats)
		assert.Equal(t, []string{"shoot"}, env.P.Sfx)
	}
}

func TestDecodeClient(t *testing.T) {
	m, err := DecodeClient([]byte(`{"type":"KEY","key":"ArrowLeft","down":true,"seq":3}`))
	require.NoError(t, err)
	assert.Equal(t, ClientMessage{Type: CmdKey, Key: "ArrowLeft", Down: true, Seq: 3}, m)

	_, err = DecodeClient(nil)
	assert.Error(t, err)
	_, err = DecodeClient([]byte("{"))
	var syntax *json.SyntaxError
	assert.ErrorAs(t, err, &syntax)
}
