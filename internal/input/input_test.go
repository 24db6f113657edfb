package input

import (
	"encoding/binary"
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefaultKeymapGlobal(t *testing.T) {
	km := DefaultKeymap()
	g, l := km.Lookup("plasma", KeyEqual)
	assert.Equal(t, NextScene, g)
	assert.Equal(t, None, l)

	g, _ = km.Lookup("lightning", KeyMinus)
	assert.Equal(t, PrevScene, g)
	g, _ = km.Lookup("lightning", Key0)
	assert.Equal(t, ToggleOverride, g)
}

func TestWaveBindingsKeepUnreachableSpeeds(t *testing.T) {
	km := DefaultKeymap()
	_, l := km.Lookup("plasma", KeyDown)
	assert.Equal(t, SpaceUp, l)
	_, l = km.Lookup("rainbow", KeyQ)
	assert.Equal(t, Speed1Up, l)
	_, l = km.Lookup("plasma", KeyA)
	assert.Equal(t, None, l)

	unbound := km.Scenes["plasma"].Unbound(TunableCommands)
	assert.Equal(t, []Command{Speed1Down, Speed2Up, Speed2Down, Speed3Up, Speed3Down}, unbound)
	assert.Empty(t, km.Scenes["fire"].Unbound(TunableCommands))
}

func TestKeymapYAMLRemap(t *testing.T) {
	doc := `
scenes:
  plasma:
    105: time-down
    30: speed1-down
`
	var km Keymap
	require.NoError(t, yaml.Unmarshal([]byte(doc), &km))
	merged := DefaultKeymap().Merge(km)

	_, l := merged.Lookup("plasma", KeyA)
	assert.Equal(t, Speed1Down, l)
	_, l = merged.Lookup("plasma", KeyQ)
	assert.Equal(t, None, l, "scene table is replaced, not merged")
	g, _ := merged.Lookup("plasma", KeyEqual)
	assert.Equal(t, NextScene, g)
	_, l = merged.Lookup("fire", KeyA)
	assert.Equal(t, Speed1Down, l)

	out, err := yaml.Marshal(km)
	require.NoError(t, err)
	assert.Contains(t, string(out), "speed1-down")
}

func TestKeymapYAMLUnknownCommand(t *testing.T) {
	var km Keymap
	err := yaml.Unmarshal([]byte("global:\n  13: warp\n"), &km)
	assert.ErrorContains(t, err, "unknown command")
}

func TestParseCommandRoundTrip(t *testing.T) {
	for c := None; c <= LengthDown; c++ {
		got, err := ParseCommand(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestDecodeEvent(t *testing.T) {
	for _, tv := range []int{8, 16} {
		rec := make([]byte, tv+8)
		binary.LittleEndian.PutUint16(rec[tv:], EvKey)
		binary.LittleEndian.PutUint16(rec[tv+2:], KeyRight)
		binary.LittleEndian.PutUint32(rec[tv+4:], uint32(Repeat))

		ev, err := decodeEvent(rec, tv)
		require.NoError(t, err)
		assert.Equal(t, Event{Type: EvKey, Code: KeyRight, Value: Repeat}, ev)
		assert.True(t, ev.Active())
	}
	_, err := decodeEvent(make([]byte, 10), 16)
	assert.ErrorIs(t, err, ErrShortEvent)
}

func TestEventActive(t *testing.T) {
	assert.False(t, Event{Type: EvKey, Value: Release}.Active())
	assert.False(t, Event{Type: 4, Value: Press}.Active())
	assert.True(t, Event{Type: EvKey, Value: Press}.Active())
}

func TestScanCode(t *testing.T) {
	c, ok := scanCode('Q', 0)
	assert.True(t, ok)
	assert.Equal(t, KeyQ, c)
	c, ok = scanCode(0, keyboard.KeyArrowLeft)
	assert.True(t, ok)
	assert.Equal(t, KeyLeft, c)
	_, ok = scanCode('z', 0)
	assert.False(t, ok)
}

func TestChanSource(t *testing.T) {
	c := NewChan()
	defer c.Close()

	_, ok := c.Poll()
	assert.False(t, ok)

	c.Press(KeyP)
	ev, ok := c.Poll()
	require.True(t, ok)
	assert.Equal(t, KeyP, ev.Code)

	_, ok = c.Poll()
	assert.False(t, ok, "an empty read never repeats the last event")
}
