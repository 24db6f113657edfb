package input

import "sort"

// Linux input scan codes used by the default bindings.
const (
	Key0     uint16 = 11
	KeyMinus uint16 = 12
	KeyEqual uint16 = 13
	KeyQ     uint16 = 16
	KeyW     uint16 = 17
	KeyE     uint16 = 18
	KeyP     uint16 = 25
	KeyA     uint16 = 30
	KeyS     uint16 = 31
	KeyD     uint16 = 32
	KeyUp    uint16 = 103
	KeyLeft  uint16 = 105
	KeyRight uint16 = 106
	KeyDown  uint16 = 108
)

// Bindings maps a scan code to a command.
type Bindings map[uint16]Command

// Keymap holds the scene-independent bindings and one table per scene name.
type Keymap struct {
	Global Bindings            `yaml:"global"`
	Scenes map[string]Bindings `yaml:"scenes"`
}

// Lookup returns the global command for code, then the scene command.
// Either may be None.
func (k Keymap) Lookup(scene string, code uint16) (global, local Command) {
	global = k.Global[code]
	if b, ok := k.Scenes[scene]; ok {
		local = b[code]
	}
	return global, local
}

// Commands lists what a scene table binds, in command order.
func (b Bindings) Commands() []Command {
	seen := map[Command]bool{}
	var out []Command
	for _, c := range b {
		if c != None && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Unbound returns the commands from want that no code in b reaches.
func (b Bindings) Unbound(want []Command) []Command {
	bound := map[Command]bool{}
	for _, c := range b {
		bound[c] = true
	}
	var out []Command
	for _, c := range want {
		if !bound[c] {
			out = append(out, c)
		}
	}
	return out
}

// Merge overlays o onto k; tables present in o replace k's wholesale.
func (k Keymap) Merge(o Keymap) Keymap {
	out := Keymap{Global: k.Global, Scenes: map[string]Bindings{}}
	for name, b := range k.Scenes {
		out.Scenes[name] = b
	}
	if len(o.Global) > 0 {
		out.Global = o.Global
	}
	for name, b := range o.Scenes {
		out.Scenes[name] = b
	}
	return out
}

// waveBindings is shared by plasma and rainbow. Down and q are the only
// speed-ish keys reachable there; a, w, s, e and d were never wired.
func waveBindings() Bindings {
	return Bindings{
		KeyLeft:  TimeDown,
		KeyRight: TimeUp,
		KeyUp:    SpaceDown,
		KeyDown:  SpaceUp,
		KeyQ:     Speed1Up,
		KeyP:     Print,
	}
}

// DefaultKeymap returns the stock bindings of the installation.
func DefaultKeymap() Keymap {
	return Keymap{
		Global: Bindings{
			KeyEqual: NextScene,
			KeyMinus: PrevScene,
			Key0:     ToggleOverride,
		},
		Scenes: map[string]Bindings{
			"plasma":  waveBindings(),
			"rainbow": waveBindings(),
			"fire": {
				KeyLeft:  TimeDown,
				KeyRight: TimeUp,
				KeyUp:    SpaceDown,
				KeyDown:  SpaceUp,
				KeyQ:     Speed1Up,
				KeyA:     Speed1Down,
				KeyW:     Speed2Up,
				KeyS:     Speed2Down,
				KeyE:     Speed3Up,
				KeyD:     Speed3Down,
				KeyP:     Print,
			},
			"strip-length": {
				KeyRight: StripNext,
				KeyLeft:  StripPrev,
				KeyUp:    LengthUp,
				KeyDown:  LengthDown,
				KeyP:     Print,
			},
		},
	}
}

// TunableCommands are the commands a wave scene understands.
var TunableCommands = []Command{
	TimeDown, TimeUp, SpaceDown, SpaceUp,
	Speed1Up, Speed1Down, Speed2Up, Speed2Down, Speed3Up, Speed3Down,
	Print,
}
