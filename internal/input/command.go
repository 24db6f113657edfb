// Package input turns raw keyboard events into scene commands.
package input

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Command is an action a key can be bound to.
type Command int

const (
	None Command = iota
	NextScene
	PrevScene
	ToggleOverride
	TimeDown
	TimeUp
	SpaceDown
	SpaceUp
	Speed1Up
	Speed1Down
	Speed2Up
	Speed2Down
	Speed3Up
	Speed3Down
	Print
	StripNext
	StripPrev
	LengthUp
	LengthDown
)

var commandNames = map[Command]string{
	None:           "none",
	NextScene:      "next-scene",
	PrevScene:      "prev-scene",
	ToggleOverride: "toggle-override",
	TimeDown:       "time-down",
	TimeUp:         "time-up",
	SpaceDown:      "space-down",
	SpaceUp:        "space-up",
	Speed1Up:       "speed1-up",
	Speed1Down:     "speed1-down",
	Speed2Up:       "speed2-up",
	Speed2Down:     "speed2-down",
	Speed3Up:       "speed3-up",
	Speed3Down:     "speed3-down",
	Print:          "print",
	StripNext:      "strip-next",
	StripPrev:      "strip-prev",
	LengthUp:       "length-up",
	LengthDown:     "length-down",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand is the inverse of String.
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown command %q", s)
}

func (c Command) MarshalYAML() (interface{}, error) { return c.String(), nil }

func (c *Command) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ParseCommand(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = v
	return nil
}
