package render

// Selector tracks the active scene and whether the sensor board may change it.
type Selector struct {
	Current  ID
	Override bool
}

func (s *Selector) Next() { s.Current = (s.Current + 1) % SceneCount }

func (s *Selector) Prev() { s.Current = (s.Current + SceneCount - 1) % SceneCount }

func (s *Selector) ToggleOverride() { s.Override = !s.Override }

// Request applies a scene byte from the sensor board. It is ignored while
// overridden or when b names no selectable scene.
func (s *Selector) Request(b byte) bool {
	if s.Override || int(b) >= SceneCount {
		return false
	}
	s.Current = ID(b)
	return true
}
