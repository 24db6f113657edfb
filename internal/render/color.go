package render

// Color is a packed 0x00RRGGBB pixel.
type Color uint32

const (
	RedOffset   = 16
	GreenOffset = 8
	BlueOffset  = 0
)

const (
	Black Color = 0
	White Color = 0xFFFFFF
	Red   Color = 0xFF0000
	Green Color = 0x00FF00
	Blue  Color = 0x0000FF
)

func clamp8(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v)
}

// RGB packs three channel values, saturating each to 0..255.
func RGB(r, g, b int) Color {
	return Color(clamp8(r)<<RedOffset | clamp8(g)<<GreenOffset | clamp8(b)<<BlueOffset)
}

func getcolor(c Color, off uint) uint8 { return uint8(uint32(c) >> off) }

func setcolor(c Color, n uint8, off uint) Color {
	mask := uint32(0xFF) << off
	return Color(uint32(c)&^mask | uint32(n)<<off)
}

func (c Color) R() uint8 { return getcolor(c, RedOffset) }
func (c Color) G() uint8 { return getcolor(c, GreenOffset) }
func (c Color) B() uint8 { return getcolor(c, BlueOffset) }

func (c Color) WithR(v uint8) Color { return setcolor(c, v, RedOffset) }
func (c Color) WithG(v uint8) Color { return setcolor(c, v, GreenOffset) }
func (c Color) WithB(v uint8) Color { return setcolor(c, v, BlueOffset) }

// Channel returns channel i, 0 red through 2 blue.
func (c Color) Channel(i int) uint8 {
	switch i {
	case 0:
		return c.R()
	case 1:
		return c.G()
	}
	return c.B()
}

// Pack writes src as consecutive R,G,B bytes into dst and returns the bytes
// written. dst must hold 3*len(src).
func Pack(dst []byte, src []Color) int {
	n := 0
	for _, c := range src {
		if n+3 > len(dst) {
			break
		}
		dst[n], dst[n+1], dst[n+2] = c.R(), c.G(), c.B()
		n += 3
	}
	return n
}
