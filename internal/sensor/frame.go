// Package sensor decodes the motion frames streamed by the zone sensor board.
//
// The wire format is a byte stream where 254 starts a frame and 255 stands
// for a zero byte. Frame slot 0 carries the requested scene, slots 1..N the
// per-zone motion intensity.
package sensor

const (
	// FrameSize is the decoder capacity: selector plus up to 30 zones.
	FrameSize = 31
	// MaxZones is the largest zone count a frame can carry.
	MaxZones = FrameSize - 1

	Marker byte = 254
	Escape byte = 255
)

// Frame is the latest decoded motion frame.
type Frame [FrameSize]byte

// Selector is the scene requested by the sensor board.
func (f *Frame) Selector() byte { return f[0] }

// Zone is the raw intensity of zone i; out of range zones read as zero.
func (f *Frame) Zone(i int) byte {
	if i < 0 || i >= MaxZones {
		return 0
	}
	return f[1+i]
}

// Encode renders a frame on the wire. Zeros are escaped; payload values that
// collide with the control bytes are clamped to 253.
func Encode(sel byte, zones []byte) []byte {
	out := make([]byte, 0, 2+len(zones))
	out = append(out, Marker, escape(sel))
	for _, z := range zones {
		out = append(out, escape(z))
	}
	return out
}

func escape(b byte) byte {
	switch {
	case b == 0:
		return Escape
	case b >= Marker:
		return Marker - 1
	}
	return b
}
