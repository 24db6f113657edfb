package sensor

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tarm/serial"
)

// SerialConfig names the sensor board port.
type SerialConfig struct {
	Dev  string `yaml:"dev"`
	Baud int    `yaml:"baud"`
}

// DefaultBaud is the rate the sensor board transmits at.
const DefaultBaud = 115200

// OpenSerial opens the sensor board port as a Source.
func OpenSerial(c SerialConfig, log zerolog.Logger) (*Stream, error) {
	baud := c.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        c.Dev,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", c.Dev, err)
	}
	log.Info().Str("dev", c.Dev).Int("baud", baud).Msg("sensor port open")
	// A read timeout surfaces as io.EOF on an idle line.
	return newStream(p, log, true), nil
}
