package rng

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// SerialConfig describes a USB serial TRNG device
type SerialConfig struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration
}

// OpenSerial opens a serial TRNG device as a Generator
// The returned closer must be closed when the generator is no longer needed.
func OpenSerial(cfg SerialConfig) (Generator, io.Closer, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.BaudRate,
		Size:        8,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	return NewStream(port), port, nil
}
