package disassembler

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Policy decides what happens when a leading byte is not recognised.
type Policy int

const (
	// HaltOnUnknown stops decoding and returns ErrUnrecognizedOpcode.
	HaltOnUnknown Policy = iota
	// SkipUnknown drops the byte, records its offset and resumes at the next one.
	SkipUnknown
)

func (p Policy) String() string {
	if p == SkipUnknown {
		return "skip"
	}
	return "halt"
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets where transition traces and skip warnings go.
// Traces are only built when log is at debug level.
func WithLogger(log *logrus.Logger) Option {
	return func(d *Decoder) {
		if log != nil {
			d.log = log
		}
	}
}

// WithPolicy sets the unknown-opcode policy.
func WithPolicy(p Policy) Option {
	return func(d *Decoder) {
		d.policy = p
	}
}

// WithUnit requires the input length to be a multiple of n bytes.
// Values below 1 are treated as 1.
func WithUnit(n int) Option {
	return func(d *Decoder) {
		if n < 1 {
			n = 1
		}
		d.unit = n
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
