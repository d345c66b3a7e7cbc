package emu

import "io"

// Config contains settings that affect a session.
type Config struct {
	Trace        bool      // log executed instructions
	SerialOut    io.Writer // sink for bytes leaving the serial port
	WatchResults bool      // watch the 0xA000 test-ROM result convention
}
