package timer

import (
	"testing"

	"github.com/quentik/gbcore/internal/bus"
	"github.com/quentik/gbcore/internal/interrupt"
)

func newWired() (*bus.Bus, *Timer) {
	b := bus.New()
	ic := interrupt.NewController()
	b.Register(0xFF0F, 0xFF0F, ic)
	b.Register(0xFFFF, 0xFFFF, ic)
	tm := New(ic.Request())
	b.Register(0xFF04, 0xFF07, tm)
	return b, tm
}

func TestTimer_DIVRate(t *testing.T) {
	b, tm := newWired()
	tm.Step(255)
	if got := b.Read(0xFF04); got != 0x00 {
		t.Fatalf("DIV after 255 clocks got %02x, want 00", got)
	}
	tm.Step(1)
	if got := b.Read(0xFF04); got != 0x01 {
		t.Fatalf("DIV after 256 clocks got %02x, want 01", got)
	}
	// Wraps through 0xFF back to 0.
	for i := 0; i < 255; i++ {
		tm.Step(256)
	}
	if got := b.Read(0xFF04); got != 0x00 {
		t.Fatalf("DIV wrap got %02x, want 00", got)
	}
}

func TestTimer_DIVWriteResets(t *testing.T) {
	b, tm := newWired()
	tm.Step(300)
	b.Write(0xFF04, 0xAB)
	if got := b.Read(0xFF04); got != 0x00 {
		t.Fatalf("DIV after write got %02x, want 00", got)
	}
}

func TestTimer_OverflowReloadDelay(t *testing.T) {
	b, tm := newWired()
	b.Write(0xFF05, 0xFE) // TIMA
	b.Write(0xFF06, 0x37) // TMA
	b.Write(0xFF07, 0x05) // enabled, rate 16 clocks

	tm.Step(32)
	if got := b.Read(0xFF05); got != 0x00 {
		t.Fatalf("TIMA after wrap got %02x, want 00", got)
	}
	if got := b.Read(0xFF0F); got&0x04 != 0 {
		t.Fatalf("timer interrupt raised before reload step")
	}

	tm.Step(1)
	if got := b.Read(0xFF05); got != 0x37 {
		t.Fatalf("TIMA after reload got %02x, want 37", got)
	}
	if got := b.Read(0xFF0F); got&0x04 == 0 {
		t.Fatalf("timer interrupt not raised on reload, IF=%02x", got)
	}
}

func TestTimer_DisabledTIMAFrozen(t *testing.T) {
	b, tm := newWired()
	b.Write(0xFF05, 0x10)
	b.Write(0xFF07, 0x00) // disabled
	tm.Step(4096)
	if got := b.Read(0xFF05); got != 0x10 {
		t.Fatalf("disabled TIMA moved: got %02x, want 10", got)
	}
}

func TestTimer_Rates(t *testing.T) {
	cases := []struct {
		tac    byte
		clocks uint32
	}{
		{0x04, 1024},
		{0x05, 16},
		{0x06, 64},
		{0x07, 256},
	}
	for _, tc := range cases {
		b, tm := newWired()
		b.Write(0xFF07, tc.tac)
		tm.Step(tc.clocks - 1)
		if got := b.Read(0xFF05); got != 0x00 {
			t.Fatalf("TAC=%02x: TIMA early increment at %d clocks", tc.tac, tc.clocks-1)
		}
		tm.Step(1)
		if got := b.Read(0xFF05); got != 0x01 {
			t.Fatalf("TAC=%02x: TIMA got %02x after %d clocks, want 01", tc.tac, got, tc.clocks)
		}
	}
}

func TestTimer_RateChangeResetsAccumulator(t *testing.T) {
	b, tm := newWired()
	b.Write(0xFF07, 0x07) // rate 256
	tm.Step(255)
	b.Write(0xFF07, 0x05) // rate 16: accumulated clocks discarded
	tm.Step(15)
	if got := b.Read(0xFF05); got != 0x00 {
		t.Fatalf("TIMA got %02x, want 00 after accumulator reset", got)
	}
	tm.Step(1)
	if got := b.Read(0xFF05); got != 0x01 {
		t.Fatalf("TIMA got %02x, want 01", got)
	}
}

func TestTimer_TACReadMask(t *testing.T) {
	b, _ := newWired()
	b.Write(0xFF07, 0x05)
	if got := b.Read(0xFF07); got != 0xFD {
		t.Fatalf("TAC read got %02x, want FD", got)
	}
}
