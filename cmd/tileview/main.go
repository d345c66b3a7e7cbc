// tileview runs a ROM and shows the 2bpp tile data resident in VRAM as
// a live tile sheet. It is a bus consumer, not a PPU: no scanline
// timing, no sprites, no scrolling.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/quentik/gbcore/internal/emu"
)

const (
	tileCols = 16
	tileRows = 24 // 384 tiles at 0x8000–0x97FF
	sheetW   = tileCols * 8
	sheetH   = tileRows * 8

	// One LCD frame worth of clocks; a convenient per-tick budget.
	clocksPerTick = 70224
)

// DMG-ish greens, light to dark.
var palette = [4][4]byte{
	{0xE0, 0xF8, 0xD0, 0xFF},
	{0x88, 0xC0, 0x70, 0xFF},
	{0x34, 0x68, 0x56, 0xFF},
	{0x08, 0x18, 0x20, 0xFF},
}

type viewer struct {
	s   *emu.Session
	tex *ebiten.Image
	px  []byte
}

func (v *viewer) Update() error {
	for clocks := 0; clocks < clocksPerTick; {
		clocks += v.s.Step()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	b := v.s.Bus()
	for tile := 0; tile < tileCols*tileRows; tile++ {
		base := uint16(0x8000 + tile*16)
		tx, ty := (tile%tileCols)*8, (tile/tileCols)*8
		for row := 0; row < 8; row++ {
			lo := b.Read(base + uint16(row*2))
			hi := b.Read(base + uint16(row*2) + 1)
			for col := 0; col < 8; col++ {
				shade := (lo>>(7-col))&1 | ((hi>>(7-col))&1)<<1
				i := ((ty+row)*sheetW + tx + col) * 4
				copy(v.px[i:i+4], palette[shade][:])
			}
		}
	}
	v.tex.WritePixels(v.px)
	screen.DrawImage(v.tex, nil)
}

func (v *viewer) Layout(outW, outH int) (int, int) { return sheetW, sheetH }

func main() {
	bootPath := flag.String("bootrom", "", "optional boot ROM")
	scale := flag.Int("scale", 3, "window scale factor")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: tileview [flags] <rom>")
	}

	rom, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read rom: %v", err)
	}
	var boot []byte
	if *bootPath != "" {
		if boot, err = os.ReadFile(*bootPath); err != nil {
			log.Fatalf("read bootrom: %v", err)
		}
	}

	s, err := emu.New(emu.Config{SerialOut: os.Stdout}, rom, boot)
	if err != nil {
		log.Fatal(err)
	}

	title := "tileview"
	if h := s.Header(); h != nil && h.Title != "" {
		title = "tileview - [" + h.Title + "]"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(sheetW*(*scale), sheetH*(*scale))

	v := &viewer{
		s:   s,
		tex: ebiten.NewImage(sheetW, sheetH),
		px:  make([]byte, sheetW*sheetH*4),
	}
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
