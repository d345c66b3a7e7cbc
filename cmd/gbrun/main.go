package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quentik/gbcore/internal/emu"
)

func main() {
	var (
		bootPath     string
		steps        int
		trace        bool
		until        string
		timeout      time.Duration
		watchResults bool
	)

	rootCmd := &cobra.Command{
		Use:   "gbrun <rom>",
		Short: "Run a ROM headless and watch its serial output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rom: %w", err)
			}
			var boot []byte
			if bootPath != "" {
				if boot, err = os.ReadFile(bootPath); err != nil {
					return fmt.Errorf("read bootrom: %w", err)
				}
			}

			// Serial goes to stdout and, when matching, to a capture
			// buffer as well.
			var ser bytes.Buffer
			out := io.Writer(os.Stdout)
			if until != "" {
				out = io.MultiWriter(os.Stdout, &ser)
			}

			s, err := emu.New(emu.Config{
				Trace:        trace,
				SerialOut:    out,
				WatchResults: watchResults,
			}, rom, boot)
			if err != nil {
				return err
			}
			s.SetLogger(log.New(os.Stderr, "", 0))

			if h := s.Header(); h != nil {
				fmt.Fprintf(os.Stderr, "loaded %q (%s, %d KiB ROM)\n",
					h.Title, h.CartTypeStr, h.ROMSizeBytes/1024)
			}

			start := time.Now()
			var deadline time.Time
			if timeout > 0 {
				deadline = start.Add(timeout)
			}

			var clocks int
			for i := 0; i < steps; i++ {
				clocks += s.Step()
				if until != "" && strings.Contains(strings.ToLower(ser.String()), strings.ToLower(until)) {
					fmt.Printf("\nDetected %q in serial output.\n", until)
					fmt.Printf("Done: steps=%d clocks=%d elapsed=%s\n",
						i+1, clocks, time.Since(start).Truncate(time.Millisecond))
					return nil
				}
				if !deadline.IsZero() && i%4096 == 0 && time.Now().After(deadline) {
					fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
					os.Exit(2)
				}
			}
			fmt.Printf("\nDone: steps=%d clocks=%d elapsed=%s\n",
				steps, clocks, time.Since(start).Truncate(time.Millisecond))
			return nil
		},
	}

	rootCmd.Flags().StringVar(&bootPath, "bootrom", "", "boot ROM to run from 0x0000 until 0xFF50 unmaps it")
	rootCmd.Flags().IntVar(&steps, "steps", 5_000_000, "max CPU steps to run")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "log PC/opcodes to stderr")
	rootCmd.Flags().StringVar(&until, "until", "Passed", "stop when serial output contains this substring (case-insensitive); empty to disable")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "optional wall-clock timeout (e.g. 30s); 0 disables")
	rootCmd.Flags().BoolVar(&watchResults, "watch-results", false, "report the 0xA000 test-ROM result convention")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
