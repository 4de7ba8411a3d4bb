// Command bandinfo prints the frequency response of the band-split filters
// used by the feature pipeline.
//
// Usage:
//
//	bandinfo [flags] [band ...]
//
// Without arguments it prints every band.
//
// Examples:
//
//	bandinfo
//	bandinfo -rate 48000 bass mid
//	bandinfo -points 24 -min 20 -max 20000 high
//	bandinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/martinblech/rtaudio/measure/features"
)

type bandEntry struct {
	name  string
	scope features.Scope
	desc  string
}

var registry = []bandEntry{
	{"bass", features.ScopeBass, fmt.Sprintf("Butterworth lowpass %g Hz, order %d", features.BassCutoffHz, features.FilterOrder)},
	{"mid", features.ScopeMid, fmt.Sprintf("Butterworth bandpass %g-%g Hz, order %d",
		features.MidCenterHz-features.MidWidthHz/2, features.MidCenterHz+features.MidWidthHz/2, features.FilterOrder)},
	{"high", features.ScopeHigh, fmt.Sprintf("Butterworth highpass %g Hz, order %d", features.HighCutoffHz, features.FilterOrder)},
}

func main() {
	rate := flag.Float64("rate", 44100, "sample rate in Hz")
	points := flag.Int("points", 12, "number of log-spaced frequencies")
	minHz := flag.Float64("min", 31.25, "lowest frequency in Hz")
	maxHz := flag.Float64("max", 16000, "highest frequency in Hz")
	list := flag.Bool("list", false, "list available band names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bandinfo [flags] [band ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the magnitude response of the band-split filters.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints every band.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bandinfo -rate 48000 bass mid\n")
		fmt.Fprintf(os.Stderr, "  bandinfo -points 24 high\n")
		fmt.Fprintf(os.Stderr, "  bandinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	entries := resolveEntries(flag.Args())
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching bands\n")
		os.Exit(1)
	}

	freqs, err := logFrequencies(*minHz, *maxHz, *points, *rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	splitter, err := features.NewBandSplitter(*rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printResponse(os.Stdout, splitter, entries, freqs, *rate); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList(w io.Writer) {
	for _, e := range registry {
		fmt.Fprintf(w, "%-5s %s\n", e.name, e.desc)
	}
}

func resolveEntries(names []string) []bandEntry {
	if len(names) == 0 {
		return registry
	}
	byName := make(map[string]bandEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}

	var result []bandEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown band %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

// logFrequencies returns n log-spaced frequencies from lo to hi inclusive.
func logFrequencies(lo, hi float64, n int, rate float64) ([]float64, error) {
	switch {
	case n < 1:
		return nil, fmt.Errorf("points must be >= 1: %d", n)
	case !(lo > 0) || !(hi >= lo):
		return nil, fmt.Errorf("need 0 < min <= max: %g, %g", lo, hi)
	case hi >= rate/2:
		return nil, fmt.Errorf("max %g Hz must be below Nyquist %g Hz", hi, rate/2)
	}
	if n == 1 {
		return []float64{lo}, nil
	}
	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	return out, nil
}

func printResponse(w io.Writer, s *features.BandSplitter, entries []bandEntry, freqs []float64, rate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := "Freq [Hz]\t"
	rule := "---------\t"
	for _, e := range entries {
		header += e.name + " [dB]\t"
		rule += strings.Repeat("-", len(e.name)+5) + "\t"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, f := range freqs {
		row := fmt.Sprintf("%.1f\t", f)
		for _, e := range entries {
			row += fmt.Sprintf("%.2f\t", s.MagnitudeDB(e.scope, f, rate))
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
