package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/composer-audio/composer/composition"
	"github.com/composer-audio/composer/theory"
)

func main() {
	configPath := flag.String("c", composition.DefaultConfigPath, "Config file with scale and chord definitions.")
	numNotes := flag.Int("n", 0, "Number of notes to print for a scale. By default, one octave.")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	consts, err := composition.LoadConfig(*configPath, *configPath != composition.DefaultConfigPath)
	if err != nil {
		fail(err)
	}
	var freqs []float64
	switch kind, arg := flag.Arg(0), flag.Arg(1); kind {
	case "chord":
		chord, err := theory.ParseChord(arg, consts.Scales, consts.Chords)
		if err != nil {
			fail(err)
		}
		freqs = chord.Frequencies()
	case "scale":
		scale, err := theory.ParseScale(arg, consts.Scales)
		if err != nil {
			fail(err)
		}
		n := *numNotes
		if n <= 0 {
			n = scale.Len()
		}
		freqs = theory.Frequencies(scale.Notes(n))
	default:
		fail(fmt.Errorf("unknown kind %q, expected chord or scale", kind))
	}
	strs := make([]string, len(freqs))
	for i, f := range freqs {
		strs[i] = fmt.Sprintf("%g", f)
	}
	fmt.Println(strings.Join(strs, " "))
}

func fail(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "freq-resolver prints the frequencies of the notes of a chord or a scale.\nUsage: %s [flags] chord \"<note> <chord>\" | scale \"<note> <scale>\"\n", os.Args[0])
	flag.PrintDefaults()
}
