package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/composer-audio/composer"
	"github.com/composer-audio/composer/composition"
	"github.com/composer-audio/composer/devices"
	"github.com/composer-audio/composer/outputs"
	"github.com/composer-audio/composer/reload"
	"github.com/composer-audio/composer/sink"
	"github.com/composer-audio/composer/spec"
	"github.com/composer-audio/composer/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	specPath := flag.String("s", "", "Path of the composition to play. Can also be given as the first argument.")
	configPath := flag.String("c", composition.DefaultConfigPath, "Config file with default consts.")
	readerName := flag.String("read", "yaml", "How the composition is read: "+strings.Join(spec.ReaderNames, ", ")+".")
	interpreter := flag.String("interpreter", spec.DefaultInterpreter, "Interpreter running compositions read as scripts.")
	midiInput := flag.String("midi-input", "", "Open the first MIDI input whose name starts with this prefix.")
	useKeyboard := flag.Bool("keyboard", false, "Read keys pressed in the terminal for key inputs.")
	keyHold := flag.Duration("key-hold", devices.DefaultKeyHold, "How long a key counts as held after a press.")
	list := flag.Bool("list", false, "List the names of all players, inputs, outputs and macros.")
	printTree := flag.Bool("print-tree", false, "Print the player tree after loading and exit.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		return 0
	}
	consts, err := composition.LoadConfig(*configPath, *configPath != composition.DefaultConfigPath)
	if err != nil {
		return fail(err)
	}
	if *list {
		printNames(consts)
		return 0
	}
	if *specPath == "" && flag.NArg() > 0 {
		*specPath = flag.Arg(0)
	}
	if *specPath == "" {
		flag.Usage()
		return 1
	}
	reader, err := spec.NewReader(*readerName)
	if err != nil {
		return fail(err)
	}
	if r, ok := reader.(spec.ScriptReader); ok {
		r.Interpreter = *interpreter
		reader = r
	}
	text, err := os.ReadFile(*specPath)
	if err != nil {
		return fail(fmt.Errorf("could not read composition: %w", err))
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	devs := composition.Devices{BaseDir: filepath.Dir(*specPath)}
	if *midiInput != "" {
		m, err := devices.OpenMIDI(*midiInput)
		if err != nil {
			return fail(err)
		}
		defer m.Close()
		fmt.Fprintf(os.Stderr, "listening to MIDI input %v\n", m.Name())
		devs.Notes = m
	}
	if *useKeyboard {
		k, err := devices.OpenKeyboard(*keyHold)
		if err != nil {
			return fail(err)
		}
		defer k.Close()
		go func() {
			<-k.Interrupt()
			cancel()
		}()
		devs.Keys = k
	}
	loader := &composition.Loader{Reader: reader, Consts: consts, Devices: devs}
	c, err := loader.Load(text)
	if err != nil {
		return fail(fmt.Errorf("could not load %v: %w", *specPath, err))
	}
	if *printTree {
		composer.Walk(c.Root, func(node any, depth int) bool {
			fmt.Printf("%s%T\n", strings.Repeat("  ", depth), node)
			return true
		})
		c.Close()
		return 0
	}
	if len(c.Outputs) == 0 {
		speaker, err := outputs.NewSpeaker(c.Consts, sink.DefaultFrameSize, sink.DefaultMaxUnplayed)
		if err != nil {
			return fail(err)
		}
		c.Outputs = []composer.Output{speaker}
	}
	supervisor := reload.New(*specPath, c.Consts.ReloadTime.Duration(c.Consts), loader)
	supervisor.Seed(text)
	go supervisor.Run(ctx)
	driver := composition.NewDriver(c, supervisor)
	retval := 0
	if err := driver.Run(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "playback stopped: %v\n", err)
		retval = 1
	}
	if err := driver.Close(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "could not close outputs: %v\n", err)
		retval = 1
	}
	return retval
}

func fail(err error) int {
	color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
	return 1
}

func printNames(c *composer.Consts) {
	names := composition.Names(c)
	categories := make([]string, 0, len(names))
	for category := range names {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Printf("%s: %s\n", category, strings.Join(names[category], ", "))
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "composer plays a composition described in a YAML file, reloading it when it changes.\nUsage: %s [flags] [path]\n", os.Args[0])
	flag.PrintDefaults()
}
