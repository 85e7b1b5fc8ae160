package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"gioui.org/app"
	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/cmd"
	"github.com/tonnetz-go/tonnetz/explorer"
	"github.com/tonnetz-go/tonnetz/explorer/gioui"
	"github.com/tonnetz-go/tonnetz/oto"
	"github.com/tonnetz-go/tonnetz/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
var bufferSize = flag.Duration("buffer", 50*time.Millisecond, "audio output buffer `duration`")
var versionFlag = flag.Bool("v", false, "print version and exit")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	config, configErr := explorer.LoadConfig()
	if configErr != nil {
		log.Printf("using default config: %v", configErr)
	}
	broker := explorer.NewBroker()
	midiContext := cmd.NewMidiContext(broker)
	model, err := explorer.NewModel(broker, config, midiContext)
	if err != nil {
		// only the summary template can fail; the defaults always work
		log.Printf("%v; using the default summary", err)
		config.SummaryTemplate = ""
		if model, err = explorer.NewModel(broker, config, midiContext); err != nil {
			log.Fatal(err)
		}
	}
	if configErr != nil {
		model.Alerts().Add(fmt.Sprintf("Using default config: %v", configErr), explorer.Warning)
	}
	if isFlagPassed("midi-input") && !model.MIDI().OpenByPrefix(*defaultMidiInput) {
		log.Printf("no MIDI input device found with prefix '%s'", *defaultMidiInput)
	}
	player := explorer.NewPlayer(broker, cmd.Synthers[0], config.SampleRate, config.Envelope())

	// without an audio device the lattice is still explorable, just silent
	audioCloser := func() error { return nil }
	if audioContext, err := oto.NewContext(config.SampleRate, *bufferSize); err != nil {
		log.Printf("audio output unavailable: %v", err)
		model.Alerts().Add(fmt.Sprintf("Audio output unavailable: %v", err), explorer.Error)
		done := make(chan struct{})
		go player.RunWithoutOutput(fmt.Errorf("audio output unavailable: %w", err), done)
		audioCloser = func() error { close(done); return nil }
	} else {
		audioCloser = audioContext.Play(func(buf tonnetz.AudioBuffer) error {
			player.Process(buf)
			return nil
		}).Close
	}

	window := gioui.NewWindow(model, cmd.Synthers[0])
	go func() {
		window.Main()
		if err := audioCloser(); err != nil {
			log.Printf("closing audio output: %v", err)
		}
		midiContext.Close()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		os.Exit(0)
	}()
	app.Main()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
