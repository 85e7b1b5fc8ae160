package cmd

import (
	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/synth"
)

// Synthers lists the available synths, the default first.
var Synthers = []tonnetz.Synther{synth.GoSynther{}}
