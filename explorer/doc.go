// Package explorer contains the data model of the tuning lattice explorer:
// selection, octave overrides, tuning and playback state, and the player
// that turns model messages into sound on the audio thread. The model and
// the player talk only through the Broker, so the GUI and the audio device
// never share state.
package explorer
