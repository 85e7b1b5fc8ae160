package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gioui.org/unit"
	"github.com/tonnetz-go/tonnetz/explorer"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Window       WindowPreferences
		SummaryWidth int
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	if err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences); err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// MakePreferences returns the defaults overridden by the user's
// preferences.yml. A malformed file is reported but the defaults are still
// returned.
func MakePreferences() (Preferences, error) {
	preferences := loadDefaultPreferences()
	configDir, err := os.UserConfigDir()
	if err != nil {
		return preferences, nil
	}
	bytes, err := os.ReadFile(filepath.Join(configDir, explorer.ConfigDirName, "preferences.yml"))
	if errors.Is(err, fs.ErrNotExist) {
		return preferences, nil
	} else if err != nil {
		return preferences, err
	}
	custom := preferences
	if err := yaml.UnmarshalStrict(bytes, &custom); err != nil {
		return preferences, fmt.Errorf("preferences.yml: %w", err)
	}
	return custom, nil
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}
