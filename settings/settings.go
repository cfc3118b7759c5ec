package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oomph-ac/mcpi/builder"
	"github.com/oomph-ac/mcpi/minecraft"
	"github.com/oomph-ac/mcpi/world"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

// Settings contains everything about the program that can be configured.
type Settings struct {
	Connection struct {
		// Address is the address of the Minecraft Pi API, usually served by RaspberryJuice.
		Address string
		// Timeout is the maximum duration of a dial or a single reply, such as "5s". Empty disables it.
		Timeout string
	}
	Greeting struct {
		Message string
		// Colour makes the message a format string with colour tags such as <green>, rendered to
		// formatting codes before posting.
		Colour bool
	}
	Build struct {
		Pattern   string
		Block     string
		Alternate string
		Length    int
		Width     int
		Height    int
		Spacing   int
		// Jump is how far players are moved up before building.
		Jump float64
	}
	Log struct {
		Level string
	}
	Sentry struct {
		// DSN is the sentry project errors are reported to. Empty disables reporting.
		DSN string
	}
}

// DefaultSettings returns the default settings: greet, lift every player by one block and build a vein of
// 100 diamond blocks in front of them.
func DefaultSettings() Settings {
	settings := Settings{}
	settings.Connection.Address = minecraft.DefaultAddress
	settings.Connection.Timeout = "5s"

	settings.Greeting.Message = "Hello from python"

	shape := builder.DefaultShape()
	settings.Build.Pattern = string(shape.Pattern)
	settings.Build.Block = shape.Block.Name
	settings.Build.Alternate = shape.Alternate.Name
	settings.Build.Length = shape.Length
	settings.Build.Width = shape.Width
	settings.Build.Height = shape.Height
	settings.Build.Spacing = shape.Spacing
	settings.Build.Jump = 1

	settings.Log.Level = logrus.InfoLevel.String()
	return settings
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}

// Validate checks that every setting holds a usable value.
func (s Settings) Validate() error {
	if _, err := s.Timeout(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(s.Log.Level); err != nil {
		return err
	}
	shape, err := s.Shape()
	if err != nil {
		return err
	}
	return shape.Validate()
}

// Timeout returns the parsed connection timeout.
func (s Settings) Timeout() (time.Duration, error) {
	if s.Connection.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Connection.Timeout)
	if err != nil {
		return 0, fmt.Errorf("connection timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("connection timeout must not be negative, got %v", d)
	}
	return d, nil
}

// Shape returns the shape described by the build settings.
func (s Settings) Shape() (builder.Shape, error) {
	b, ok := world.ByName(s.Build.Block)
	if !ok {
		return builder.Shape{}, fmt.Errorf("unknown block %q", s.Build.Block)
	}
	alt, ok := world.ByName(s.Build.Alternate)
	if !ok {
		return builder.Shape{}, fmt.Errorf("unknown alternate block %q", s.Build.Alternate)
	}
	return builder.Shape{
		Pattern:   builder.Pattern(s.Build.Pattern),
		Length:    s.Build.Length,
		Width:     s.Build.Width,
		Height:    s.Build.Height,
		Spacing:   s.Build.Spacing,
		Block:     b,
		Alternate: alt,
	}, nil
}
