package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the game
type Config struct {
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	MovesPerSecond      int    `json:"moves_per_second"`
	FillPercent         int    `json:"fill_percent"`
	AutoRestart         bool   `json:"auto_restart"`
	StagnationThreshold int    `json:"stagnation_threshold"`
	MaxGenerations      int    `json:"max_generations"`
	Seed                int64  `json:"seed"`
	LogLevel            string `json:"log_level"`
}

// MovesPerSecondOptions are the playback rates offered to the user.
var MovesPerSecondOptions = []int{1, 2, 3, 4, 5, 10, 15, 20}

// FillPercentOptions are the autofill densities offered to the user.
var FillPercentOptions = []int{5, 10, 15, 20, 25, 30, 40, 50, 60, 70, 80, 90, 95}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		MovesPerSecond:      3,
		FillPercent:         15,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file, unset fields keep their defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate rejects dimensions, rates and densities the engine would refuse.
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return InvalidArgumentf("[Config.Validate] negative board size %dx%d", c.Width, c.Height)
	case c.MovesPerSecond <= 0 || c.MovesPerSecond > 1000:
		return InvalidArgumentf("[Config.Validate] moves_per_second %d outside [1,1000]", c.MovesPerSecond)
	case c.FillPercent < 0 || c.FillPercent > 100:
		return InvalidArgumentf("[Config.Validate] fill_percent %d outside [0,100]", c.FillPercent)
	case c.StagnationThreshold < 0 || c.MaxGenerations < 0:
		return InvalidArgumentf("[Config.Validate] thresholds must not be negative")
	}
	return nil
}

// IntervalMillis is the playback period in milliseconds for MovesPerSecond.
func (c Config) IntervalMillis() int {
	if c.MovesPerSecond <= 0 {
		return 0
	}
	return int(time.Second / time.Duration(c.MovesPerSecond) / time.Millisecond)
}
