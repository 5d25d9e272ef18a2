package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-gate/dsp/core"
	"github.com/cwbudde/algo-gate/dsp/gate"
	"gopkg.in/yaml.v3"
)

// Preset holds gate settings, loadable from a YAML file. Gain is an
// output trim in dB applied after the gate.
type Preset struct {
	BPM      float64 `yaml:"bpm"`
	Division int     `yaml:"division"`
	Duration float64 `yaml:"duration"`
	Mix      float64 `yaml:"mix"`
	Gain     float64 `yaml:"gain"`
}

// DefaultPreset returns sixteenth notes at 128 BPM, fully wet, at unity
// gain.
func DefaultPreset() Preset {
	return Preset{BPM: 128, Division: 16, Mix: 1}
}

// LoadPreset reads a preset file. Missing keys keep their defaults.
func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}

	p := DefaultPreset()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Preset{}, err
	}

	return p, nil
}

// Validate checks that the preset describes a usable gate cycle.
func (p Preset) Validate() error {
	if p.Duration < 0 {
		return fmt.Errorf("preset: duration must be >= 0: %f", p.Duration)
	}

	if p.Duration == 0 {
		if p.BPM <= 0 {
			return fmt.Errorf("preset: bpm must be > 0: %f", p.BPM)
		}
		if p.Division <= 0 {
			return fmt.Errorf("preset: division must be > 0: %d", p.Division)
		}
	}

	if p.Mix < 0 || p.Mix > 1 {
		return fmt.Errorf("preset: mix must be within [0, 1]: %f", p.Mix)
	}

	if math.IsNaN(p.Gain) || math.IsInf(p.Gain, 0) {
		return fmt.Errorf("preset: gain must be finite: %f", p.Gain)
	}

	return nil
}

// GateDuration returns the gate cycle length in seconds. An explicit
// duration wins over the tempo route.
func (p Preset) GateDuration() float64 {
	if p.Duration > 0 {
		return p.Duration
	}

	return gate.NoteDuration(p.BPM, p.Division)
}

// Parameters derives the gate parameters for this preset.
func (p Preset) Parameters() gate.Parameters {
	return gate.NewParameters(p.GateDuration(), p.Mix)
}

// GainScale converts the dB trim to a linear factor.
func (p Preset) GainScale() float64 {
	return core.DBToLinear(p.Gain)
}
