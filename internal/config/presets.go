package config

import "sirlab/internal/epi"

// Presets are the stock parameter sets per model variant, keyed as
// Presets[model][name].
var Presets = map[string]map[string]*Config{
	epi.KindSIR: {
		"influenza": {
			Model: epi.KindSIR, Population: 10000, Beta: 1.4, Gamma: 0.4,
			InitialInfected: 1, Days: 40, Points: 300,
		},
		"slow_wave": {
			Model: epi.KindSIR, Population: 50000, Beta: 0.3, Gamma: 0.15,
			InitialInfected: 10, Days: 200, Points: 300,
		},
	},
	epi.KindMassActionSIR: {
		// Fashion fad on a campus.
		"fad": {
			Model: epi.KindMassActionSIR, Population: 1000, Beta: 0.0005, Gamma: 0.1,
			InitialInfected: 5, Days: 60, Points: 300,
		},
		// Mobile app adoption and abandonment.
		"app": {
			Model: epi.KindMassActionSIR, Population: 10000, Beta: 0.0008, Gamma: 0.03,
			InitialInfected: 50, Days: 180, Points: 300,
		},
	},
	epi.KindRumor: {
		"campus": {
			Model: epi.KindRumor, Population: 1000, Beta: 0.5, Gamma: 0.2,
			InitialInfected: 5, Days: 30, Points: 300,
		},
		"viral": {
			Model: epi.KindRumor, Population: 1000, Beta: 0.7, Gamma: 0.3,
			InitialInfected: 5, Days: 30, Points: 300,
		},
	},
	epi.KindRationalRumor: {
		"baseline": {
			Model: epi.KindRationalRumor, Population: 1000, Beta: 0.5, Gamma: 0.8,
			InitialInfected: 5, InitialRemoved: 10, Days: 30, Points: 300,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
