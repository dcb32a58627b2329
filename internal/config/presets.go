package config

import "sort"

var Presets = map[string]*Config{
	"xb": DefaultConfig(),
	"xb-nose-up": {
		Name: "xb-nose-up", DataFile: DefaultDataFile,
		Aircraft: DefaultAircraft(),
		Solver:   withIncidence(DefaultSolver(), 2.0),
		Sweep:    SweepConfig{From: -2, To: 6, Steps: 17},
	},
	"xb-flat-tail": {
		Name: "xb-flat-tail", DataFile: DefaultDataFile,
		Aircraft: DefaultAircraft().WithDihedral(0),
		Solver:   DefaultSolver(),
		Sweep:    SweepConfig{From: -4, To: 4, Steps: 17},
	},
	"xb-steep-vee": {
		Name: "xb-steep-vee", DataFile: DefaultDataFile,
		Aircraft: DefaultAircraft().WithDihedral(35),
		Solver:   DefaultSolver(),
		Sweep:    SweepConfig{From: -4, To: 4, Steps: 17},
	},
	"tail-only": {
		Name: "tail-only", DataFile: DefaultDataFile,
		Aircraft: AircraftConfig{SinDihedral: DefaultSinDihedral, CosDihedral: DefaultCosDihedral},
		Solver:   withGuess(DefaultSolver(), 5.0),
		Sweep:    SweepConfig{From: -4, To: 4, Steps: 9},
	},
}

func withIncidence(s SolverConfig, deg float64) SolverConfig {
	s.Incidence = deg
	return s
}

func withGuess(s SolverConfig, deg float64) SolverConfig {
	s.InitialGuess = deg
	return s
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
