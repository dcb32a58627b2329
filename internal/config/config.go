package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// XB aircraft constants and default solver settings.
const (
	DefaultCmWing       = -0.17413
	DefaultCmProp       = -0.0012
	DefaultCosDihedral  = 0.93606 // cos(20.6 deg)
	DefaultSinDihedral  = 0.352   // sin(20.6 deg)
	DefaultVolumeLong   = 0.355
	DefaultVolumeVert   = 0.0266
	DefaultLift3D       = 0.0781
	DefaultCd0          = 0.0046
	DefaultK            = 0.1050
	DefaultGuess        = -2.0
	DefaultTolerance    = 1e-6
	DefaultMaxIter      = 100
	DefaultStep         = 0.001
	DefaultGradFloor    = 1e-9
	DefaultNudge        = 0.1
	DefaultPerturbation = 1.0
	DefaultDataFile     = "datat.txt"
)

type Config struct {
	Name     string         `yaml:"name"`
	DataFile string         `yaml:"data_file"`
	Aircraft AircraftConfig `yaml:"aircraft"`
	Solver   SolverConfig   `yaml:"solver"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

// AircraftConfig holds the geometric and aerodynamic constants of the
// moment-balance equation. Volume ratios are (arm*St)/(c*S).
type AircraftConfig struct {
	CmWing             float64 `yaml:"cm_wing"`
	CmProp             float64 `yaml:"cm_prop"`
	SinDihedral        float64 `yaml:"sin_dihedral"`
	CosDihedral        float64 `yaml:"cos_dihedral"`
	VolumeLongitudinal float64 `yaml:"volume_longitudinal"`
	VolumeVertical     float64 `yaml:"volume_vertical"`
	Lift3D             float64 `yaml:"lift_3d"`
	Cd0                float64 `yaml:"cd0"`
	K                  float64 `yaml:"k"`
}

type SolverConfig struct {
	InitialGuess  float64 `yaml:"initial_guess"`
	Incidence     float64 `yaml:"incidence"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Step          float64 `yaml:"step"`
	GradientFloor float64 `yaml:"gradient_floor"`
	Nudge         float64 `yaml:"nudge"`
	Perturbation  float64 `yaml:"perturbation"`
}

type SweepConfig struct {
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers"`
}

func DefaultAircraft() AircraftConfig {
	return AircraftConfig{
		CmWing:             DefaultCmWing,
		CmProp:             DefaultCmProp,
		SinDihedral:        DefaultSinDihedral,
		CosDihedral:        DefaultCosDihedral,
		VolumeLongitudinal: DefaultVolumeLong,
		VolumeVertical:     DefaultVolumeVert,
		Lift3D:             DefaultLift3D,
		Cd0:                DefaultCd0,
		K:                  DefaultK,
	}
}

func DefaultSolver() SolverConfig {
	return SolverConfig{
		InitialGuess:  DefaultGuess,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIter,
		Step:          DefaultStep,
		GradientFloor: DefaultGradFloor,
		Nudge:         DefaultNudge,
		Perturbation:  DefaultPerturbation,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "xb",
		DataFile: DefaultDataFile,
		Aircraft: DefaultAircraft(),
		Solver:   DefaultSolver(),
		Sweep:    SweepConfig{From: -4, To: 4, Steps: 17},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys absent from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DihedralDeg recovers the dihedral angle from its sine and cosine.
func (a AircraftConfig) DihedralDeg() float64 {
	return math.Atan2(a.SinDihedral, a.CosDihedral) * 180 / math.Pi
}

// WithDihedral returns a copy with sine and cosine set from an angle in degrees.
func (a AircraftConfig) WithDihedral(deg float64) AircraftConfig {
	rad := deg * math.Pi / 180
	a.SinDihedral = math.Sin(rad)
	a.CosDihedral = math.Cos(rad)
	return a
}

func (a AircraftConfig) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"cm_wing", a.CmWing},
		{"cm_prop", a.CmProp},
		{"sin_dihedral", a.SinDihedral},
		{"cos_dihedral", a.CosDihedral},
		{"volume_longitudinal", a.VolumeLongitudinal},
		{"volume_vertical", a.VolumeVertical},
		{"lift_3d", a.Lift3D},
		{"cd0", a.Cd0},
		{"k", a.K},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("aircraft.%s must be finite, got %v", f.name, f.v)
		}
	}
	if d := a.DihedralDeg(); d < 0 || d >= 90 {
		return fmt.Errorf("dihedral must be in [0, 90) deg, got %.3f", d)
	}
	return nil
}

func (s SolverConfig) Validate() error {
	for name, v := range map[string]float64{
		"initial_guess": s.InitialGuess,
		"incidence":     s.Incidence,
		"perturbation":  s.Perturbation,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("solver.%s must be finite, got %v", name, v)
		}
	}
	if s.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", s.Tolerance)
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", s.MaxIterations)
	}
	if s.Step <= 0 {
		return fmt.Errorf("step must be positive, got %g", s.Step)
	}
	if s.Perturbation == 0 {
		return fmt.Errorf("perturbation must be non-zero")
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Aircraft.Validate(); err != nil {
		return err
	}
	return c.Solver.Validate()
}
