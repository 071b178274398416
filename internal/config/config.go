package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
)

const (
	DefaultTFinal    = 10.0
	DefaultNumPoints = 1000
	DefaultTolerance = 1e-9
	DefaultDt        = 0.001
)

type Config struct {
	Integrator string  `yaml:"integrator"`
	T0         float64 `yaml:"t0"`
	TFinal     float64 `yaml:"t_final"`
	NumPoints  int     `yaml:"num_points"`
	Dt         float64 `yaml:"dt"`
	Tolerance  float64 `yaml:"tolerance"`

	Params    ParamsConfig    `yaml:"params"`
	InitState InitStateConfig `yaml:"init_state"`
}

type ParamsConfig struct {
	M1 float64 `yaml:"m1"`
	M2 float64 `yaml:"m2"`
	K1 float64 `yaml:"k1"`
	K2 float64 `yaml:"k2"`
	L1 float64 `yaml:"l1"`
	L2 float64 `yaml:"l2"`
	G  float64 `yaml:"g"`
}

// InitStateConfig holds equilibrium-relative initial displacements and
// velocities; absolute positions follow from the computed equilibrium.
type InitStateConfig struct {
	Y1 float64 `yaml:"y1"`
	V1 float64 `yaml:"v1"`
	Y2 float64 `yaml:"y2"`
	V2 float64 `yaml:"v2"`
}

func DefaultConfig() *Config {
	p := physics.DefaultParams()
	return &Config{
		Integrator: "rk45",
		TFinal:     DefaultTFinal,
		NumPoints:  DefaultNumPoints,
		Dt:         DefaultDt,
		Tolerance:  DefaultTolerance,
		Params: ParamsConfig{
			M1: p.M1, M2: p.M2,
			K1: p.K1, K2: p.K2,
			L1: p.L1, L2: p.L2,
			G: p.G,
		},
		InitState: InitStateConfig{Y1: 0.05, Y2: 0.03},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToParams validates the physical constants.
func (c *Config) ToParams() (physics.Params, error) {
	pc := c.Params
	return physics.NewParams(pc.M1, pc.M2, pc.K1, pc.K2, pc.L1, pc.L2, pc.G)
}

// ToSimConfig maps the file-level settings onto a simulation window.
func (c *Config) ToSimConfig() sim.Config {
	sc := sim.DefaultConfig()
	sc.T0 = c.T0
	if c.TFinal != 0 {
		sc.TFinal = c.TFinal
	}
	if c.NumPoints != 0 {
		sc.NumPoints = c.NumPoints
	}
	if c.Dt != 0 {
		sc.Dt = c.Dt
	}
	if c.Tolerance != 0 {
		sc.Tol = c.Tolerance
	}
	return sc
}
