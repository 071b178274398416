package config

import "sort"

// Presets are named, ready-to-run scenarios. "textbook" reproduces the
// worked example whose frequencies and mode shapes are known by hand.
var Presets = map[string]*Config{
	"default": {
		Integrator: "rk45", TFinal: 10.0, NumPoints: 1000, Tolerance: DefaultTolerance,
		Params:    ParamsConfig{M1: 1.0, M2: 2.0, K1: 100.0, K2: 50.0, L1: 0.1, L2: 0.15, G: 9.81},
		InitState: InitStateConfig{Y1: 0.05, Y2: 0.03},
	},
	"textbook": {
		Integrator: "rk45", TFinal: 5.0, NumPoints: 1000, Tolerance: DefaultTolerance,
		Params:    ParamsConfig{M1: 0.020, M2: 0.030, K1: 10.32, K2: 10.32, G: 9.81},
		InitState: InitStateConfig{Y2: 0.055},
	},
	"pluck": {
		Integrator: "rk45", TFinal: 10.0, NumPoints: 1000, Tolerance: DefaultTolerance,
		Params:    ParamsConfig{M1: 1.0, M2: 2.0, K1: 100.0, K2: 50.0, L1: 0.1, L2: 0.15, G: 9.81},
		InitState: InitStateConfig{Y1: 0.08},
	},
	"counterphase": {
		Integrator: "rk45", TFinal: 10.0, NumPoints: 1000, Tolerance: DefaultTolerance,
		Params:    ParamsConfig{M1: 1.0, M2: 1.0, K1: 80.0, K2: 80.0, L1: 0.1, L2: 0.1, G: 9.81},
		InitState: InitStateConfig{Y1: 0.04, Y2: -0.04},
	},
	"stiff": {
		Integrator: "rk45", TFinal: 4.0, NumPoints: 2000, Tolerance: 1e-10,
		Params:    ParamsConfig{M1: 0.05, M2: 4.0, K1: 5000.0, K2: 2.0, L1: 0.05, L2: 0.3, G: 9.81},
		InitState: InitStateConfig{Y1: 0.01, Y2: 0.05},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
