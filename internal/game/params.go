package game

import (
	"fmt"
	"math"
)

// Params holds the physical and numerical knobs for one simulation run.
// Immutable for the duration of a call.
type Params struct {
	Mass     float64 `json:"mass"`      // stone mass [kg]
	G        float64 `json:"g"`         // gravitational acceleration [m/s^2]
	R        float64 `json:"r"`         // stone radius [m]
	RBand    float64 `json:"r_band"`    // running band radius [m]
	Mu0      float64 `json:"mu0"`       // base friction factor in mu(v) = mu0 / sqrt(v), already sweep-scaled
	Alpha    float64 `json:"alpha"`     // pivot friction weight
	Segments int     `json:"segments"`  // angular segments integrating band friction
	Dt       float64 `json:"dt"`        // integration time step [s]
	TMax     float64 `json:"t_max"`     // maximum simulated duration [s]
	VStop    float64 `json:"v_stop"`    // translational stop threshold [m/s]
	WStop    float64 `json:"w_stop"`    // angular stop threshold [rad/s]
	Rest     float64 `json:"rest"`      // stone-stone restitution coefficient
	VEps     float64 `json:"v_eps"`     // epsilon guarding unit-vector division
}

// DefaultParams are the Leaney draw-shot constants on typical club ice.
func DefaultParams() Params {
	return Params{
		Mass:     19.0,
		G:        9.81,
		R:        0.145,
		RBand:    0.065,
		Mu0:      0.008,
		Alpha:    0.014,
		Segments: 360,
		Dt:       0.01,
		TMax:     60.0,
		VStop:    0.01,
		WStop:    0.02,
		Rest:     0.9,
		VEps:     1e-6,
	}
}

// Validate fails fast on configuration errors per the contract: malformed
// knobs are the caller's bug, not something to paper over with NaN output.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"mass", p.Mass}, {"g", p.G}, {"r", p.R}, {"r_band", p.RBand},
		{"mu0", p.Mu0}, {"v_stop", p.VStop}, {"w_stop", p.WStop},
		{"v_eps", p.VEps},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v <= 0 {
			return fmt.Errorf("params: %s must be finite and positive, got %v", c.name, c.v)
		}
	}
	if p.Dt <= 0 || math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) {
		return fmt.Errorf("params: dt must be > 0, got %v", p.Dt)
	}
	if p.TMax <= 0 || math.IsNaN(p.TMax) || math.IsInf(p.TMax, 0) {
		return fmt.Errorf("params: t_max must be > 0, got %v", p.TMax)
	}
	if p.Segments < 1 {
		return fmt.Errorf("params: segments must be >= 1, got %d", p.Segments)
	}
	if p.Alpha < 0 || math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) {
		return fmt.Errorf("params: alpha must be finite and >= 0, got %v", p.Alpha)
	}
	if p.Rest < 0 || p.Rest > 1 || math.IsNaN(p.Rest) {
		return fmt.Errorf("params: restitution must be in [0,1], got %v", p.Rest)
	}
	return nil
}

// Inertia returns the moment of inertia about the vertical axis (solid disk).
func (p Params) Inertia() float64 {
	return 0.5 * p.Mass * p.R * p.R
}
