package game

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Team identifies which side a stone belongs to. Exactly two teams play an end.
type Team int

const (
	TeamRed Team = iota
	TeamYellow
)

func (t Team) String() string {
	if t == TeamYellow {
		return "yellow"
	}
	return "red"
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamYellow
	}
	return TeamRed
}

// MarshalJSON emits the string label so wire payloads read "red"/"yellow".
func (t Team) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseTeam(label)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTeam is the single translation point from external string labels to
// the Team enum. Accepts "red"/"yellow" and the legacy "a"/"b" aliases.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "a":
		return TeamRed, nil
	case "yellow", "b":
		return TeamYellow, nil
	}
	return TeamRed, fmt.Errorf("unknown team label %q", s)
}

// Stone is the kinematic state of one stone. During a simulation run it is
// owned exclusively by the stepper; callers supply it beforehand and read it
// back afterward.
type Stone struct {
	ID     int     `json:"id"`
	Team   Team    `json:"team"`
	Pos    Vec2    `json:"pos"`
	Vel    Vec2    `json:"vel"`
	W      float64 `json:"w"` // angular velocity, rad/s (positive = CCW = in-turn)
	T      float64 `json:"t"` // elapsed time, s
	InPlay bool    `json:"in_play"`
}

// Stopped reports whether the stone is below both motion thresholds.
func (s *Stone) Stopped(p Params) bool {
	return s.Vel.Magnitude() < p.VStop && math.Abs(s.W) < p.WStop
}

// Validate fails fast on non-finite kinematics rather than letting NaN
// propagate through a run.
func (s *Stone) Validate() error {
	if !s.Pos.IsFinite() || !s.Vel.IsFinite() {
		return fmt.Errorf("stone %d: non-finite position or velocity", s.ID)
	}
	if math.IsNaN(s.W) || math.IsInf(s.W, 0) {
		return fmt.Errorf("stone %d: non-finite angular velocity", s.ID)
	}
	return nil
}
