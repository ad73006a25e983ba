package game

import (
	"fmt"
	"math"
)

// MaxStonesPerEnd is the hard cap of thrown stones in one end (8 per team).
const MaxStonesPerEnd = 16

// SimulateAll drives the multi-stone time loop: each tick every in-play,
// still-moving stone advances exactly one step and records a snapshot, stones
// whose centers leave the sheet rectangle are marked out of play, then a
// single collision pass runs over the post-integration positions. Returns a
// trajectory per stone id. Termination is bounded by duration/dt ticks.
func SimulateAll(p Params, duration float64, stones []*Stone, sheet Sheet) (map[int]Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("duration must be > 0, got %v", duration)
	}
	if duration > p.TMax {
		duration = p.TMax
	}
	if len(stones) > MaxStonesPerEnd {
		return nil, fmt.Errorf("at most %d stones per end, got %d", MaxStonesPerEnd, len(stones))
	}

	perTeam := map[Team]int{}
	seen := map[int]bool{}
	for _, s := range stones {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate stone id %d", s.ID)
		}
		seen[s.ID] = true
		perTeam[s.Team]++
		if perTeam[s.Team] > MaxStonesPerEnd/2 {
			return nil, fmt.Errorf("team %s has more than %d stones", s.Team, MaxStonesPerEnd/2)
		}
	}

	trajectories := make(map[int]Trajectory, len(stones))
	for _, s := range stones {
		trajectories[s.ID] = Trajectory{*s}
	}

	steps := int(duration / p.Dt)
	for tick := 0; tick < steps; tick++ {
		moving := false
		for _, s := range stones {
			if !s.InPlay || s.Stopped(p) {
				continue
			}
			moving = true
			stepOnce(s, p)
			if !sheet.Contains(s.Pos) {
				// State is retained for logging; the stone just stops
				// participating in forces and collisions.
				s.InPlay = false
			}
			trajectories[s.ID] = append(trajectories[s.ID], *s)
		}
		if !moving {
			break
		}
		ResolveCollisions(stones, p)
	}

	return trajectories, nil
}
