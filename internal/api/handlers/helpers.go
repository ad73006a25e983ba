package handlers

import (
	"fmt"

	"github.com/playbonspiel/backend/internal/game"
)

// StoneDTO is the wire form of a stone's kinematic state. Team labels are
// translated to the core enum at this boundary only.
type StoneDTO struct {
	ID   int     `json:"id"`
	Team string  `json:"team"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	W    float64 `json:"w"`
}

// PlacedDTO is the wire form of a resting stone for evaluation.
type PlacedDTO struct {
	Team string  `json:"team"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func stoneFromDTO(d StoneDTO) (*game.Stone, error) {
	team, err := game.ParseTeam(d.Team)
	if err != nil {
		return nil, err
	}
	s := &game.Stone{
		ID:     d.ID,
		Team:   team,
		Pos:    game.NewVec2(d.X, d.Y),
		Vel:    game.NewVec2(d.VX, d.VY),
		W:      d.W,
		InPlay: true,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func stonesFromDTOs(in []StoneDTO) ([]*game.Stone, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("at least one stone required")
	}
	stones := make([]*game.Stone, 0, len(in))
	for i, d := range in {
		s, err := stoneFromDTO(d)
		if err != nil {
			return nil, fmt.Errorf("stone %d: %w", i, err)
		}
		stones = append(stones, s)
	}
	return stones, nil
}

func placedFromDTOs(in []PlacedDTO) ([]game.PlacedStone, error) {
	stones := make([]game.PlacedStone, 0, len(in))
	for i, d := range in {
		team, err := game.ParseTeam(d.Team)
		if err != nil {
			return nil, fmt.Errorf("stone %d: %w", i, err)
		}
		stones = append(stones, game.PlacedStone{Team: team, X: d.X, Y: d.Y})
	}
	return stones, nil
}
