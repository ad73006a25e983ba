package game

import (
	"fmt"
	"math"
	"sort"
)

// outcomeBuckets shapes the advantage score into the 17-bucket probability
// table over the net end score. Positive keys are the hammer team scoring.
func outcomeBuckets(shot int, hammer Team, stones []PlacedStone, skill, advRed float64, sheet Sheet) (map[int]float64, error) {
	remaining := 15 - shot
	if remaining == 0 {
		return terminalBuckets(hammer, stones, sheet), nil
	}
	frac := float64(remaining) / 16

	advHammer := advRed
	if hammer == TeamYellow {
		advHammer = -advRed
	}
	mu := clamp(advHammer, -outcomeMeanClamp, outcomeMeanClamp)

	// Lower skill and more stones still to come both widen the spread.
	beta := betaBase + betaSkillWeight*(1-skill/100) + betaRemainWeight*(1-frac)

	capHammer := scoreCapacity(hammer, hammer, shot, stones)
	capSteal := scoreCapacity(hammer.Opponent(), hammer, shot, stones)

	weights := make(map[int]float64, 17)
	weights[0] = blankPrior * math.Exp(-beta*mu*mu)
	for k := 1; k <= capHammer; k++ {
		d := float64(k) - mu
		weights[k] = hammerPriors[k-1] * math.Exp(-beta*d*d)
	}
	for k := 1; k <= capSteal; k++ {
		d := float64(-k) - mu
		weights[-k] = stealPriors[k-1] * math.Exp(-beta*d*d)
	}

	var z float64
	for k := -8; k <= 8; k++ {
		z += weights[k]
	}
	if z <= 0 || math.IsNaN(z) {
		return nil, fmt.Errorf("outcome distribution has no feasible mass (shot=%d)", shot)
	}

	buckets := make(map[int]float64, 17)
	for k := -8; k <= 8; k++ {
		buckets[k] = weights[k] / z
	}
	return buckets, nil
}

// scoreCapacity is the most points a team could still take: its stones in
// play plus its remaining throws this end, capped at 8.
func scoreCapacity(team, hammer Team, shot int, stones []PlacedStone) int {
	inPlay := 0
	for _, s := range stones {
		if s.Team == team {
			inPlay++
		}
	}
	thrown := shot + 1
	hammerThrown := thrown / 2 // non-hammer throws first, so hammer has the smaller half
	remThrows := 8 - hammerThrown
	if team != hammer {
		remThrows = 8 - (thrown - hammerThrown)
	}
	capacity := inPlay + remThrows
	if capacity > 8 {
		capacity = 8
	}
	if capacity < 0 {
		capacity = 0
	}
	return capacity
}

// terminalBuckets computes the actual end score once no shots remain: order
// the in-house stones by distance to the button and count the run of
// closest same-team stones.
func terminalBuckets(hammer Team, stones []PlacedStone, sheet Sheet) map[int]float64 {
	type housed struct {
		team Team
		r    float64
	}
	var inHouse []housed
	for _, s := range stones {
		r := math.Hypot(s.X, s.Y)
		if r <= sheet.HouseRadius {
			inHouse = append(inHouse, housed{team: s.Team, r: r})
		}
	}

	buckets := make(map[int]float64, 17)
	for k := -8; k <= 8; k++ {
		buckets[k] = 0
	}

	if len(inHouse) == 0 {
		buckets[0] = 1
		return buckets
	}

	sort.SliceStable(inHouse, func(a, b int) bool { return inHouse[a].r < inHouse[b].r })

	scorer := inHouse[0].team
	count := 0
	for _, h := range inHouse {
		if h.team != scorer {
			break
		}
		count++
		if count == 8 {
			break
		}
	}

	k := count
	if scorer != hammer {
		k = -count
	}
	buckets[k] = 1
	return buckets
}
