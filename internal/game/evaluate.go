package game

import (
	"fmt"
	"math"
)

// stoneRadius is the nominal stone radius used by the positional model [m].
const stoneRadius = 0.145

// PlacedStone is a resting stone as seen by the evaluator: team plus
// button-centered coordinates in meters.
type PlacedStone struct {
	Team Team    `json:"team"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Advantage is the signed positional advantage for both teams (always
// mutual negatives) plus the probability distribution over the net end
// score. Bucket keys are fixed integers -8..8, positive meaning the hammer
// team scores; the keys are a load-bearing contract, never renumbered.
type Advantage struct {
	Red     float64         `json:"red"`
	Yellow  float64         `json:"yellow"`
	Buckets map[int]float64 `json:"buckets"`
}

// positionalEntry holds the per-stone derived quantities of one evaluation
// pass. Recomputed fresh on every call, never persisted.
type positionalEntry struct {
	r         float64
	guarded   bool
	frozen    bool
	ease      float64
	base      float64
	preDouble float64 // adjusted value before double-takeout exposure
	value     float64
	deduction float64
}

// EvaluatePosition converts a stone configuration into a signed advantage
// and an end-score distribution. shot is the 0-based index of the shot just
// thrown (0..15); skill is a percentage clamped to [10,90].
func EvaluatePosition(shot int, hammer Team, stones []PlacedStone, skill float64, sheet Sheet) (Advantage, error) {
	if shot < 0 || shot > 15 {
		return Advantage{}, fmt.Errorf("shot number must be in [0,15], got %d", shot)
	}
	if len(stones) > MaxStonesPerEnd {
		return Advantage{}, fmt.Errorf("at most %d stones per end, got %d", MaxStonesPerEnd, len(stones))
	}
	perTeam := map[Team]int{}
	for i, s := range stones {
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) || math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			return Advantage{}, fmt.Errorf("stone %d: non-finite coordinates", i)
		}
		perTeam[s.Team]++
		if perTeam[s.Team] > MaxStonesPerEnd/2 {
			return Advantage{}, fmt.Errorf("team %s has more than %d stones", s.Team, MaxStonesPerEnd/2)
		}
	}
	if math.IsNaN(skill) {
		return Advantage{}, fmt.Errorf("skill must be a finite percentage")
	}
	skill = clamp(skill, 10, 90)

	remaining := float64(15 - shot)
	frac := remaining / 16

	entries := make([]positionalEntry, len(stones))
	for i := range stones {
		entries[i] = scoreStone(i, stones, sheet)
	}
	applyDoubleTakeout(stones, entries, sheet, skill, frac)

	var scoreRed, scoreYellow float64
	for i, s := range stones {
		if s.Team == TeamRed {
			scoreRed += entries[i].value
		} else {
			scoreYellow += entries[i].value
		}
	}

	congestion := congestionTerm(stones, sheet, frac)

	baseline := hammerBaseline * math.Sqrt(remaining/16)
	if hammer == TeamYellow {
		baseline = -baseline
	}

	advRed := scoreRed - scoreYellow + congestion + baseline

	buckets, err := outcomeBuckets(shot, hammer, stones, skill, advRed, sheet)
	if err != nil {
		return Advantage{}, err
	}

	return Advantage{Red: advRed, Yellow: -advRed, Buckets: buckets}, nil
}

// scoreStone computes the adjusted positional value of one stone before the
// double-takeout pass.
func scoreStone(i int, stones []PlacedStone, sheet Sheet) positionalEntry {
	p := Vec2{X: stones[i].X, Y: stones[i].Y}
	r := p.Magnitude()
	e := positionalEntry{r: r}
	if r > sheet.HouseRadius {
		return e
	}

	boost := 1.0
	if r <= buttonBoostRadius {
		boost = buttonBoost
	}
	e.base = boost * (1 - math.Pow(r/sheet.HouseRadius, radialGamma))

	// Guard: another stone of either team on the button-stone line, between
	// this stone and the hog, inside a narrow cone and a tight perpendicular
	// tolerance.
	if r > 1e-9 {
		u := p.Times(1 / r)
		for j := range stones {
			if j == i {
				continue
			}
			g := Vec2{X: stones[j].X, Y: stones[j].Y}
			proj := g.Dot(u)
			if proj <= r+2*stoneRadius || proj > sheet.HogY {
				continue
			}
			perp := math.Abs(u.Cross(g))
			if perp <= guardPerpTol && perp <= guardConeTan*proj {
				e.guarded = true
				break
			}
		}
	}

	mult := 1.0
	if e.guarded {
		mult *= guardFactor
	}

	// Stones holding the centerline are worth more.
	ax := math.Abs(p.X)
	if ax < centerBandHalf {
		mult *= 1 + centerBoostMax*(1-ax/centerBandHalf)
	}

	// Freeze: a same-team stone within reach at comparable or shorter depth.
	for j := range stones {
		if j == i || stones[j].Team != stones[i].Team {
			continue
		}
		g := Vec2{X: stones[j].X, Y: stones[j].Y}
		if g.Minus(p).Magnitude() <= freezeRadius && g.Magnitude() <= r+freezeDepthSlack {
			e.frozen = true
			break
		}
	}
	if e.frozen {
		mult *= freezeFactor
	}

	// Takeout vulnerability discount, smaller when guarded.
	e.ease = takeoutEaseBase
	if e.guarded {
		e.ease = takeoutEaseBase / guardFactor
	}

	v := e.base * mult * (1 - e.ease)
	e.preDouble = v
	e.value = v
	return e
}

// applyDoubleTakeout deducts a bounded share of value from same-team pairs
// exposed to a single-shot double. Pairs are visited i<j in input order and
// the deductions mutate values as the iteration proceeds, so results depend
// on the input ordering; this matches the reference behavior and is kept
// deliberately.
func applyDoubleTakeout(stones []PlacedStone, entries []positionalEntry, sheet Sheet, skill, frac float64) {
	for i := 0; i < len(stones); i++ {
		if entries[i].r > sheet.HouseRadius || entries[i].value <= 0 {
			continue
		}
		for j := i + 1; j < len(stones); j++ {
			if stones[j].Team != stones[i].Team {
				continue
			}
			if entries[j].r > sheet.HouseRadius || entries[j].value <= 0 {
				continue
			}
			dx := stones[j].X - stones[i].X
			dy := stones[j].Y - stones[i].Y
			if math.Hypot(dx, dy) > doublePairSepMax || math.Abs(dx) > doubleAlignTol {
				continue
			}
			if approachBlockers(i, j, stones, sheet) > 0 {
				continue
			}

			z := doubleSkillWeight*(skill/100) + doubleRemainWeight*frac - doubleLogitShift
			pDouble := 1 / (1 + math.Exp(-z))

			combined := entries[i].value + entries[j].value
			if combined <= 0 {
				continue
			}
			total := doubleDeductFrac * pDouble * combined
			for _, idx := range [2]int{i, j} {
				share := total * entries[idx].value / combined
				floor := doubleValueFloor * entries[idx].preDouble
				next := entries[idx].value - share
				if next < floor {
					next = floor
				}
				entries[idx].deduction += entries[idx].value - next
				entries[idx].value = next
			}
		}
	}
}

// approachBlockers counts stones sitting in the shooting corridor between a
// pair and the hog line.
func approachBlockers(i, j int, stones []PlacedStone, sheet Sheet) int {
	top := math.Max(stones[i].Y, stones[j].Y)
	midX := (stones[i].X + stones[j].X) / 2
	n := 0
	for k := range stones {
		if k == i || k == j {
			continue
		}
		if stones[k].Y > top && stones[k].Y <= sheet.HogY && math.Abs(stones[k].X-midX) <= doubleBlockerBand {
			n++
		}
	}
	return n
}

// congestionTerm rewards centerline guards past the house, fading as the
// end empties out.
func congestionTerm(stones []PlacedStone, sheet Sheet, frac float64) float64 {
	red, yellow := 0, 0
	for _, s := range stones {
		r := math.Hypot(s.X, s.Y)
		if r <= sheet.HouseRadius || s.Y <= 0 || s.Y > sheet.HogY || math.Abs(s.X) > congestionBandHalf {
			continue
		}
		if s.Team == TeamRed {
			red++
		} else {
			yellow++
		}
	}
	return congestionWeight * float64(red-yellow) * math.Sqrt(frac)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
