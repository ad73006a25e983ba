package game

import (
	"math"
	"testing"
)

func mustEvaluate(t *testing.T, shot int, hammer Team, stones []PlacedStone, skill float64) Advantage {
	t.Helper()
	adv, err := EvaluatePosition(shot, hammer, stones, skill, StandardSheet())
	if err != nil {
		t.Fatalf("EvaluatePosition: %v", err)
	}
	return adv
}

func checkBucketSum(t *testing.T, adv Advantage) {
	t.Helper()
	var sum float64
	for k := -8; k <= 8; k++ {
		p, ok := adv.Buckets[k]
		if !ok {
			t.Fatalf("bucket %d missing", k)
		}
		if p < 0 {
			t.Fatalf("bucket %d negative: %v", k, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("buckets sum to %.12f, want 1", sum)
	}
}

// Empty sheet after the first stone sails through: the advantage is exactly
// the hammer baseline and the distribution sits on the fitted priors.
func TestBlankFirstShot(t *testing.T) {
	adv := mustEvaluate(t, 0, TeamRed, nil, 50)

	if math.Abs(adv.Red-0.8714212528966688) > 1e-12 {
		t.Errorf("advantage.red = %.16f, want 0.8714212528966688", adv.Red)
	}
	if math.Abs(adv.Buckets[1]-0.4966673819608179) > 1e-12 {
		t.Errorf("P(hammer scores 1) = %.16f, want 0.4966673819608179", adv.Buckets[1])
	}
	if math.Abs(adv.Buckets[0]-0.28418596975126736) > 1e-12 {
		t.Errorf("P(blank) = %.16f, want 0.28418596975126736", adv.Buckets[0])
	}
	// Non-hammer has only 7 throws left, so a steal of 8 is infeasible.
	if adv.Buckets[-8] != 0 {
		t.Errorf("P(steal 8) should be zeroed, got %v", adv.Buckets[-8])
	}
	checkBucketSum(t, adv)
}

func TestFinalStoneDeterministicScore(t *testing.T) {
	stones := []PlacedStone{
		{Team: TeamRed, X: 0.10, Y: 0.20},
		{Team: TeamRed, X: -0.30, Y: 0.55},
		{Team: TeamRed, X: 0.25, Y: -0.40},
		{Team: TeamYellow, X: 1.10, Y: 0.90},
		{Team: TeamYellow, X: -1.20, Y: 0.40},
		{Team: TeamYellow, X: 0.30, Y: 1.55},
		{Team: TeamYellow, X: -0.70, Y: -1.30},
	}
	adv := mustEvaluate(t, 15, TeamRed, stones, 50)

	// Three red stones sit closer than every yellow: red scores exactly 3.
	for k := -8; k <= 8; k++ {
		want := 0.0
		if k == 3 {
			want = 1.0
		}
		if adv.Buckets[k] != want {
			t.Errorf("bucket %d = %v, want %v", k, adv.Buckets[k], want)
		}
	}
}

func TestFinalStoneBlankEnd(t *testing.T) {
	stones := []PlacedStone{
		{Team: TeamRed, X: 2.0, Y: 1.5},
		{Team: TeamRed, X: -1.5, Y: 2.5},
		{Team: TeamYellow, X: 1.9, Y: -0.9},
		{Team: TeamYellow, X: -2.0, Y: 0.8},
	}
	adv := mustEvaluate(t, 15, TeamYellow, stones, 50)

	if adv.Red != 0 || adv.Yellow != 0 {
		t.Errorf("no stone in the house and no shots left: advantage must be 0, got %v/%v", adv.Red, adv.Yellow)
	}
	if adv.Buckets[0] != 1 {
		t.Errorf("P(blank) = %v, want 1", adv.Buckets[0])
	}
	checkBucketSum(t, adv)
}

// Golden mid-end fixture pinned against the reference evaluation.
func TestMidEndGolden(t *testing.T) {
	stones := []PlacedStone{
		{Team: TeamRed, X: 0.05, Y: 0.30},
		{Team: TeamYellow, X: -0.25, Y: 0.95},
		{Team: TeamRed, X: 0.15, Y: 3.10},
		{Team: TeamYellow, X: 0.40, Y: -0.60},
		{Team: TeamRed, X: -0.85, Y: 1.40},
		{Team: TeamYellow, X: 0.10, Y: 0.85},
	}
	adv := mustEvaluate(t, 9, TeamYellow, stones, 65)

	want := map[string]struct{ got, want float64 }{
		"advantage.red": {adv.Red, -1.7341057807464375},
		"bucket[+1]":    {adv.Buckets[1], 0.45984837574857174},
		"bucket[+2]":    {adv.Buckets[2], 0.36317515235819176},
		"bucket[0]":     {adv.Buckets[0], 0.09739527942946238},
		"bucket[-1]":    {adv.Buckets[-1], 0.0040027417787216095},
	}
	for name, v := range want {
		if math.Abs(v.got-v.want) > 1e-9 {
			t.Errorf("%s = %.16f, want %.16f", name, v.got, v.want)
		}
	}
	checkBucketSum(t, adv)
}

func TestAdvantagesAreMutuallyNegated(t *testing.T) {
	stones := []PlacedStone{
		{Team: TeamRed, X: 0.2, Y: 0.4},
		{Team: TeamYellow, X: -0.9, Y: 1.1},
		{Team: TeamRed, X: 0.1, Y: 4.2},
	}
	for shot := 0; shot <= 15; shot++ {
		adv := mustEvaluate(t, shot, TeamYellow, stones, 70)
		if adv.Red != -adv.Yellow {
			t.Fatalf("shot %d: advantage not antisymmetric: %v vs %v", shot, adv.Red, adv.Yellow)
		}
		checkBucketSum(t, adv)
	}
}

func TestGuardRaisesStoneValue(t *testing.T) {
	lone := mustEvaluate(t, 4, TeamRed, []PlacedStone{
		{Team: TeamRed, X: 0, Y: 0.5},
	}, 50)
	guarded := mustEvaluate(t, 4, TeamRed, []PlacedStone{
		{Team: TeamRed, X: 0, Y: 0.5},
		{Team: TeamRed, X: 0.05, Y: 3.0},
	}, 50)
	if guarded.Red <= lone.Red {
		t.Errorf("guarded position should score higher: %v vs %v", guarded.Red, lone.Red)
	}
}

func TestFeasibilityLateEnd(t *testing.T) {
	// Shot 14: hammer has one throw left, non-hammer none, nothing in play.
	adv := mustEvaluate(t, 14, TeamRed, nil, 50)
	for k := -8; k <= 8; k++ {
		if k == 0 || k == 1 {
			if adv.Buckets[k] <= 0 {
				t.Errorf("bucket %d should carry mass, got %v", k, adv.Buckets[k])
			}
			continue
		}
		if adv.Buckets[k] != 0 {
			t.Errorf("bucket %d infeasible but has mass %v", k, adv.Buckets[k])
		}
	}
	checkBucketSum(t, adv)
}

func TestEvaluateDeterministic(t *testing.T) {
	stones := []PlacedStone{
		{Team: TeamYellow, X: 0.3, Y: -0.2},
		{Team: TeamRed, X: -0.4, Y: 0.9},
	}
	a := mustEvaluate(t, 7, TeamRed, stones, 55)
	b := mustEvaluate(t, 7, TeamRed, stones, 55)
	if a.Red != b.Red {
		t.Errorf("advantage not deterministic: %v vs %v", a.Red, b.Red)
	}
	for k := -8; k <= 8; k++ {
		if a.Buckets[k] != b.Buckets[k] {
			t.Errorf("bucket %d not deterministic", k)
		}
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	sheet := StandardSheet()

	if _, err := EvaluatePosition(16, TeamRed, nil, 50, sheet); err == nil {
		t.Error("expected error for shot > 15")
	}
	if _, err := EvaluatePosition(-1, TeamRed, nil, 50, sheet); err == nil {
		t.Error("expected error for negative shot")
	}
	if _, err := EvaluatePosition(3, TeamRed, []PlacedStone{{Team: TeamRed, X: math.Inf(1), Y: 0}}, 50, sheet); err == nil {
		t.Error("expected error for non-finite coordinates")
	}

	var nine []PlacedStone
	for i := 0; i < 9; i++ {
		nine = append(nine, PlacedStone{Team: TeamYellow, X: float64(i), Y: 0})
	}
	if _, err := EvaluatePosition(10, TeamRed, nine, 50, sheet); err == nil {
		t.Error("expected error for 9 stones on one team")
	}
}

func TestSkillIsClamped(t *testing.T) {
	low := mustEvaluate(t, 5, TeamRed, nil, -40)
	floor := mustEvaluate(t, 5, TeamRed, nil, 10)
	if low.Buckets[1] != floor.Buckets[1] {
		t.Errorf("skill below 10 should clamp: %v vs %v", low.Buckets[1], floor.Buckets[1])
	}
	high := mustEvaluate(t, 5, TeamRed, nil, 400)
	ceil := mustEvaluate(t, 5, TeamRed, nil, 90)
	if high.Buckets[1] != ceil.Buckets[1] {
		t.Errorf("skill above 90 should clamp: %v vs %v", high.Buckets[1], ceil.Buckets[1])
	}
}

func TestParseTeam(t *testing.T) {
	cases := map[string]Team{
		"red": TeamRed, "RED": TeamRed, "a": TeamRed,
		"yellow": TeamYellow, "Yellow": TeamYellow, "b": TeamYellow,
	}
	for in, want := range cases {
		got, err := ParseTeam(in)
		if err != nil || got != want {
			t.Errorf("ParseTeam(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTeam("blue"); err == nil {
		t.Error("expected error for unknown team label")
	}
}
