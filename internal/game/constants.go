package game

// Positional-value model constants. Tuned against reference end states;
// change any of these and the golden evaluation fixtures move.

const (
	// Radial base value: boost * (1 - (r/houseRadius)^radialGamma).
	buttonBoostRadius = 1.3 // inner ring with the depth boost [m]
	buttonBoost       = 1.5
	radialGamma       = 1.5

	// Guard detection on the button-stone line.
	guardConeTan = 0.21 // ~12 degree half-angle
	guardPerpTol = 0.35 // perpendicular tolerance [m]
	guardFactor  = 1.35

	// Center-band boost, linear falloff to the band edge.
	centerBandHalf  = 0.6 // [m]
	centerBoostMax  = 0.15

	// Freeze: same-team stone nearby at comparable or shorter depth.
	freezeRadius     = 0.45 // center distance [m]
	freezeDepthSlack = 0.10 // [m]
	freezeFactor     = 1.25

	// Takeout vulnerability discount; guarded stones are harder to remove,
	// so their discount shrinks with the guard factor.
	takeoutEaseBase = 0.20

	// Double-takeout exposure.
	doublePairSepMax   = 0.60 // center distance between the pair [m]
	doubleAlignTol     = 0.35 // lateral offset between the pair [m]
	doubleBlockerBand  = 0.30 // approach corridor half-width [m]
	doubleDeductFrac   = 0.35 // bounded share of combined value at risk
	doubleValueFloor   = 0.40 // a stone keeps at least this share of its value
	doubleSkillWeight  = 2.0
	doubleRemainWeight = 1.0
	doubleLogitShift   = 2.0

	// End-level terms.
	congestionBandHalf = 0.50 // centerline band for guards past the house [m]
	congestionWeight   = 0.20
	hammerBaseline     = 0.9

	// Outcome spread: beta = betaBase + skill term + remaining term.
	betaBase          = 0.21650430650814
	betaSkillWeight   = 0.5
	betaRemainWeight  = 0.25
	outcomeMeanClamp  = 6.0
)

// Baseline end-score priors (softmax weights before shaping). blankPrior is
// a scored-zero (blank) end; hammerPriors[k-1] is the hammer team scoring k;
// stealPriors[k-1] is the non-hammer team scoring k.
var (
	blankPrior   = 0.29470017102491136
	hammerPriors = [8]float64{0.36, 0.22, 0.10, 0.04, 0.015, 0.006, 0.0025, 0.001}
	stealPriors  = [8]float64{0.14, 0.055, 0.020, 0.007, 0.0025, 0.001, 0.0004, 0.0002}
)
