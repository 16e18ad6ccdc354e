package simulate

import (
	"math"
	"math/rand"
)

// Discrete Weibull survival function: S(k) = q^(k^beta). beta > 1 gives an
// increasing hazard (conflicts get harder to resolve as they drag on), beta
// < 1 a decreasing one (entrenched conflicts stabilize).
const (
	normalRegimeProb = 0.8
	normalBeta       = 1.5
	entrenchedBeta   = 0.7

	calibrationSamples = 500
	calibrationIters   = 50
	calibrationTol     = 0.5
)

// SampleDiscreteWeibull draws one variate via the inverse survival function:
// the smallest k with q^(k^beta) <= u. Out-of-range parameters yield 1.
func SampleDiscreteWeibull(q, beta float64, maxRounds int, rng *rand.Rand) int {
	if q <= 0 || q >= 1 || beta <= 0 {
		return 1
	}
	u := rng.Float64()
	if u <= 0 || u >= 1 {
		return 1
	}
	kPower := math.Log(u) / math.Log(q)
	if kPower <= 0 {
		return 1
	}
	k := int(math.Ceil(math.Pow(kPower, 1.0/beta)))
	if k < 1 {
		k = 1
	}
	if k > maxRounds {
		k = maxRounds
	}
	return k
}

// calibrateQ binary-searches the scale parameter so that clamped samples hit
// the target mean. Higher q produces longer durations.
func calibrateQ(targetMean float64, beta float64, roundsMin, roundsMax int, rng *rand.Rand) float64 {
	// q can sit arbitrarily close to 1: for beta=1.5 a mean of 100 rounds
	// already needs q above 0.999.
	qLow, qHigh := 0.01, 0.999999
	for i := 0; i < calibrationIters; i++ {
		qMid := (qLow + qHigh) / 2
		var sum float64
		for j := 0; j < calibrationSamples; j++ {
			s := SampleDiscreteWeibull(qMid, beta, roundsMax, rng)
			if s < roundsMin {
				s = roundsMin
			}
			sum += float64(s)
		}
		mean := sum / calibrationSamples
		if math.Abs(mean-targetMean) < calibrationTol {
			return qMid
		}
		if mean < targetMean {
			qLow = qMid
		} else {
			qHigh = qMid
		}
	}
	return (qLow + qHigh) / 2
}

// SampleTradeWarRounds draws game lengths from a two-regime mixture: 80%
// "negotiable" conflicts with increasing hazard, 20% "entrenched" ones with
// decreasing hazard and a 20% longer target mean. Results are clamped to
// [roundsMin, roundsMax].
func SampleTradeWarRounds(roundsMean float64, roundsMin, roundsMax, numSamples int, rng *rand.Rand) []int {
	normalQ := calibrateQ(roundsMean, normalBeta, roundsMin, roundsMax, rng)
	entrenchedQ := calibrateQ(roundsMean*1.2, entrenchedBeta, roundsMin, roundsMax, rng)

	samples := make([]int, numSamples)
	for i := range samples {
		var n int
		if rng.Float64() < normalRegimeProb {
			n = SampleDiscreteWeibull(normalQ, normalBeta, roundsMax, rng)
		} else {
			n = SampleDiscreteWeibull(entrenchedQ, entrenchedBeta, roundsMax, rng)
		}
		if n < roundsMin {
			n = roundsMin
		}
		if n > roundsMax {
			n = roundsMax
		}
		samples[i] = n
	}
	return samples
}

// SampleNormalRounds draws game lengths from a clamped normal distribution.
// Used when the caller wants precise control over the spread.
func SampleNormalRounds(roundsMean, roundsStd float64, roundsMin, roundsMax, numSamples int, rng *rand.Rand) []int {
	samples := make([]int, numSamples)
	for i := range samples {
		n := int(rng.NormFloat64()*roundsStd + roundsMean)
		if n < roundsMin {
			n = roundsMin
		}
		if n > roundsMax {
			n = roundsMax
		}
		samples[i] = n
	}
	return samples
}
