// Package policy implements the tabular node policy for a single
// information set: accumulated regrets, the regret-matching strategy,
// and the reach-weighted strategy sum that converges to equilibrium.
package policy

import (
	"bytes"
	"encoding/gob"

	"gonum.org/v1/gonum/floats"
)

// Policy implements cfr.NodePolicy by keeping a table of
// accumulated regrets and strategies.
type Policy struct {
	currentStrategy []float64

	regretSum   []float64
	strategySum []float64
}

// New returns a new Policy for a game node with the given number of actions.
func New(nActions int) *Policy {
	return &Policy{
		currentStrategy: uniformDist(nActions),
		regretSum:       make([]float64, nActions),
		strategySum:     make([]float64, nActions),
	}
}

// GetStrategy computes the current strategy by regret matching and adds it,
// weighted by the player's reach probability, to the strategy sum.
//
// The returned slice is owned by the Policy and is overwritten by the next call.
func (p *Policy) GetStrategy(reachP float64) []float64 {
	p.regretMatching()
	floats.AddScaled(p.strategySum, reachP, p.currentStrategy)
	return p.currentStrategy
}

// AddRegret accumulates instantaneousRegrets weighted by w.
func (p *Policy) AddRegret(w float64, instantaneousRegrets []float64) {
	floats.AddScaled(p.regretSum, w, instantaneousRegrets)
}

// Discount rescales positive regrets, negative regrets and the strategy sum.
// Factors of 1 leave the policy unchanged.
func (p *Policy) Discount(discountPositiveRegret, discountNegativeRegret, discountStrategySum float64) {
	if discountStrategySum != 1.0 {
		floats.Scale(discountStrategySum, p.strategySum)
	}

	if discountPositiveRegret != 1.0 {
		for i, x := range p.regretSum {
			if x > 0 {
				p.regretSum[i] *= discountPositiveRegret
			}
		}
	}

	if discountNegativeRegret != 1.0 {
		for i, x := range p.regretSum {
			if x < 0 {
				p.regretSum[i] *= discountNegativeRegret
			}
		}
	}
}

// GetAverageStrategy returns the normalized strategy sum, or the uniform
// distribution if the node has never been reached with positive probability.
func (p *Policy) GetAverageStrategy() []float64 {
	avgStrat := make([]float64, len(p.strategySum))

	total := floats.Sum(p.strategySum)
	if total > 0 {
		floats.ScaleTo(avgStrat, 1.0/total, p.strategySum)
	} else {
		for i := range avgStrat {
			avgStrat[i] = 1.0 / float64(len(avgStrat))
		}
	}

	return avgStrat
}

func (p *Policy) GetRegretSum() []float64 {
	return p.regretSum
}

func (p *Policy) GetStrategySum() []float64 {
	return p.strategySum
}

func (p *Policy) NumActions() int {
	return len(p.regretSum)
}

func (p *Policy) regretMatching() {
	copy(p.currentStrategy, p.regretSum)
	makePositive(p.currentStrategy)
	total := floats.Sum(p.currentStrategy)
	if total > 0 {
		floats.Scale(1.0/total, p.currentStrategy)
	} else {
		for i := range p.currentStrategy {
			p.currentStrategy[i] = 1.0 / float64(len(p.currentStrategy))
		}
	}
}

// GobDecode implements gob.GobDecoder.
func (p *Policy) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var nActions int
	if err := dec.Decode(&nActions); err != nil {
		return err
	}

	regretSum := make([]float64, 0, nActions)
	if err := dec.Decode(&regretSum); err != nil {
		return err
	}

	strategySum := make([]float64, 0, nActions)
	if err := dec.Decode(&strategySum); err != nil {
		return err
	}

	// Sums of the wrong length are treated as empty.
	p.regretSum = resize(regretSum, nActions)
	p.strategySum = resize(strategySum, nActions)
	p.currentStrategy = make([]float64, nActions)
	p.regretMatching()
	return nil
}

// GobEncode implements gob.GobEncoder.
func (p *Policy) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(p.NumActions()); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.regretSum); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.strategySum); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func resize(v []float64, n int) []float64 {
	if len(v) == n {
		return v
	}

	return make([]float64, n)
}

func uniformDist(n int) []float64 {
	result := make([]float64, n)
	floats.AddConst(1.0/float64(n), result)
	return result
}

func makePositive(v []float64) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0.0
		}
	}
}
