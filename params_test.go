package cfr

import (
	"math"
	"testing"
)

func TestGetDiscountFactors(t *testing.T) {
	testCases := []struct {
		name                      string
		params                    DiscountParams
		iter                      int
		positive, negative, total float64
	}{
		{"vanilla", DiscountParams{}, 10, 1.0, 1.0, 1.0},
		{"cfr+", DiscountParams{UseRegretMatchingPlus: true}, 10, 1.0, 0.0, 1.0},
		{"linear", DiscountParams{LinearWeighting: true}, 3, 1.0, 1.0, 0.75},
		{"discounted", DiscountParams{DiscountAlpha: 1.5, DiscountBeta: 0.0, DiscountGamma: 2.0},
			4, 8.0 / 9.0, 1.0, 0.64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos, neg, sum := tc.params.GetDiscountFactors(tc.iter)
			if math.Abs(pos-tc.positive) > 1e-9 || math.Abs(neg-tc.negative) > 1e-9 || math.Abs(sum-tc.total) > 1e-9 {
				t.Errorf("expected (%v, %v, %v), got (%v, %v, %v)",
					tc.positive, tc.negative, tc.total, pos, neg, sum)
			}
		})
	}
}

func TestDiscountParams_IsZero(t *testing.T) {
	if !(DiscountParams{}).IsZero() {
		t.Error("expected empty params to be zero")
	}

	if (DiscountParams{LinearWeighting: true}).IsZero() {
		t.Error("expected linear weighting params to be non-zero")
	}
}
