package cfr

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/timpalpant/poker-cfr/internal/policy"
)

// StrategyTable implements traditional (tabular) CFR by storing accumulated
// regrets and strategy sums for each InfoSet, which is looked up by its Key().
//
// StrategyTable is not safe for concurrent use: node updates are
// read-modify-write sequences that must be serialized per key.
type StrategyTable struct {
	params DiscountParams
	iter   int

	// Map of InfoSet Key -> policy for that infoset.
	policies    map[string]*policy.Policy
	needsUpdate map[*policy.Policy]struct{}
}

var _ StrategyProfile = (*StrategyTable)(nil)

// NewStrategyTable creates a new StrategyTable with the given DiscountParams.
func NewStrategyTable(params DiscountParams) *StrategyTable {
	return &StrategyTable{
		params:      params,
		iter:        1,
		policies:    make(map[string]*policy.Policy),
		needsUpdate: make(map[*policy.Policy]struct{}),
	}
}

// Update implements StrategyProfile. It applies discounting to all
// policies that have been touched since the last call to Update().
func (st *StrategyTable) Update() {
	if !st.params.IsZero() {
		discountPos, discountNeg, discountSum := st.params.GetDiscountFactors(st.iter)
		for p := range st.needsUpdate {
			p.Discount(discountPos, discountNeg, discountSum)
		}

		glog.V(3).Infof("Discounted %d policies", len(st.needsUpdate))
	}

	st.needsUpdate = make(map[*policy.Policy]struct{}, len(st.needsUpdate))
	st.iter++
}

// Iter implements StrategyProfile.
func (st *StrategyTable) Iter() int {
	return st.iter
}

// Len implements StrategyProfile.
func (st *StrategyTable) Len() int {
	return len(st.policies)
}

// GetPolicy implements StrategyProfile.
func (st *StrategyTable) GetPolicy(is InfoSet, nActions int) NodePolicy {
	key := is.Key()
	p, ok := st.policies[key]
	if !ok {
		p = policy.New(nActions)
		st.policies[key] = p
		if len(st.policies)%100000 == 0 {
			glog.V(2).Infof("%d infosets", len(st.policies))
		}
	}

	if p.NumActions() != nActions {
		panic(fmt.Errorf("policy has n_actions=%v but node has n_actions=%v: %v",
			p.NumActions(), nActions, key))
	}

	if !st.params.IsZero() {
		st.needsUpdate[p] = struct{}{}
	}

	return p
}

// AverageStrategies implements StrategyProfile.
func (st *StrategyTable) AverageStrategies() map[string][]float64 {
	result := make(map[string][]float64, len(st.policies))
	for key, p := range st.policies {
		result[key] = p.GetAverageStrategy()
	}

	return result
}
