package cfr

import (
	"encoding/gob"
	"io"

	"github.com/pkg/errors"

	"github.com/timpalpant/poker-cfr/internal/policy"
)

// LoadStrategyTable reads a StrategyTable previously written with MarshalTo.
func LoadStrategyTable(r io.Reader) (*StrategyTable, error) {
	dec := gob.NewDecoder(r)
	var params DiscountParams
	if err := dec.Decode(&params); err != nil {
		return nil, errors.Wrap(err, "decoding discount params")
	}

	var iter int
	if err := dec.Decode(&iter); err != nil {
		return nil, errors.Wrap(err, "decoding iteration")
	}

	var nPolicies int
	if err := dec.Decode(&nPolicies); err != nil {
		return nil, errors.Wrap(err, "decoding table size")
	}

	policies := make(map[string]*policy.Policy, nPolicies)
	for i := 0; i < nPolicies; i++ {
		var key string
		if err := dec.Decode(&key); err != nil {
			return nil, errors.Wrapf(err, "decoding key %d", i)
		}

		var p policy.Policy
		if err := dec.Decode(&p); err != nil {
			return nil, errors.Wrapf(err, "decoding policy %q", key)
		}

		policies[key] = &p
	}

	return &StrategyTable{
		params:      params,
		iter:        iter,
		policies:    policies,
		needsUpdate: make(map[*policy.Policy]struct{}),
	}, nil
}

// MarshalTo writes the complete state of the table to w, such that
// training may be resumed after reloading it with LoadStrategyTable.
func (st *StrategyTable) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(st.params); err != nil {
		return err
	}

	if err := enc.Encode(st.iter); err != nil {
		return err
	}

	if err := enc.Encode(len(st.policies)); err != nil {
		return err
	}

	for key, p := range st.policies {
		if err := enc.Encode(key); err != nil {
			return err
		}

		if err := enc.Encode(p); err != nil {
			return err
		}
	}

	return nil
}
