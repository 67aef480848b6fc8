package ldbstore

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/timpalpant/poker-cfr"
	"github.com/timpalpant/poker-cfr/internal/policy"
)

var (
	policyPrefix = []byte("p:")
	iterKey      = []byte("m:iter")
	paramsKey    = []byte("m:params")
)

// PolicyTable is a tabular CFR policy table that keeps all node policies
// on disk in a LevelDB database. PolicyTable implements cfr.StrategyProfile.
//
// Recently used policies are kept decoded in an LRU cache. The cache is
// write-through: every update is immediately persisted.
type PolicyTable struct {
	params cfr.DiscountParams
	iter   int
	size   int

	db          *leveldb.DB
	rOpts       *opt.ReadOptions
	wOpts       *opt.WriteOptions
	cache       *lru.Cache
	needsUpdate map[string]struct{}
}

var _ cfr.StrategyProfile = (*PolicyTable)(nil)

// New opens (or creates) a PolicyTable backed by a LevelDB database at the
// given path, caching up to cacheSize decoded policies. If the database
// already holds a table, training resumes from its saved iteration and
// the stored DiscountParams take precedence over params.
func New(path string, opts *opt.Options, params cfr.DiscountParams, cacheSize int) (*PolicyTable, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating policy cache")
	}

	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening policy table %s", path)
	}

	pt := &PolicyTable{
		params:      params,
		iter:        1,
		db:          db,
		cache:       cache,
		needsUpdate: make(map[string]struct{}),
	}

	if err := pt.loadMetadata(); err != nil {
		db.Close()
		return nil, err
	}

	return pt, nil
}

func (pt *PolicyTable) loadMetadata() error {
	if buf, err := pt.db.Get(paramsKey, pt.rOpts); err == nil {
		var params cfr.DiscountParams
		if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&params); err != nil {
			return errors.Wrap(err, "decoding discount params")
		}
		pt.params = params
	} else if err != leveldb.ErrNotFound {
		return errors.Wrap(err, "reading discount params")
	}

	if buf, err := pt.db.Get(iterKey, pt.rOpts); err == nil {
		var iter int
		if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&iter); err != nil {
			return errors.Wrap(err, "decoding iteration")
		}
		pt.iter = iter
	} else if err != leveldb.ErrNotFound {
		return errors.Wrap(err, "reading iteration")
	}

	iter := pt.db.NewIterator(util.BytesPrefix(policyPrefix), pt.rOpts)
	for iter.Next() {
		pt.size++
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return errors.Wrap(err, "counting policies")
	}

	if pt.size > 0 {
		glog.Infof("Resuming policy table at iteration %d with %d infosets", pt.iter, pt.size)
	}

	return nil
}

// Close persists the table metadata and closes the underlying database.
func (pt *PolicyTable) Close() error {
	if err := pt.saveMetadata(); err != nil {
		pt.db.Close()
		return err
	}

	return pt.db.Close()
}

func (pt *PolicyTable) saveMetadata() error {
	batch := new(leveldb.Batch)
	for key, value := range map[string]interface{}{
		string(paramsKey): pt.params,
		string(iterKey):   pt.iter,
	} {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(value); err != nil {
			return errors.Wrapf(err, "encoding %s", key)
		}

		batch.Put([]byte(key), buf.Bytes())
	}

	return pt.db.Write(batch, pt.wOpts)
}

// Iter implements cfr.StrategyProfile.
func (pt *PolicyTable) Iter() int {
	return pt.iter
}

// Len implements cfr.StrategyProfile.
func (pt *PolicyTable) Len() int {
	return pt.size
}

// Update implements cfr.StrategyProfile.
func (pt *PolicyTable) Update() {
	if !pt.params.IsZero() {
		discountPos, discountNeg, discountSum := pt.params.GetDiscountFactors(pt.iter)
		for key := range pt.needsUpdate {
			p, ok := pt.load(key)
			if !ok {
				panic(fmt.Errorf("policy %q touched this iteration is missing", key))
			}

			p.Discount(discountPos, discountNeg, discountSum)
			pt.save(key, p)
		}

		glog.V(3).Infof("Discounted %d policies", len(pt.needsUpdate))
		pt.needsUpdate = make(map[string]struct{}, len(pt.needsUpdate))
	}

	pt.iter++
}

// GetPolicy implements cfr.StrategyProfile.
func (pt *PolicyTable) GetPolicy(is cfr.InfoSet, nActions int) cfr.NodePolicy {
	key := is.Key()
	p, ok := pt.load(key)
	if !ok {
		p = policy.New(nActions)
		pt.save(key, p)
		pt.size++
		if pt.size%100000 == 0 {
			glog.V(2).Infof("%d infosets", pt.size)
		}
	}

	if p.NumActions() != nActions {
		panic(fmt.Errorf("policy has n_actions=%v but node has n_actions=%v: %v",
			p.NumActions(), nActions, key))
	}

	if !pt.params.IsZero() {
		pt.needsUpdate[key] = struct{}{}
	}

	return &ldbPolicy{Policy: p, table: pt, key: key}
}

// AverageStrategies implements cfr.StrategyProfile.
func (pt *PolicyTable) AverageStrategies() map[string][]float64 {
	result := make(map[string][]float64, pt.size)
	iter := pt.db.NewIterator(util.BytesPrefix(policyPrefix), pt.rOpts)
	for iter.Next() {
		var p policy.Policy
		if err := p.GobDecode(iter.Value()); err != nil {
			panic(err)
		}

		key := string(iter.Key()[len(policyPrefix):])
		result[key] = p.GetAverageStrategy()
	}

	iter.Release()
	if err := iter.Error(); err != nil {
		panic(err)
	}

	return result
}

func (pt *PolicyTable) load(key string) (*policy.Policy, bool) {
	if cached, ok := pt.cache.Get(key); ok {
		return cached.(*policy.Policy), true
	}

	buf, err := pt.db.Get(dbKey(key), pt.rOpts)
	if err == leveldb.ErrNotFound {
		return nil, false
	} else if err != nil {
		panic(err)
	}

	p := &policy.Policy{}
	if err := p.GobDecode(buf); err != nil {
		panic(err)
	}

	pt.cache.Add(key, p)
	return p, true
}

func (pt *PolicyTable) save(key string, p *policy.Policy) {
	buf, err := p.GobEncode()
	if err != nil {
		panic(err)
	}

	if err := pt.db.Put(dbKey(key), buf, pt.wOpts); err != nil {
		panic(err)
	}

	pt.cache.Add(key, p)
}

func dbKey(key string) []byte {
	return append(append([]byte(nil), policyPrefix...), key...)
}

// ldbPolicy implements cfr.NodePolicy, with all updates immediately persisted
// to the underlying LevelDB database.
type ldbPolicy struct {
	*policy.Policy
	table *PolicyTable
	key   string
}

// GetStrategy implements cfr.NodePolicy.
func (l *ldbPolicy) GetStrategy(reachP float64) []float64 {
	strategy := l.Policy.GetStrategy(reachP)
	l.table.save(l.key, l.Policy)
	return strategy
}

// AddRegret implements cfr.NodePolicy.
func (l *ldbPolicy) AddRegret(w float64, instantaneousRegrets []float64) {
	l.Policy.AddRegret(w, instantaneousRegrets)
	l.table.save(l.key, l.Policy)
}
