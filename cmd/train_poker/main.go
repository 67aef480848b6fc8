// Command train_poker computes an approximate Nash equilibrium for Kuhn
// poker or Leduc Hold'em with chance-sampled CFR and prints the average
// strategy of every information set.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/poker-cfr"
	"github.com/timpalpant/poker-cfr/games"
	"github.com/timpalpant/poker-cfr/ldbstore"
	"github.com/timpalpant/poker-cfr/tree"
)

func main() {
	gameName := flag.String("game", "leduc", "Game variant to train: kuhn or leduc")
	iter := flag.Int("iter", 10000, "Number of CFR iterations to run")
	seed := flag.Int64("seed", 123, "Random seed for shuffling the deck")
	ldbPath := flag.String("ldb", "", "If set, keep the strategy table in a LevelDB database at this path")
	cacheSize := flag.Int("cache_size", 10000, "Number of policies to cache in memory when using -ldb")
	loadPath := flag.String("load", "", "Resume training from a strategy table saved with -save")
	savePath := flag.String("save", "", "Save the trained strategy table to this file")
	cfrPlus := flag.Bool("cfrplus", false, "Discard negative regrets (CFR+)")
	linear := flag.Bool("linear", false, "Weight iterations linearly (Linear CFR)")
	count := flag.Bool("count", false, "Count the information sets of the game and exit")
	flag.Parse()

	game, err := games.New(*gameName)
	if err != nil {
		glog.Fatal(err)
	}

	if *savePath != "" && *ldbPath != "" {
		glog.Fatal("-save is not supported with -ldb; the database is already persistent")
	}

	if *count {
		fmt.Printf("%s: %d information sets\n", game.Name(), tree.CountInfoSets(game))
		return
	}

	params := cfr.DiscountParams{
		UseRegretMatchingPlus: *cfrPlus,
		LinearWeighting:       *linear,
	}

	profile, closeProfile, err := newStrategyProfile(params, *ldbPath, *cacheSize, *loadPath)
	if err != nil {
		glog.Fatal(err)
	}
	defer closeProfile()

	glog.Infof("Training %s for %d iterations", game.Name(), *iter)
	rng := rand.New(rand.NewSource(*seed))
	trainer := cfr.NewTrainer(game, profile, cfr.NewRandomShuffle(rng))
	ev, strategies, err := trainer.Train(*iter)
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Trained %d information sets", profile.Len())
	if err := printStrategies(os.Stdout, ev, strategies); err != nil {
		glog.Fatal(err)
	}

	if *savePath != "" {
		table := profile.(*cfr.StrategyTable)
		if err := saveStrategyTable(*savePath, table); err != nil {
			glog.Fatal(err)
		}
		glog.Infof("Saved strategy table to %s", *savePath)
	}
}

func newStrategyProfile(params cfr.DiscountParams, ldbPath string, cacheSize int, loadPath string) (cfr.StrategyProfile, func(), error) {
	if ldbPath != "" {
		if loadPath != "" {
			return nil, nil, errors.New("-load and -ldb are mutually exclusive")
		}

		pt, err := ldbstore.New(ldbPath, &opt.Options{}, params, cacheSize)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := pt.Close(); err != nil {
				glog.Errorf("Error closing policy table: %v", err)
			}
		}
		return pt, closeFn, nil
	}

	if loadPath == "" {
		return cfr.NewStrategyTable(params), func() {}, nil
	}

	f, err := os.Open(loadPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening strategy table")
	}
	defer f.Close()

	table, err := cfr.LoadStrategyTable(bufio.NewReader(f))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "loading strategy table from %s", loadPath)
	}

	glog.Infof("Resuming from %s at iteration %d with %d infosets", loadPath, table.Iter(), table.Len())
	return table, func() {}, nil
}

func saveStrategyTable(path string, table *cfr.StrategyTable) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating strategy table file")
	}

	w := bufio.NewWriter(f)
	if err := table.MarshalTo(w); err != nil {
		f.Close()
		return errors.Wrap(err, "writing strategy table")
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "writing strategy table")
	}

	return f.Close()
}

func printStrategies(w io.Writer, ev float64, strategies map[string][]float64) error {
	keys := make([]string, 0, len(strategies))
	for key := range strategies {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Average utility: %.4f\n", ev)
	fmt.Fprintln(bw, "Strategy:")
	for _, key := range keys {
		fmt.Fprintf(bw, "State: %10s", key)
		for i, p := range strategies[key] {
			fmt.Fprintf(bw, "  %s: %6.3f", cfr.NthAction(i), p)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
