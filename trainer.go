package cfr

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ShuffleFunc permutes a deck in place. It is the only source of
// randomness in training.
type ShuffleFunc func(deck []Card)

// NewRandomShuffle returns a ShuffleFunc drawing uniform permutations from rng.
func NewRandomShuffle(rng *rand.Rand) ShuffleFunc {
	return func(deck []Card) {
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
	}
}

// Trainer runs chance-sampled CFR self-play for one game variant.
type Trainer struct {
	game    Game
	profile StrategyProfile
	shuffle ShuffleFunc
	cfr     *ChanceSamplingCFR

	deck []Card
}

// NewTrainer creates a Trainer for game. If profile is nil, a new in-memory
// StrategyTable is used. If shuffle is nil, decks are shuffled with the
// global math/rand source.
func NewTrainer(game Game, profile StrategyProfile, shuffle ShuffleFunc) *Trainer {
	if profile == nil {
		profile = NewStrategyTable(DiscountParams{})
	}

	if shuffle == nil {
		shuffle = func(deck []Card) {
			rand.Shuffle(len(deck), func(i, j int) {
				deck[i], deck[j] = deck[j], deck[i]
			})
		}
	}

	return &Trainer{
		game:    game,
		profile: profile,
		shuffle: shuffle,
		cfr:     NewChanceSampling(game, profile),
		deck:    game.Deck(),
	}
}

// Game returns the variant being trained.
func (t *Trainer) Game() Game {
	return t.game
}

// StrategyProfile returns the table of information sets learned so far.
func (t *Trainer) StrategyProfile() StrategyProfile {
	return t.profile
}

// Train runs the given number of iterations, reshuffling the deck before
// each one. It returns the average value of the game to player 0 over
// those iterations, and the average strategy of every information set
// visited so far.
func (t *Trainer) Train(iterations int) (float64, map[string][]float64, error) {
	if iterations <= 0 {
		return 0, nil, errors.Errorf("iterations must be positive, got %d", iterations)
	}

	logEvery := iterations / 10
	var totalValue float64
	for i := 1; i <= iterations; i++ {
		t.shuffle(t.deck)
		totalValue += t.cfr.Run(t.deck)
		t.profile.Update()

		if logEvery > 0 && i%logEvery == 0 {
			glog.V(1).Infof("[%s iter=%d] Expected game value: %.4f (%d infosets)",
				t.game.Name(), t.profile.Iter()-1, totalValue/float64(i), t.profile.Len())
		}
	}

	return totalValue / float64(iterations), t.profile.AverageStrategies(), nil
}
