// Package games maps configuration tags to the supported poker variants.
package games

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/timpalpant/poker-cfr"
	"github.com/timpalpant/poker-cfr/kuhn"
	"github.com/timpalpant/poker-cfr/leduc"
)

// ErrUnknownGame is the cause of errors returned by New for unsupported tags.
var ErrUnknownGame = errors.New("unknown game variant")

var registry = map[string]func() cfr.Game{
	kuhn.Name:  func() cfr.Game { return kuhn.NewGame() },
	leduc.Name: func() cfr.Game { return leduc.NewGame() },
}

// New returns the variant with the given name.
func New(name string) (cfr.Game, error) {
	newGame, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGame, "%q (supported: %v)", name, Names())
	}

	return newGame(), nil
}

// Names returns the supported variant names in sorted order.
func Names() []string {
	result := make([]string, 0, len(registry))
	for name := range registry {
		result = append(result, name)
	}

	sort.Strings(result)
	return result
}
