package study

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// Sampling weights for random mode.
const (
	weightOverdue = 2.0
	weightDue     = 1.0
	weightFuture  = 1.0
)

// randomOrder returns every word exactly once. Overdue words carry twice the
// weight of due and new words, a FutureFraction share of not-yet-due words
// competes at normal weight, and the rest of the future words follow in
// shuffled order.
//
// The weighted part is a weighted permutation (Efraimidis-Spirakis): each word
// draws key u^(1/w) and words are emitted by descending key.
func randomOrder(words []models.Word, now time.Time, opts Options) []models.Word {
	if len(words) == 0 {
		return nil
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	frac := DefaultFutureFraction
	if opts.FutureFraction != nil {
		frac = math.Max(0, math.Min(1, *opts.FutureFraction))
	}

	type keyed struct {
		word models.Word
		key  float64
	}
	var pool []keyed
	var future []models.Word
	for _, w := range words {
		switch DuenessOf(w, now) {
		case Overdue:
			pool = append(pool, keyed{word: w, key: weightedKey(rng, weightOverdue)})
		case DueToday:
			pool = append(pool, keyed{word: w, key: weightedKey(rng, weightDue)})
		default:
			future = append(future, w)
		}
	}

	rng.Shuffle(len(future), func(i, j int) { future[i], future[j] = future[j], future[i] })
	admitted := int(float64(len(future)) * frac)
	for _, w := range future[:admitted] {
		pool = append(pool, keyed{word: w, key: weightedKey(rng, weightFuture)})
	}
	rest := future[admitted:]

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].key > pool[j].key })

	out := make([]models.Word, 0, len(words))
	for _, k := range pool {
		out = append(out, k.word)
	}
	return append(out, rest...)
}

func weightedKey(rng *rand.Rand, weight float64) float64 {
	return math.Pow(rng.Float64(), 1/weight)
}
