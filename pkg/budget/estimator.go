// Package budget shrinks aggregated research results to fit a downstream
// token or character budget.
package budget

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator maps a serialized payload to a size in budget units. Any
// monotonic proxy works; the compressor never assumes a particular unit.
type Estimator func(text string) int

var (
	encoderCache   = make(map[string]*tiktoken.Tiktoken)
	encoderCacheMu sync.RWMutex
)

func encoderForModel(model string) (*tiktoken.Tiktoken, error) {
	encoderCacheMu.RLock()
	if enc, ok := encoderCache[model]; ok {
		encoderCacheMu.RUnlock()
		return enc, nil
	}
	encoderCacheMu.RUnlock()

	encoderCacheMu.Lock()
	defer encoderCacheMu.Unlock()
	if enc, ok := encoderCache[model]; ok {
		return enc, nil
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Unknown models fall back to the GPT-4 family encoding.
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	encoderCache[model] = enc
	return enc, nil
}

// TokenEstimator returns a tiktoken-backed estimator for the given model.
func TokenEstimator(model string) (Estimator, error) {
	enc, err := encoderForModel(model)
	if err != nil {
		return nil, err
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}, nil
}

// CharEstimator counts plain characters.
func CharEstimator() Estimator {
	return func(text string) int { return len(text) }
}

// RoughTokenEstimator approximates one token per four characters. Useful
// when the tiktoken encodings are unavailable.
func RoughTokenEstimator() Estimator {
	return func(text string) int { return len(text) / 4 }
}
