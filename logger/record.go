package logger

import "time"

// now is the record clock; swapped in tests that assert on timestamps.
var now = time.Now

// Pair is one ordered key/value attached to a structured log call.
type Pair struct {
	Key   string
	Value any
}

// Record is the ephemeral tuple handed to an encoder. It is owned by the
// emitting call; the delivery pipeline only ever sees the rendered line, so a
// Record is never shared across goroutines.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
	Pairs   []Pair
	Ctx     Context
}

// pairsFromKeyvals folds a variadic ...any of alternating keys and values
// into ordered Pairs. A trailing key without a value gets "(MISSING)", and a
// non-string key is stringified rather than dropped; logging must not lose
// caller data over a malformed call.
func pairsFromKeyvals(keyvals []any) []Pair {
	if len(keyvals) == 0 {
		return nil
	}
	pairs := make([]Pair, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = renderValue(keyvals[i])
		}
		var val any = "(MISSING)"
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}
		pairs = append(pairs, Pair{Key: key, Value: val})
	}
	return pairs
}
