package analyzer

import "sort"

// tally counts string keys and remembers the order keys were first seen.
// Go maps have no stable iteration order, so every ordered view of the
// counts is derived from keys.
type tally struct {
	counts map[string]int
	keys   []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key]++
}

func (t *tally) len() int {
	return len(t.keys)
}

// ranked returns keys sorted by count descending. Equal counts keep
// first-seen order.
func (t *tally) ranked() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	sort.SliceStable(out, func(i, j int) bool {
		return t.counts[out[i]] > t.counts[out[j]]
	})
	return out
}
