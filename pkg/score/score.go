// Package score turns a label universe and a stream of vote events into a
// ranked list.
//
// The aggregation is a pure function: callers load labels and events from
// wherever they live (see package store) and hand them over on every call.
// Nothing is remembered between calls.
//
//	list := score.Aggregate([]string{"Alice", "Bob"}, []string{"Bob", "Bob"})
//	// list == [{Bob 2} {Alice 0}]
package score

import "slices"

// Entry is a single label with its vote count.
type Entry struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// RankedList holds entries sorted by descending score. Entries with equal
// scores keep the order in which their labels were first seen.
type RankedList []Entry

// Winner returns the top entry. ok is false for an empty list.
func (l RankedList) Winner() (e Entry, ok bool) {
	if len(l) == 0 {
		return Entry{}, false
	}
	return l[0], true
}

// Field returns every entry except the winner.
func (l RankedList) Field() RankedList {
	if len(l) <= 1 {
		return nil
	}
	return l[1:]
}

// Total returns the sum of all scores.
func (l RankedList) Total() int {
	n := 0
	for _, e := range l {
		n += e.Score
	}
	return n
}

// Aggregate merges the universe of known labels with vote events.
//
// Every label in universe appears with score 0 unless voted for. Duplicate
// universe labels collapse into the first occurrence. An event naming a label
// outside the universe adds that label with score 1, and later events for it
// increment normally, so free-text votes grow the list.
func Aggregate(universe, events []string) RankedList {
	index := make(map[string]int, len(universe))
	list := make(RankedList, 0, len(universe))

	for _, label := range universe {
		if _, ok := index[label]; ok {
			continue
		}
		index[label] = len(list)
		list = append(list, Entry{Label: label})
	}

	for _, label := range events {
		if i, ok := index[label]; ok {
			list[i].Score++
			continue
		}
		index[label] = len(list)
		list = append(list, Entry{Label: label, Score: 1})
	}

	slices.SortStableFunc(list, func(a, b Entry) int {
		return b.Score - a.Score
	})
	return list
}
