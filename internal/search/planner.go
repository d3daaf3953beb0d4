package search

import (
	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/index"
	"github.com/gcbaptista/go-instant-search/internal/trigram"
)

// MaxSelected is the number of query trigrams used to generate candidates.
const MaxSelected = 3

// Selection holds the most selective trigrams of a query, ordered by
// ascending posting count. Unused slots hold trigram.Invalid.
type Selection struct {
	Trigrams [MaxSelected]trigram.Trigram
	counts   [MaxSelected]int
	n        int
}

// Len returns the number of selected trigrams (0..3).
func (s Selection) Len() int {
	return s.n
}

// Selected returns the selected trigrams, most selective first.
func (s Selection) Selected() []trigram.Trigram {
	return s.Trigrams[:s.n]
}

// SelectTrigrams picks the (up to) three query trigrams with the smallest
// non-zero count in a single pass. Trigrams that were never indexed are
// skipped so they do not empty the candidate set. Among equal counts the
// earlier trigram in query order wins.
func SelectTrigrams(query []trigram.Trigram, count func(trigram.Trigram) int) Selection {
	sel := Selection{Trigrams: [MaxSelected]trigram.Trigram{trigram.Invalid, trigram.Invalid, trigram.Invalid}}

	for _, t := range query {
		c := count(t)
		if c == 0 {
			continue
		}

		pos := sel.n
		for pos > 0 && c < sel.counts[pos-1] {
			pos--
		}
		if pos == MaxSelected {
			continue
		}

		last := sel.n
		if last == MaxSelected {
			last--
		} else {
			sel.n++
		}
		for i := last; i > pos; i-- {
			sel.Trigrams[i] = sel.Trigrams[i-1]
			sel.counts[i] = sel.counts[i-1]
		}
		sel.Trigrams[pos] = t
		sel.counts[pos] = c
	}
	return sel
}

// tallyLists returns the posting lists walked during candidate generation.
// In legacy mode a full selection walks the second list twice and never the third.
func tallyLists(sel Selection, mode config.CandidateTally) []trigram.Trigram {
	lists := sel.Selected()
	if mode == config.TallyLegacy && len(lists) == MaxSelected {
		return []trigram.Trigram{lists[0], lists[1], lists[1]}
	}
	return lists
}

// tally counts, for each document, how many of the walked posting lists contain it.
func tally(ti *index.TrigramIndex, lists []trigram.Trigram) map[index.DocID]int {
	matchCounts := make(map[index.DocID]int)
	for _, t := range lists {
		postings := ti.Postings(t)
		if postings == nil {
			continue
		}
		for _, id := range postings.Iterate() {
			matchCounts[id]++
		}
	}
	return matchCounts
}

// overlapScore is the percentage of query trigrams whose postings contain id, rounded down.
func overlapScore(ti *index.TrigramIndex, query []trigram.Trigram, id index.DocID) int {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for _, t := range query {
		if ti.Contains(t, id) {
			hits++
		}
	}
	return hits * 100 / len(query)
}
