package smpc

import (
	"sort"
	"strings"
	"sync"
)

// Segment splits text on runs of newlines and tokenizes each paragraph on whitespace.
// Paragraphs with no tokens are dropped.
func Segment(text string) [][]string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' })
	paragraphs := make([][]string, 0, len(lines))
	for _, line := range lines {
		if words := strings.Fields(line); len(words) > 0 {
			paragraphs = append(paragraphs, words)
		}
	}
	return paragraphs
}

// TopWords returns up to n most frequent words across paragraphs, lowercased.
// Ties keep the order in which the words first appear.
func TopWords(paragraphs [][]string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, para := range paragraphs {
		for _, w := range para {
			w = lower(w)
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// Overlap counts the words of a that also occur in b. Both are expected to be duplicate-free.
func Overlap(a, b []string) int {
	shared := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				shared++
				break
			}
		}
	}
	return shared
}

func lower(w string) string { return strings.ToLower(w) }

// profile is the canonicalized form of one text. Paragraph tops are only
// needed once a comparison passes the gate, so they are computed on demand.
type profile struct {
	source     string
	paragraphs [][]string
	top        []string

	once  sync.Once
	paras [][]string
}

func newProfile(source string, paragraphs [][]string) *profile {
	return &profile{
		source:     source,
		paragraphs: paragraphs,
		top:        TopWords(paragraphs, TopN),
	}
}

func (p *profile) paragraphTops() [][]string {
	p.once.Do(func() {
		p.paras = make([][]string, len(p.paragraphs))
		for i, para := range p.paragraphs {
			p.paras[i] = TopWords([][]string{para}, TopN)
		}
	})
	return p.paras
}
