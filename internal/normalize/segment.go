// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed lexicon.txt
var lexiconData string

// segmenter splits letter runs such as "Thisisatest" into known words.
type segmenter struct {
	words  map[string]bool
	minLen int
	maxLen int
}

func newSegmenter(minLen int, extra []string, merged map[string]string) (*segmenter, error) {
	s := &segmenter{words: make(map[string]bool), minLen: minLen}

	add := func(w string) error {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || strings.HasPrefix(w, "#") {
			return nil
		}
		if !asciiLetters.MatchString(w) {
			return fmt.Errorf("lexicon word %q must contain only ASCII letters", w)
		}
		s.words[w] = true
		if len(w) > s.maxLen {
			s.maxLen = len(w)
		}
		return nil
	}

	for _, line := range strings.Split(lexiconData, "\n") {
		if err := add(line); err != nil {
			return nil, err
		}
	}
	for _, w := range extra {
		if err := add(w); err != nil {
			return nil, err
		}
	}
	// Pieces produced by merged-word replacement must stay whole, and the
	// merged forms themselves must never be produced by segmentation.
	for _, split := range merged {
		for _, piece := range strings.Fields(split) {
			if err := add(piece); err != nil {
				return nil, err
			}
		}
	}
	for k := range merged {
		delete(s.words, k)
	}
	return s, nil
}

// split returns run with spaces inserted between known words, or run
// unchanged when it is short, already a word, or cannot be fully segmented.
// Among full segmentations the one with the fewest words wins; ties go to
// the segmentation with the longest final word.
func (s *segmenter) split(run string) string {
	if len(run) < s.minLen {
		return run
	}
	lower := strings.ToLower(run)
	if s.words[lower] {
		return run
	}

	n := len(lower)
	const unreachable = -1
	count := make([]int, n+1)
	prev := make([]int, n+1)
	for i := 1; i <= n; i++ {
		count[i] = unreachable
		lo := i - s.maxLen
		if lo < 0 {
			lo = 0
		}
		for j := lo; j < i; j++ {
			if count[j] == unreachable || !s.words[lower[j:i]] {
				continue
			}
			if c := count[j] + 1; count[i] == unreachable || c < count[i] {
				count[i] = c
				prev[i] = j
			}
		}
	}
	if count[n] == unreachable || count[n] < 2 {
		return run
	}

	var cuts []int
	for i := n; i > 0; i = prev[i] {
		cuts = append(cuts, prev[i])
	}
	var b strings.Builder
	b.Grow(n + len(cuts))
	start := 0
	for k := len(cuts) - 1; k >= 0; k-- {
		if cuts[k] == 0 {
			continue
		}
		b.WriteString(run[start:cuts[k]])
		b.WriteByte(' ')
		start = cuts[k]
	}
	b.WriteString(run[start:])
	return b.String()
}
