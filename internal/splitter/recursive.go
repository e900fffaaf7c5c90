// Package splitter implements recursive, separator-priority text chunking.
package splitter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roivaz/docsplit/internal/length"
)

// Span is a chunk of a document. Text is always doc[Start:End].
type Span struct {
	Text  string
	Start int
	End   int
}

// Splitter packs separator-delimited pieces into chunks of at most size
// measured units, sharing up to overlap units between neighbours.
type Splitter struct {
	size       int
	overlap    int
	metric     length.Metric
	separators []Separator
}

func New(size, overlap int, metric length.Metric) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("splitter: chunk size must be greater than zero, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("splitter: chunk overlap cannot be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("splitter: chunk overlap %d must be smaller than chunk size %d", overlap, size)
	}
	if metric == nil {
		metric = length.Characters{}
	}
	return &Splitter{
		size:       size,
		overlap:    overlap,
		metric:     metric,
		separators: Separators(Plain),
	}, nil
}

// Split chunks text using seps, or the plain table when seps is
// empty. Chunks are trimmed of surrounding whitespace; empty or
// whitespace-only text yields no chunks.
func (s *Splitter) Split(text string, seps []Separator) []Span {
	if text == "" {
		return nil
	}
	if len(seps) == 0 {
		seps = s.separators
	}
	return s.split(text, 0, len(text), seps)
}

func (s *Splitter) split(doc string, start, end int, seps []Separator) []Span {
	if len(seps) == 0 {
		if sp, ok := newSpan(doc, start, end); ok {
			return []Span{sp}
		}
		return nil
	}
	sep, rest := seps[0], seps[1:]

	var spans []Span
	var fitting []bounds
	for _, p := range sep.pieces(doc, start, end) {
		if s.measure(doc[p.start:p.end]) <= s.size {
			fitting = append(fitting, p)
			continue
		}
		spans = append(spans, s.merge(doc, fitting)...)
		fitting = nil
		if len(rest) == 0 {
			// Nothing left to split on: pass the unit through whole.
			if sp, ok := newSpan(doc, p.start, p.end); ok {
				spans = append(spans, sp)
			}
			continue
		}
		spans = append(spans, s.split(doc, p.start, p.end, rest)...)
	}
	return append(spans, s.merge(doc, fitting)...)
}

// merge greedily packs contiguous pieces. After a chunk closes, leading pieces
// are dropped until what remains fits in the overlap budget and leaves room for
// the next piece; the remainder opens the next chunk.
func (s *Splitter) merge(doc string, pieces []bounds) []Span {
	var spans []Span
	lastEnd := -1
	emit := func(from, to int) {
		sp, ok := newSpan(doc, from, to)
		if !ok || sp.End <= lastEnd {
			return
		}
		spans = append(spans, sp)
		lastEnd = sp.End
	}

	lo := 0
	for hi, p := range pieces {
		if hi > lo && s.measure(doc[pieces[lo].start:p.end]) > s.size {
			emit(pieces[lo].start, pieces[hi-1].end)
			for lo < hi && (s.measure(doc[pieces[lo].start:pieces[hi-1].end]) > s.overlap ||
				s.measure(doc[pieces[lo].start:p.end]) > s.size) {
				lo++
			}
		}
	}
	if lo < len(pieces) {
		emit(pieces[lo].start, pieces[len(pieces)-1].end)
	}
	return spans
}

func (s *Splitter) measure(text string) int {
	return s.metric.Measure(strings.TrimSpace(text))
}

func newSpan(doc string, start, end int) (Span, bool) {
	text := doc[start:end]
	left := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	right := len(strings.TrimRightFunc(text, unicode.IsSpace))
	if right <= left {
		return Span{}, false
	}
	return Span{Text: text[left:right], Start: start + left, End: start + right}, true
}
