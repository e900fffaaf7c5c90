package splitter

import (
	"path/filepath"
	"regexp"
	"unicode/utf8"
)

// Dialect selects the separator hierarchy for a document.
type Dialect int

const (
	Plain Dialect = iota
	Markdown
)

func (d Dialect) String() string {
	if d == Markdown {
		return "markdown"
	}
	return "plain"
}

// DialectFor picks Markdown for .md files unless markdown-aware splitting is
// turned off for the run.
func DialectFor(path string, markdownAware bool) Dialect {
	if markdownAware && filepath.Ext(path) == ".md" {
		return Markdown
	}
	return Plain
}

// Keep says which side of a split point the matched delimiter stays on.
type Keep int

const (
	// KeepEnd leaves the delimiter at the end of the preceding piece.
	KeepEnd Keep = iota
	// KeepStart makes the delimiter the beginning of the following piece.
	KeepStart
)

// Separator is one level of the hierarchy. A nil Pattern splits into single
// code points and always terminates the table.
type Separator struct {
	Name    string
	Pattern *regexp.Regexp
	Keep    Keep
}

type bounds struct {
	start, end int
}

// pieces cuts doc[start:end] at every match. The pieces are contiguous and
// non-empty, so they cover the input exactly.
func (s Separator) pieces(doc string, start, end int) []bounds {
	if s.Pattern == nil {
		out := make([]bounds, 0, end-start)
		for i := start; i < end; {
			_, size := utf8.DecodeRuneInString(doc[i:end])
			out = append(out, bounds{i, i + size})
			i += size
		}
		return out
	}

	var out []bounds
	cut := start
	for _, m := range s.Pattern.FindAllStringIndex(doc[start:end], -1) {
		at := start + m[1]
		if s.Keep == KeepStart {
			at = start + m[0]
		}
		if at > cut {
			out = append(out, bounds{cut, at})
			cut = at
		}
	}
	if cut < end {
		out = append(out, bounds{cut, end})
	}
	return out
}

func sep(name, pattern string, keep Keep) Separator {
	return Separator{Name: name, Pattern: regexp.MustCompile(pattern), Keep: keep}
}

var fallback = Separator{Name: "character"}

var plainSeparators = []Separator{
	sep("paragraph", `\n\n+`, KeepEnd),
	sep("line", `\n`, KeepEnd),
	sep("sentence", `[.!?]+ +`, KeepEnd),
	sep("space", ` +`, KeepEnd),
	fallback,
}

var markdownSeparators = append([]Separator{
	sep("h1", `(?m)^# `, KeepStart),
	sep("h2", `(?m)^## `, KeepStart),
	sep("h3", `(?m)^### `, KeepStart),
	sep("h4", `(?m)^#### `, KeepStart),
	sep("h5", `(?m)^##### `, KeepStart),
	sep("h6", `(?m)^###### `, KeepStart),
	sep("code_fence", "(?m)^(?:```|~~~)", KeepStart),
	sep("horizontal_rule", `(?m)^(?:-{3,}|\*{3,}|_{3,})[ \t]*$`, KeepStart),
	sep("list_item", `(?m)^[ \t]*[-*+] `, KeepStart),
	sep("ordered_list_item", `(?m)^[ \t]*\d+[.)] `, KeepStart),
	sep("blockquote", `(?m)^> `, KeepStart),
}, plainSeparators...)

// Separators returns the hierarchy for d, most structural first, ending with
// the code point fallback. The returned slice is a copy.
func Separators(d Dialect) []Separator {
	table := plainSeparators
	if d == Markdown {
		table = markdownSeparators
	}
	return append([]Separator(nil), table...)
}
