// Package envfile reads, resolves and writes the dotenv-style
// environment files used to configure roast. The format is plain
// text: one KEY=value assignment per line, blank lines and lines
// whose first non-blank character is '#' are comments, and values
// may refer to other variables with ${VAR} or $VAR.
package envfile

import (
	"fmt"
	"io"
	"strings"
)

type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LinePair
)

type QuoteStyle int

const (
	QuoteNone QuoteStyle = iota
	QuoteSingle
	QuoteDouble
)

// Line is one physical line of an env file. Blank and comment lines
// are kept so a parsed document can be written back out unchanged.
// For quoted pairs, Value holds the text between the quotes with
// escape sequences intact; Resolve applies escapes and interpolation.
type Line struct {
	Num      int
	Kind     LineKind
	Key      string
	Value    string
	Quote    QuoteStyle
	Exported bool
	Raw      string
}

// Document is a parsed env file. Lines appear in file order. Line
// numbers refer to positions in the source and are not renumbered
// when the document is edited.
type Document struct {
	Lines []*Line
	Path  string

	noFinalNewline bool
}

// Pairs returns the assignment lines in file order, including
// duplicates.
func (doc *Document) Pairs() []*Line {
	pairs := make([]*Line, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		if line.Kind == LinePair {
			pairs = append(pairs, line)
		}
	}
	return pairs
}

// Keys returns the distinct keys defined in the document, in order
// of first appearance.
func (doc *Document) Keys() []string {
	keys := make([]string, 0, len(doc.Lines))
	seen := make(map[string]bool)
	for _, line := range doc.Lines {
		if line.Kind == LinePair && !seen[line.Key] {
			seen[line.Key] = true
			keys = append(keys, line.Key)
		}
	}
	return keys
}

// Has returns true if the document assigns the key at least once.
func (doc *Document) Has(key string) bool {
	return doc.lastPair(key) != nil
}

// Get returns the stored (uninterpolated) value of the key. When a
// key is assigned more than once, the last assignment wins, matching
// Resolve. Returns the empty string for missing keys.
func (doc *Document) Get(key string) string {
	if line := doc.lastPair(key); line != nil {
		return line.Value
	}
	return ""
}

// Set assigns a literal value to the key, updating the last existing
// assignment or appending a new one. The value is quoted and escaped
// as needed so that Resolve returns it verbatim.
func (doc *Document) Set(key, value string) {
	line := doc.lastPair(key)
	if line == nil {
		line = &Line{
			Num:  len(doc.Lines) + 1,
			Kind: LinePair,
			Key:  key,
		}
		doc.Lines = append(doc.Lines, line)
	}
	if line.Quote == QuoteNone && needsQuotes(value) {
		line.Quote = QuoteDouble
	}
	if line.Quote == QuoteSingle && strings.ContainsRune(value, '\'') {
		line.Quote = QuoteDouble
	}
	switch line.Quote {
	case QuoteDouble:
		line.Value = escapeDouble(value)
	default:
		line.Value = value
	}
	line.Raw = line.render()
}

// Unset removes every assignment of the key. Returns true if at
// least one line was removed.
func (doc *Document) Unset(key string) bool {
	kept := doc.Lines[:0]
	removed := false
	for _, line := range doc.Lines {
		if line.Kind == LinePair && line.Key == key {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	doc.Lines = kept
	return removed
}

// String renders the document. Unmodified documents parsed from
// LF-terminated input render back byte for byte; CRLF input is
// normalized to LF.
func (doc *Document) String() string {
	var b strings.Builder
	for i, line := range doc.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Raw)
	}
	if len(doc.Lines) > 0 && !doc.noFinalNewline {
		b.WriteByte('\n')
	}
	return b.String()
}

// Write renders the document to w.
func (doc *Document) Write(w io.Writer) error {
	_, err := io.WriteString(w, doc.String())
	return err
}

func (doc *Document) lastPair(key string) *Line {
	for i := len(doc.Lines) - 1; i >= 0; i-- {
		line := doc.Lines[i]
		if line.Kind == LinePair && line.Key == key {
			return line
		}
	}
	return nil
}

func (line *Line) render() string {
	if line.Kind != LinePair {
		return line.Raw
	}
	prefix := ""
	if line.Exported {
		prefix = "export "
	}
	switch line.Quote {
	case QuoteSingle:
		return fmt.Sprintf("%s%s='%s'", prefix, line.Key, line.Value)
	case QuoteDouble:
		return fmt.Sprintf("%s%s=\"%s\"", prefix, line.Key, line.Value)
	default:
		return fmt.Sprintf("%s%s=%s", prefix, line.Key, line.Value)
	}
}

// needsQuotes reports whether a literal value survives unquoted
// storage. Values with quotes, comment markers, dollar signs, line
// breaks or surrounding whitespace do not.
func needsQuotes(value string) bool {
	if value != strings.TrimSpace(value) {
		return true
	}
	return strings.ContainsAny(value, "\"'#$\n\r\t")
}

var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeDouble(value string) string {
	return doubleQuoteEscaper.Replace(value)
}
