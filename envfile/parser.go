package envfile

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFile reads and parses the env file at path.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, path)
}

// ParseString parses env file content held in memory.
func ParseString(content string) (*Document, error) {
	return parse(content, "")
}

// Parse parses env file content from r. The name appears in parse
// errors and is recorded as the document's Path.
func Parse(r io.Reader, name string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %v", name, err)
	}
	return parse(string(data), name)
}

func parse(content, name string) (*Document, error) {
	doc := &Document{Path: name}
	if content == "" {
		return doc, nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	doc.noFinalNewline = !strings.HasSuffix(normalized, "\n")
	rawLines := strings.Split(normalized, "\n")
	if !doc.noFinalNewline {
		rawLines = rawLines[:len(rawLines)-1]
	}
	for i, raw := range rawLines {
		line, err := parseLine(raw, i+1, name)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, line)
	}
	return doc, nil
}

func parseLine(raw string, num int, file string) (*Line, error) {
	line := &Line{Num: num, Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		line.Kind = LineBlank
		return line, nil
	}
	if trimmed[0] == '#' {
		line.Kind = LineComment
		return line, nil
	}
	line.Kind = LinePair
	rest := trimmed
	if strings.HasPrefix(rest, "export ") || strings.HasPrefix(rest, "export\t") {
		line.Exported = true
		rest = strings.TrimSpace(rest[len("export"):])
	}
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return nil, &ParseError{
			File:    file,
			Line:    num,
			Message: fmt.Sprintf("not an assignment: %q", trimmed),
		}
	}
	key := strings.TrimSpace(rest[:eq])
	if !ValidKey(key) {
		return nil, &ParseError{
			File:    file,
			Line:    num,
			Message: fmt.Sprintf("invalid variable name %q", key),
		}
	}
	line.Key = key
	value, quote, err := parseValue(strings.TrimSpace(rest[eq+1:]), num, file)
	if err != nil {
		return nil, err
	}
	line.Value = value
	line.Quote = quote
	return line, nil
}

func parseValue(s string, num int, file string) (string, QuoteStyle, error) {
	if s == "" {
		return "", QuoteNone, nil
	}
	switch s[0] {
	case '"':
		inner, rest, ok := scanDoubleQuoted(s)
		if !ok {
			return "", QuoteDouble, &ParseError{
				File:    file,
				Line:    num,
				Message: "unterminated double-quoted value",
			}
		}
		if err := checkTrailer(rest, num, file); err != nil {
			return "", QuoteDouble, err
		}
		return inner, QuoteDouble, nil
	case '\'':
		end := strings.IndexByte(s[1:], '\'')
		if end < 0 {
			return "", QuoteSingle, &ParseError{
				File:    file,
				Line:    num,
				Message: "unterminated single-quoted value",
			}
		}
		if err := checkTrailer(s[end+2:], num, file); err != nil {
			return "", QuoteSingle, err
		}
		return s[1 : end+1], QuoteSingle, nil
	}
	if idx := inlineCommentIndex(s); idx >= 0 {
		s = strings.TrimRight(s[:idx], " \t")
	}
	return s, QuoteNone, nil
}

// scanDoubleQuoted returns the text between the quotes with escape
// sequences intact, plus whatever follows the closing quote.
func scanDoubleQuoted(s string) (inner, rest string, ok bool) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[1:i], s[i+1:], true
		}
	}
	return "", "", false
}

// checkTrailer verifies that nothing but whitespace or a comment
// follows a closing quote.
func checkTrailer(rest string, num int, file string) error {
	rest = strings.TrimSpace(rest)
	if rest == "" || rest[0] == '#' {
		return nil
	}
	return &ParseError{
		File:    file,
		Line:    num,
		Message: fmt.Sprintf("unexpected text after closing quote: %q", rest),
	}
}

// inlineCommentIndex finds the start of a trailing comment in an
// unquoted value: a '#' at the start of the value or preceded by
// whitespace. Values containing a literal '#' must be quoted.
func inlineCommentIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' && (i == 0 || s[i-1] == ' ' || s[i-1] == '\t') {
			return i
		}
	}
	return -1
}

// ValidKey reports whether name is a legal variable name: a letter
// or underscore followed by letters, digits and underscores.
func ValidKey(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isKeyByte(name[i], i == 0) {
			return false
		}
	}
	return true
}

func isKeyByte(c byte, first bool) bool {
	if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		return true
	}
	return !first && c >= '0' && c <= '9'
}
