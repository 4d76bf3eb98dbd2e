package envfile

import "strings"

// Resolve computes the effective value of every key in the document.
// References resolve against keys defined earlier in the same file
// first, then against the base map (typically the process
// environment). Unresolvable references expand to the empty string.
// Duplicate keys keep the last assignment.
func (doc *Document) Resolve(base map[string]string) map[string]string {
	resolved := make(map[string]string)
	lookup := func(name string) string {
		if value, ok := resolved[name]; ok {
			return value
		}
		return base[name]
	}
	for _, line := range doc.Lines {
		if line.Kind != LinePair {
			continue
		}
		resolved[line.Key] = line.expandValue(lookup)
	}
	return resolved
}

// ResolveKey computes the effective value of a single key, or ""
// when the document does not define it.
func (doc *Document) ResolveKey(key string, base map[string]string) string {
	return doc.Resolve(base)[key]
}

func (line *Line) expandValue(lookup func(string) string) string {
	switch line.Quote {
	case QuoteSingle:
		return line.Value
	case QuoteDouble:
		return expand(line.Value, true, lookup)
	default:
		return expand(line.Value, false, lookup)
	}
}

// References returns the variable names the line's value refers to,
// in order of appearance, plus whether the value contains a malformed
// ${ reference (unterminated, or naming an invalid variable).
// Single-quoted values never interpolate.
func (line *Line) References() (names []string, malformed bool) {
	if line.Kind != LinePair || line.Quote == QuoteSingle {
		return nil, false
	}
	value := line.Value
	withEscapes := line.Quote == QuoteDouble
	for i := 0; i < len(value); i++ {
		if withEscapes && value[i] == '\\' {
			i++
			continue
		}
		if value[i] != '$' {
			continue
		}
		name, width := scanVarName(value[i+1:])
		if width > 0 {
			names = append(names, name)
			i += width
			continue
		}
		if i+1 < len(value) && value[i+1] == '{' {
			malformed = true
		}
	}
	return names, malformed
}

// expand substitutes ${VAR} and $VAR references using lookup. When
// withEscapes is true, backslash escapes are applied as well: \n \r
// \t \" \\ produce their usual characters and \$ yields a literal
// dollar sign. Malformed references are kept as literal text.
func expand(value string, withEscapes bool, lookup func(string) string) string {
	var out strings.Builder
	out.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if withEscapes && c == '\\' && i+1 < len(value) {
			i++
			switch value[i] {
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			case '"', '\\', '$':
				out.WriteByte(value[i])
			default:
				out.WriteByte('\\')
				out.WriteByte(value[i])
			}
			continue
		}
		if c == '$' && i+1 < len(value) {
			name, width := scanVarName(value[i+1:])
			if width > 0 {
				out.WriteString(lookup(name))
				i += width
				continue
			}
		}
		out.WriteByte(c)
	}
	return out.String()
}

// scanVarName reads a ${NAME} or NAME reference from the text that
// follows a dollar sign. It returns the name and the number of bytes
// the reference consumed, or zero when the text is not a reference.
func scanVarName(s string) (string, int) {
	if s == "" {
		return "", 0
	}
	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0
		}
		name := s[1:end]
		if !ValidKey(name) {
			return "", 0
		}
		return name, end + 1
	}
	n := 0
	for n < len(s) && isKeyByte(s[n], n == 0) {
		n++
	}
	if n == 0 {
		return "", 0
	}
	return s[:n], n
}
