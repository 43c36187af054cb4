package uxtree

import "strings"

// Range is a 1-indexed (startLine, startColumn, endLine, endColumn) text
// span with the end column exclusive, matching common text-editor APIs.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Locate maps a tree path to the text range of the corresponding JSON object
// in the serialized display schema. The empty path maps to the whole
// document. Lookup succeeds only for object-valued nodes (the selection
// concept is always an object's enclosing braces) and returns false when the
// value at the path is not an object or the path cannot be resolved.
//
// Resolution is a sequential textual search for each path segment's quoted
// key (the synthetic "[items]" segment maps to the literal "items" key),
// scanning from just after the previous match. This resolves repeated key
// names at different depths correctly as long as the document is the literal
// serialization of the tree. Pure text scan, O(len(text)) per call; invoked
// on selection change only, never per keystroke.
func Locate(text string, path []string) (Range, bool) {
	if len(path) == 0 {
		if text == "" {
			return Range{}, false
		}
		el, ec := lineCol(text, len(text))
		return Range{StartLine: 1, StartColumn: 1, EndLine: el, EndColumn: ec}, true
	}
	pos := 0
	for _, seg := range path {
		key := seg
		if seg == ItemsSegment {
			key = "items"
		}
		next, ok := findKey(text, pos, key)
		if !ok {
			return Range{}, false
		}
		pos = next
	}
	// skip whitespace to the value
	for pos < len(text) && isJSONSpace(text[pos]) {
		pos++
	}
	if pos >= len(text) || text[pos] != '{' {
		return Range{}, false
	}
	end, ok := matchBraces(text, pos)
	if !ok {
		return Range{}, false
	}
	sl, sc := lineCol(text, pos)
	el, ec := lineCol(text, end)
	return Range{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}, true
}

// findKey locates the quoted key followed by optional whitespace and a colon,
// returning the offset just past the colon. Quoted occurrences not followed
// by a colon (string values that happen to equal the key) are skipped.
func findKey(text string, from int, key string) (int, bool) {
	needle := `"` + key + `"`
	for from < len(text) {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			return 0, false
		}
		p := from + i + len(needle)
		q := p
		for q < len(text) && isJSONSpace(text[q]) {
			q++
		}
		if q < len(text) && text[q] == ':' {
			return q + 1, true
		}
		from = p
	}
	return 0, false
}

// matchBraces returns the offset one past the '}' matching the '{' at start.
// String literals are tracked, including escaped quotes, so a '}' inside a
// string value never terminates the scan.
func matchBraces(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// lineCol converts a byte offset into a 1-indexed line/column pair by
// counting newlines in the prefix.
func lineCol(text string, off int) (line, col int) {
	line = 1 + strings.Count(text[:off], "\n")
	lastNL := strings.LastIndexByte(text[:off], '\n')
	col = off - lastNL
	return line, col
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
