package ai

import (
	"encoding/json"
	"strings"
	"unicode"
)

// StripCodeFence removes a leading ``` fence (optionally tagged json) and
// its closing fence. Unfenced text is returned trimmed.
func StripCodeFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = t[3:]

	if nl := strings.IndexByte(t, '\n'); nl >= 0 && isFenceTag(t[:nl]) {
		t = t[nl+1:]
	} else if len(t) >= 4 && strings.EqualFold(t[:4], "json") {
		t = t[4:]
	}

	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

func isFenceTag(s string) bool {
	for _, r := range strings.TrimSpace(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ExtractJSON finds the first balanced JSON object or array in text that is
// itself valid JSON. Brackets are matched in a single pass; a balanced block
// that fails to parse is skipped whole, so nested blocks inside it are never
// tried and the cost stays linear in len(text).
func ExtractJSON(text string) (string, bool) {
	closes := matchBrackets(text)

	for start := 0; start < len(text); start++ {
		end, ok := closes[start]
		if !ok {
			continue
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
		start = end
	}
	return "", false
}

// matchBrackets maps the index of every opening bracket that is properly
// closed to the index of its closer. Strings are only tracked inside an open
// bracket so stray quotes in surrounding prose are ignored. A mismatched
// closer discards every bracket still open.
func matchBrackets(text string) map[int]int {
	closes := make(map[int]int)
	var stack []int
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
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
			inString = len(stack) > 0
		case '{', '[':
			stack = append(stack, i)
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			if (c == '}') != (text[open] == '{') {
				stack = stack[:0]
				continue
			}
			stack = stack[:len(stack)-1]
			closes[open] = i
		}
	}
	return closes
}

// Parse decodes model output into T. It tries the fence-stripped text as a
// whole, then the first embedded JSON value. ok is false when neither works.
func Parse[T any](text string) (value T, ok bool) {
	cleaned := StripCodeFence(text)

	if v, ok := decode[T](cleaned); ok {
		return v, true
	}
	if candidate, found := ExtractJSON(cleaned); found {
		if v, ok := decode[T](candidate); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// ParseOrDefault is Parse with the caller's fallback substituted on failure.
// It never panics on malformed input.
func ParseOrDefault[T any](text string, fallback T) T {
	if v, ok := Parse[T](text); ok {
		return v
	}
	return fallback
}

func decode[T any](s string) (T, bool) {
	var v T
	if s == "" || s == "null" {
		return v, false
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
