package jsonutil

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/kaptinlin/jsonrepair"
)

// ErrNoJSON is returned when the text contains no object or array to repair.
var ErrNoJSON = errors.New("jsonutil: no JSON value found")

// Repairer turns near-JSON model output into text that a strict parser can read.
// Implementations must not fail on valid JSON.
type Repairer interface {
	Repair(s string) (string, error)
}

// RepairFunc adapts a function to Repairer.
type RepairFunc func(s string) (string, error)

func (f RepairFunc) Repair(s string) (string, error) { return f(s) }

// JSONRepairer runs the jsonrepair algorithm over the first JSON value in
// the text. Fences and prose around the value are dropped first. Input the
// library rejects is handed to HeuristicRepairer.
type JSONRepairer struct{}

func (JSONRepairer) Repair(s string) (string, error) {
	s = stripFences(s)
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	value := firstValue(s[start:])
	if out, err := jsonrepair.JSONRepair(value); err == nil && json.Valid([]byte(out)) {
		return out, nil
	}
	return HeuristicRepairer{}.Repair(value)
}

// firstValue cuts s after the bracket that closes its first top-level value.
// Unbalanced input is returned whole.
func firstValue(s string) string {
	var (
		depth    int
		inString bool
		quote    rune
		escape   bool
	)
	for i, c := range s {
		if inString {
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == quote:
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return s
}

// HeuristicRepairer fixes the mistakes chat models commonly make when asked
// for a JSON object:
//   - markdown code fences and prose around the value
//   - single-quoted strings and unquoted keys
//   - Python literals True/False/None
//   - trailing commas and missing commas between values
//   - raw newlines and \' escapes inside strings
//   - unquoted non-numeric scalars such as dates
//   - missing closing quotes and brackets
//
// Text after the first complete top-level value is dropped.
type HeuristicRepairer struct{}

func (HeuristicRepairer) Repair(s string) (string, error) {
	s = stripFences(s)
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	r := []rune(s[start:])

	var (
		out      strings.Builder
		stack    []rune
		inString bool
		quote    rune
		escape   bool
		// afterValue is set once a value or key ends and cleared by ':' or ','.
		afterValue bool
	)
	out.Grow(len(r) + 8)

	for i := 0; i < len(r); i++ {
		c := r[i]
		if inString {
			switch {
			case escape:
				switch {
				case c == '\'':
					out.WriteRune(c)
				case strings.ContainsRune(`"\\/bfnrtu`, c):
					out.WriteRune('\\')
					out.WriteRune(c)
				default:
					out.WriteString(`\\`)
					out.WriteRune(c)
				}
				escape = false
			case c == '\\':
				escape = true
			case c == quote:
				out.WriteRune('"')
				inString = false
				afterValue = true
			case c == '"':
				out.WriteString(`\"`)
			case c == '\n':
				out.WriteString(`\n`)
			case c == '\r':
				out.WriteString(`\r`)
			case c == '\t':
				out.WriteString(`\t`)
			default:
				out.WriteRune(c)
			}
			continue
		}

		if afterValue && (c == '"' || c == '\'' || c == '{' || c == '[' || c == '-' || unicode.IsDigit(c) || isIdentStart(c)) {
			out.WriteRune(',')
			afterValue = false
		}
		switch {
		case c == '"' || c == '\'':
			inString = true
			quote = c
			out.WriteRune('"')
		case c == '{' || c == '[':
			stack = append(stack, c)
			out.WriteRune(c)
		case c == '}' || c == ']':
			trimTrailingComma(&out)
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			out.WriteRune(c)
			if len(stack) == 0 {
				return out.String(), nil
			}
			afterValue = true
		case c == '-' || unicode.IsDigit(c):
			j := i
			for j < len(r) && strings.ContainsRune("0123456789.eE+-", r[j]) {
				j++
			}
			tok := string(r[i:j])
			if _, err := strconv.ParseFloat(tok, 64); err == nil {
				out.WriteString(tok)
			} else {
				out.WriteString(strconv.Quote(tok))
			}
			i = j - 1
			afterValue = true
		case isIdentStart(c):
			j := i
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			word := string(r[i:j])
			switch word {
			case "true", "True":
				out.WriteString("true")
			case "false", "False":
				out.WriteString("false")
			case "null", "None":
				out.WriteString("null")
			default:
				out.WriteString(`"` + word + `"`)
			}
			i = j - 1
			afterValue = true
		case c == ':' || c == ',':
			out.WriteRune(c)
			afterValue = false
		default:
			out.WriteRune(c)
		}
	}

	if inString {
		out.WriteRune('"')
	}
	trimTrailingComma(&out)
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out.WriteRune('}')
		} else {
			out.WriteRune(']')
		}
	}
	return out.String(), nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

func trimTrailingComma(b *strings.Builder) {
	str := b.String()
	trimmed := strings.TrimRightFunc(str, unicode.IsSpace)
	if !strings.HasSuffix(trimmed, ",") {
		return
	}
	b.Reset()
	b.WriteString(strings.TrimSuffix(trimmed, ","))
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return c == '_' || c == '-' || unicode.IsLetter(c) || unicode.IsDigit(c)
}
