// Package jsonparse recovers a JSON object from raw model output. Generative
// backends wrap, fence or mangle the JSON they were asked for, so parsing is
// an ordered list of independent strategies; the first that yields an object
// wins.
package jsonparse

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoJSON is returned when every extraction strategy fails.
var ErrNoJSON = errors.New("could not extract valid JSON from text")

var (
	braceSpanExpr   = regexp.MustCompile(`(?s)\{.*\}`)
	fencedBlockExpr = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	controlExpr     = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	whitespaceExpr  = regexp.MustCompile(`\s+`)
	fenceMarkExpr   = regexp.MustCompile("```(?:json)?\\s*")

	titleExpr       = regexp.MustCompile(`"title"\s*:\s*"([^"\\]*(?:\\.[^"\\]*)*)"`)
	excerptExpr     = regexp.MustCompile(`"excerpt"\s*:\s*"([^"\\]*(?:\\.[^"\\]*)*)"`)
	contentExpr     = regexp.MustCompile(`(?s)"content"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	readingTimeExpr = regexp.MustCompile(`"reading_time"\s*:\s*(\d+)`)
)

type strategy func(text string) (map[string]any, bool)

var strategies = []strategy{
	parseDirect,
	parseBraceSpan,
	parseCleaned,
	parseManualFields,
	parseFencedBlock,
}

// Parse tries each strategy in order and returns the first recovered object.
func Parse(text string) (map[string]any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("invalid input: text must be a non-empty string")
	}

	for _, try := range strategies {
		if obj, ok := try(text); ok {
			return obj, nil
		}
	}

	return nil, ErrNoJSON
}

// Validate reports whether obj carries every required field, with string
// fields non-empty after trimming. It never returns an error; absence is
// just false.
func Validate(obj map[string]any, requiredFields []string) bool {
	if obj == nil {
		return false
	}

	for _, field := range requiredFields {
		value, ok := obj[field]
		if !ok || value == nil {
			return false
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return false
		}
	}

	return true
}

// Strategy 1: the whole text is already valid JSON.
func parseDirect(text string) (map[string]any, bool) {
	return tryUnmarshal(text)
}

// Strategy 2: outermost {...} span.
func parseBraceSpan(text string) (map[string]any, bool) {
	span := braceSpanExpr.FindString(text)
	if span == "" {
		return nil, false
	}
	return tryUnmarshal(span)
}

// Strategy 3: strip control characters, collapse whitespace and drop fence
// markers, then retry the brace span.
func parseCleaned(text string) (map[string]any, bool) {
	return parseBraceSpan(cleanText(text))
}

// Strategy 4: pull title/excerpt/content/reading_time out with field-level
// regexes. Succeeds only when at least 3 fields were recovered.
func parseManualFields(text string) (map[string]any, bool) {
	result := map[string]any{}

	if m := titleExpr.FindStringSubmatch(text); m != nil {
		result["title"] = unescape(m[1])
	}
	if m := excerptExpr.FindStringSubmatch(text); m != nil {
		result["excerpt"] = unescape(m[1])
	}
	if m := contentExpr.FindStringSubmatch(text); m != nil {
		result["content"] = unescape(m[1])
	}
	if m := readingTimeExpr.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			result["reading_time"] = float64(n)
		}
	}

	if len(result) < 3 {
		return nil, false
	}
	return result, true
}

// Strategy 5: interior of a ```json fenced block.
func parseFencedBlock(text string) (map[string]any, bool) {
	m := fencedBlockExpr.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return tryUnmarshal(m[1])
}

func tryUnmarshal(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func cleanText(text string) string {
	cleaned := controlExpr.ReplaceAllString(text, " ")
	cleaned = whitespaceExpr.ReplaceAllString(cleaned, " ")
	cleaned = fenceMarkExpr.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

var unescaper = strings.NewReplacer(
	`\"`, `"`,
	`\\`, `\`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\b`, "\b",
	`\f`, "\f",
)

func unescape(s string) string {
	return unescaper.Replace(s)
}
