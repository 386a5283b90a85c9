// Package evaluator classifies prompts into task categories and scores model
// outputs against cheap category-specific correctness heuristics.
package evaluator

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Result is the verdict for one prompt/output pair.
type Result struct {
	Category     Category
	Correct      bool
	OutputTokens int
}

// arithmeticPattern matches any digit or arithmetic symbol. The math
// heuristic is deliberately permissive.
var arithmeticPattern = regexp.MustCompile(`[0-9+\-*/=]`)

var (
	mathMarkers = []string{"x", "y", "=", "dx", "dy", "6x", "2x"}
	codeMarkers = []string{"def ", "return", "for ", "while "}
)

// Evaluate classifies the prompt and applies the category's correctness
// predicate to the output. It is pure and total: malformed output yields a
// false verdict, never an error.
func Evaluate(prompt, output string) Result {
	category := Classify(prompt)
	out := strings.ToLower(strings.TrimSpace(output))

	var correct bool
	switch category {
	case CategoryMath:
		correct = containsAny(out, mathMarkers) || arithmeticPattern.MatchString(out)
	case CategoryCode:
		correct = containsAny(out, codeMarkers)
	case CategoryJSON:
		// Parse the raw output: JSON literals are case-sensitive.
		correct = looksLikeJSON(output) && parsesAsJSON(output)
	case CategoryWriting:
		correct = len(strings.Fields(out)) > 10 && strings.Contains(out, ".")
	case CategoryGeneral:
		correct = utf8.RuneCountInString(out) > 5 && sharesLeadingToken(strings.ToLower(prompt), out)
	}

	return Result{
		Category:     category,
		Correct:      correct,
		OutputTokens: len(strings.Fields(out)),
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// parsesAsJSON accepts exactly one JSON value with nothing after it.
func parsesAsJSON(s string) bool {
	dec := json.NewDecoder(strings.NewReader(s))
	var v any
	if err := dec.Decode(&v); err != nil {
		return false
	}
	return dec.Decode(&struct{}{}) == io.EOF
}

// sharesLeadingToken reports whether any of the first three whitespace
// tokens of the prompt occurs as a substring of the output. Only the leading
// three prompt tokens participate; the rest of the prompt is ignored.
func sharesLeadingToken(prompt, out string) bool {
	tokens := strings.Fields(prompt)
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	for _, t := range tokens {
		if strings.Contains(out, t) {
			return true
		}
	}
	return false
}
