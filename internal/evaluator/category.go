package evaluator

import "strings"

// Category labels the task type of a prompt. The set is closed: every prompt
// maps to exactly one of these.
type Category string

const (
	CategoryMath    Category = "math"
	CategoryCode    Category = "code"
	CategoryJSON    Category = "json"
	CategoryWriting Category = "writing"
	CategoryGeneral Category = "general"
)

// categoryRule pairs trigger keywords with the category they select.
type categoryRule struct {
	keywords []string
	label    Category
}

// Rule order is load-bearing: a prompt matching several rules takes the
// earliest (e.g. "write a python function" is code, not writing).
var categoryRules = []categoryRule{
	{keywords: []string{"derivative", "integral", "solve"}, label: CategoryMath},
	{keywords: []string{"python", "code", "function"}, label: CategoryCode},
	{keywords: []string{"json", "object", "key"}, label: CategoryJSON},
	{keywords: []string{"story", "write", "poem"}, label: CategoryWriting},
}

// Classify maps a prompt to its task category. Matching is case-insensitive
// and total: any input, including the empty string, yields a category.
func Classify(prompt string) Category {
	p := strings.ToLower(prompt)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(p, kw) {
				return rule.label
			}
		}
	}
	return CategoryGeneral
}
