package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix      = "<"
	choicePlaceholderSuffix      = ">"
	choiceSeparatorLiteral       = "|"
	choiceListSeparatorLiteral   = ", "
	choiceUsageEmptyTemplate     = "`%s`"
	choiceUsageFullTemplate      = "`%s` %s"
	unsupportedChoiceTemplate    = "unsupported %s %q (expected one of: %s)"
	defaultChoiceSubjectConstant = "value"
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// NormalizeChoice matches value case-insensitively against choices and returns the canonical spelling.
// An empty value resolves to defaultChoice.
func NormalizeChoice(subject string, value string, defaultChoice string, choices []string) (string, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(value))
	if len(normalizedValue) == 0 {
		normalizedValue = strings.ToLower(strings.TrimSpace(defaultChoice))
	}

	canonicalChoices := uniqueChoices(choices)
	for _, choice := range canonicalChoices {
		if strings.ToLower(choice) == normalizedValue {
			return choice, nil
		}
	}

	if len(strings.TrimSpace(subject)) == 0 {
		subject = defaultChoiceSubjectConstant
	}
	return "", fmt.Errorf(unsupportedChoiceTemplate, subject, value, strings.Join(canonicalChoices, choiceListSeparatorLiteral))
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	canonicalChoices := uniqueChoices(choices)
	highlighted := make([]string, 0, len(canonicalChoices))

	for _, choice := range canonicalChoices {
		if len(normalizedDefault) > 0 && strings.ToLower(choice) == normalizedDefault {
			highlighted = append(highlighted, strings.ToUpper(choice))
			continue
		}
		highlighted = append(highlighted, choice)
	}

	return highlighted
}

func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}

		unique = append(unique, trimmedChoice)
		seen[normalizedChoice] = struct{}{}
	}

	return unique
}
