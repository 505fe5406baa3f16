// internal/game/compare.go
//
// Attribute comparator: pure field-by-field comparison of a guessed villain
// against the target. Produces a verdict for every comparable field and
// never leaks the target's values through its output.
//
// Per-field rules:
//   - universe: fuzzy token match (shared franchise reads as partial).
//   - gender, species, type, alignment: exact string equality.
//   - organization: case-insensitive substring match, with "None" as a
//     sentinel that falls back to exact comparison.
//   - powers, weaknesses: unordered set overlap.
//   - firstAppearanceYear: equality with a target-relative directional hint.

package game

import (
	"strings"

	"github.com/villaindle/go-server/internal/villains"
)

// Compare evaluates guessed against target and returns one verdict per
// comparable field. Pure: same inputs always produce the same output.
func Compare(guessed, target villains.Villain) Comparisons {
	return Comparisons{
		FieldUniverse:        compareFuzzy(guessed.Universe, target.Universe),
		FieldGender:          compareExact(guessed.Gender, target.Gender),
		FieldSpecies:         compareExact(guessed.Species, target.Species),
		FieldType:            compareExact(guessed.Type, target.Type),
		FieldOrganization:    compareContainment(guessed.Organization, target.Organization),
		FieldPowers:          compareTags(guessed.Powers, target.Powers),
		FieldWeaknesses:      compareTags(guessed.Weaknesses, target.Weaknesses),
		FieldFirstAppearance: compareYear(guessed.FirstAppearanceYear, target.FirstAppearanceYear),
		FieldAlignment:       compareExact(guessed.Alignment, target.Alignment),
	}
}

// compareExact: equality as stored, case-sensitive.
func compareExact(guessed, target string) TextVerdict {
	if guessed == target {
		return TextVerdict{Result: StatusCorrect, Value: guessed}
	}
	return TextVerdict{Result: StatusIncorrect, Value: guessed}
}

// compareFuzzy rewards "same franchise, different value": any shared
// lowercase token longer than two characters counts as partial.
func compareFuzzy(guessed, target string) TextVerdict {
	if guessed == target {
		return TextVerdict{Result: StatusCorrect, Value: guessed}
	}
	guessTokens := tokenize(guessed)
	for t := range tokenize(target) {
		if len(t) <= 2 {
			continue
		}
		if _, ok := guessTokens[t]; ok {
			return TextVerdict{Result: StatusPartial, Value: guessed}
		}
	}
	return TextVerdict{Result: StatusIncorrect, Value: guessed}
}

// tokenize splits on whitespace and lowercases.
func tokenize(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(s)) {
		out[t] = struct{}{}
	}
	return out
}

// compareContainment: substring match in either direction,
// case-insensitive. If either side is the "None" sentinel, there is nothing
// meaningful to substring-match, so fall back to exact comparison.
func compareContainment(guessed, target string) TextVerdict {
	if guessed == villains.OrganizationNone || target == villains.OrganizationNone {
		return compareExact(guessed, target)
	}
	if guessed == target {
		return TextVerdict{Result: StatusCorrect, Value: guessed}
	}
	g, t := strings.ToLower(guessed), strings.ToLower(target)
	if strings.Contains(g, t) || strings.Contains(t, g) {
		return TextVerdict{Result: StatusPartial, Value: guessed}
	}
	return TextVerdict{Result: StatusIncorrect, Value: guessed}
}

// compareTags evaluates unordered tag sets:
//   - both empty          → correct
//   - exactly one empty   → incorrect
//   - same elements       → correct
//   - any overlap         → partial
//   - disjoint            → incorrect
func compareTags(guessed, target []string) TagsVerdict {
	if len(guessed) == 0 && len(target) == 0 {
		return TagsVerdict{Result: StatusCorrect, Values: guessed}
	}
	if len(guessed) == 0 || len(target) == 0 {
		return TagsVerdict{Result: StatusIncorrect, Values: guessed}
	}

	targetSet := toSet(target)
	guessSet := toSet(guessed)
	shared := 0
	for g := range guessSet {
		if _, ok := targetSet[g]; ok {
			shared++
		}
	}

	if shared == len(guessSet) && len(guessSet) == len(targetSet) {
		return TagsVerdict{Result: StatusCorrect, Values: guessed}
	}
	if shared > 0 {
		return TagsVerdict{Result: StatusPartial, Values: guessed}
	}
	return TagsVerdict{Result: StatusIncorrect, Values: guessed}
}

// toSet converts a tag list into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, s := range list {
		m[s] = struct{}{}
	}
	return m
}

// compareYear: target-relative hint convention. Guessing 1990 against a
// 2000 target yields StatusHigher: the target's year is higher, go up.
func compareYear(guessed, target int) YearVerdict {
	switch {
	case guessed == target:
		return YearVerdict{Result: StatusCorrect, Value: guessed}
	case guessed < target:
		return YearVerdict{Result: StatusHigher, Value: guessed}
	default:
		return YearVerdict{Result: StatusLower, Value: guessed}
	}
}
