// internal/game/types.go
//
// Core type definitions for the villain-guessing engine.
// Defines:
//   - Status: per-attribute verdict tag (correct/partial/incorrect/lower/higher).
//   - Field: the comparable attribute keys.
//   - Verdict: tagged per-field-kind comparison results (text/tags/year),
//     JSON round-tripped through a kind-tagged envelope.
//   - Guess: one immutable submitted attempt.

package game

import (
	"encoding/json"
	"fmt"
)

// Status is the evaluation result for a single attribute of a guess.
// Possible values:
//   - "correct":   guessed value matches the target exactly.
//   - "partial":   guessed value overlaps the target (shared tag, shared
//     token, or substring) without matching exactly.
//   - "incorrect": no meaningful overlap.
//   - "lower":     ordinal fields only; the target's value is lower than the guess.
//   - "higher":    ordinal fields only; the target's value is higher than the guess.
type Status string

const (
	StatusCorrect   Status = "correct"
	StatusPartial   Status = "partial"
	StatusIncorrect Status = "incorrect"
	StatusLower     Status = "lower"
	StatusHigher    Status = "higher"
)

// Field identifies one comparable attribute.
type Field string

const (
	FieldUniverse        Field = "universe"
	FieldGender          Field = "gender"
	FieldSpecies         Field = "species"
	FieldType            Field = "type"
	FieldOrganization    Field = "organization"
	FieldPowers          Field = "powers"
	FieldWeaknesses      Field = "weaknesses"
	FieldFirstAppearance Field = "firstAppearanceYear"
	FieldAlignment       Field = "alignment"
)

// Fields lists every comparable attribute in display order.
// Compare produces a verdict for each of these, always.
var Fields = []Field{
	FieldUniverse,
	FieldGender,
	FieldSpecies,
	FieldType,
	FieldOrganization,
	FieldPowers,
	FieldWeaknesses,
	FieldFirstAppearance,
	FieldAlignment,
}

// Verdict is one per-attribute comparison result. Each variant carries the
// guessed value for redisplay; the target's value never appears here.
type Verdict interface {
	Status() Status
	kind() string
}

// TextVerdict covers string-valued attributes (exact, fuzzy, containment).
type TextVerdict struct {
	Result Status
	Value  string
}

// TagsVerdict covers unordered tag-list attributes (powers, weaknesses).
type TagsVerdict struct {
	Result Status
	Values []string
}

// YearVerdict covers ordinal numeric attributes. Its status uses the
// target-relative convention: StatusHigher means the target's year is higher
// than the guessed year ("go up").
type YearVerdict struct {
	Result Status
	Value  int
}

func (v TextVerdict) Status() Status { return v.Result }
func (v TagsVerdict) Status() Status { return v.Result }
func (v YearVerdict) Status() Status { return v.Result }

func (TextVerdict) kind() string { return "text" }
func (TagsVerdict) kind() string { return "tags" }
func (YearVerdict) kind() string { return "year" }

// Comparisons maps each comparable field to its verdict.
type Comparisons map[Field]Verdict

// verdictEnvelope is the wire/persistence form of a Verdict. The kind tag
// picks the variant on decode.
type verdictEnvelope struct {
	Kind   string   `json:"kind"`
	Status Status   `json:"status"`
	Text   string   `json:"text,omitempty"`
	Tags   []string `json:"tags,omitempty"`
	Year   int      `json:"year,omitempty"`
}

// MarshalJSON encodes each verdict as a kind-tagged envelope.
func (c Comparisons) MarshalJSON() ([]byte, error) {
	out := make(map[Field]verdictEnvelope, len(c))
	for f, v := range c {
		env := verdictEnvelope{Kind: v.kind(), Status: v.Status()}
		switch t := v.(type) {
		case TextVerdict:
			env.Text = t.Value
		case TagsVerdict:
			env.Tags = t.Values
		case YearVerdict:
			env.Year = t.Value
		default:
			return nil, fmt.Errorf("game: unknown verdict type %T", v)
		}
		out[f] = env
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes kind-tagged envelopes back into verdict variants.
func (c *Comparisons) UnmarshalJSON(data []byte) error {
	var raw map[Field]verdictEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Comparisons, len(raw))
	for f, env := range raw {
		switch env.Kind {
		case "text":
			out[f] = TextVerdict{Result: env.Status, Value: env.Text}
		case "tags":
			out[f] = TagsVerdict{Result: env.Status, Values: env.Tags}
		case "year":
			out[f] = YearVerdict{Result: env.Status, Value: env.Year}
		default:
			return fmt.Errorf("game: unknown verdict kind %q", env.Kind)
		}
	}
	*c = out
	return nil
}

// Guess is one submitted attempt. Immutable once appended to a session.
type Guess struct {
	VillainID   string      `json:"villainId"`
	VillainName string      `json:"villainName"`
	Correct     bool        `json:"correct"`
	Comparisons Comparisons `json:"comparisons"`
}
