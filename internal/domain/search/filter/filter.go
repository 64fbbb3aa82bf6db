// Package filter holds the structured filter model: the generic
// expression/condition primitives the store drivers understand, and the
// typed per-entity filters validated at the request boundary.
package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured filter. Every must condition has to hold;
// when should conditions exist, at least one of them has to hold as well.
// The empty expression matches every document.
type Expression struct {
	must   []Condition
	should []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should}, nil
}

// Must returns the conjunction conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the at-least-one group.
func (e Expression) Should() []Condition { return e.should }

// IsEmpty reports whether the expression matches everything.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0
}

// Condition restricts one document attribute to a set of allowed values.
type Condition struct {
	key    string
	values []string
}

// NewIn creates a membership condition: the attribute must equal one of
// the values. Blank values are rejected.
func NewIn(key string, values ...string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("at least one value is required for key %q", key)
	}
	for _, v := range values {
		if v == "" {
			return Condition{}, fmt.Errorf("blank value for key %q", key)
		}
	}
	return Condition{key: key, values: values}, nil
}

// Key returns the attribute name.
func (c Condition) Key() string { return c.key }

// Values returns the allowed values.
func (c Condition) Values() []string { return c.values }

// Matches reports whether a single attribute value satisfies the condition.
func (c Condition) Matches(value string) bool {
	for _, v := range c.values {
		if v == value {
			return true
		}
	}
	return false
}
