// Package form implements the validated form subsystem: a generic
// insertion-ordered field collection that progresses from Form through
// TrimmedForm to ValidForm, plus the concrete login, register, settings and
// article-editor variants.
package form

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field is one named form input together with its validation rules.
type Field struct {
	Key   string
	Value string
	rules []validation.Rule
}

// NewField builds a field. Rules run against the trimmed value during
// Validate.
func NewField(key, value string, rules ...validation.Rule) Field {
	return Field{Key: key, Value: value, rules: rules}
}

// Form is an insertion-ordered mapping from field key to field. The order
// drives deterministic rendering and problem reporting.
type Form struct {
	order  []string
	fields map[string]Field
}

// New seeds a form; duplicate keys overwrite, keeping the first position.
func New(fields ...Field) Form {
	f := Form{fields: make(map[string]Field, len(fields))}
	for _, fld := range fields {
		f = f.Upsert(fld)
	}
	return f
}

// Upsert inserts or replaces a field by key, preserving its position on
// replace. A replacement carrying no rules inherits the existing field's
// rules, so edit handlers can submit bare key/value pairs.
func (f Form) Upsert(fld Field) Form {
	out := f.clone()
	if old, ok := out.fields[fld.Key]; ok {
		if fld.rules == nil {
			fld.rules = old.rules
		}
	} else {
		out.order = append(out.order, fld.Key)
	}
	out.fields[fld.Key] = fld
	return out
}

// Get looks a field up by key.
func (f Form) Get(key string) (Field, bool) {
	fld, ok := f.fields[key]
	return fld, ok
}

// Value returns the field's current value, or "" when absent.
func (f Form) Value(key string) string { return f.fields[key].Value }

// Fields enumerates fields in insertion order.
func (f Form) Fields() []Field {
	out := make([]Field, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.fields[key])
	}
	return out
}

// Trim copies the form with leading and trailing whitespace removed from
// every value.
func (f Form) Trim() TrimmedForm {
	out := f.clone()
	for key, fld := range out.fields {
		fld.Value = strings.TrimSpace(fld.Value)
		out.fields[key] = fld
	}
	return TrimmedForm{form: out}
}

func (f Form) clone() Form {
	out := Form{
		order:  make([]string, len(f.order)),
		fields: make(map[string]Field, len(f.fields)),
	}
	copy(out.order, f.order)
	for k, v := range f.fields {
		out.fields[k] = v
	}
	return out
}

// TrimmedForm is a form whose values have been whitespace-trimmed. Only a
// trimmed form can be validated.
type TrimmedForm struct {
	form Form
}

// Validate runs every field's rules in field order. It returns either a
// ValidForm wrapping the same fields or the non-empty list of problems.
func (t TrimmedForm) Validate() (ValidForm, []Problem) {
	var problems []Problem
	for _, fld := range t.form.Fields() {
		if err := validation.Validate(fld.Value, fld.rules...); err != nil {
			problems = append(problems, InvalidField(fld.Key, fmt.Sprintf("%s %s", fld.Key, err)))
		}
	}
	if len(problems) > 0 {
		return ValidForm{}, problems
	}
	return ValidForm{form: t.form}, nil
}

// ValidForm is a form that passed validation; encoders consume it.
type ValidForm struct {
	form Form
}

// Fields enumerates fields in insertion order.
func (v ValidForm) Fields() []Field { return v.form.Fields() }

// Value returns the field's value, or "" when absent.
func (v ValidForm) Value(key string) string { return v.form.Value(key) }
