package models

import (
	"regexp"
	"strings"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldURL      FieldType = "url"
	FieldTel      FieldType = "tel"
	FieldFile     FieldType = "file"
	FieldImage    FieldType = "image"
	FieldPassword FieldType = "password"
	FieldColor    FieldType = "color"
)

var fieldCodePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Option is one selectable choice of a select/checkbox/radio field.
type Option struct {
	Code  string `bson:"code" json:"code"`
	Label string `bson:"label" json:"label"`
}

// OptionGroup nests options one level deep (an optgroup).
type OptionGroup struct {
	Label   string   `bson:"label" json:"label"`
	Options []Option `bson:"options" json:"options"`
}

// Field describes one input of a form. Fields are defined by admin tooling and
// are read-only during submission processing.
type Field struct {
	Code              string    `bson:"code" json:"code"`
	Type              FieldType `bson:"type" json:"type"`
	Name              string    `bson:"name" json:"name"`
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	Placeholder       string    `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Required          bool      `bson:"required" json:"required"`
	ValidationRules   string    `bson:"validationRules,omitempty" json:"validationRules,omitempty"`
	ValidationMessage string    `bson:"validationMessage,omitempty" json:"validationMessage,omitempty"`
	SortOrder         int       `bson:"sortOrder" json:"sortOrder"`

	Options      []Option      `bson:"options,omitempty" json:"options,omitempty"`
	OptionGroups []OptionGroup `bson:"optionGroups,omitempty" json:"optionGroups,omitempty"`

	// Per-field style overrides; nil means inherit from form/settings.
	FieldClass *string `bson:"fieldClass,omitempty" json:"fieldClass,omitempty"`
	RowClass   *string `bson:"rowClass,omitempty" json:"rowClass,omitempty"`
	GroupClass *string `bson:"groupClass,omitempty" json:"groupClass,omitempty"`
	LabelClass *string `bson:"labelClass,omitempty" json:"labelClass,omitempty"`

	// Email visibility flags; nil means the default (shown).
	ShowInEmailAutoreply    *bool `bson:"showInEmailAutoreply,omitempty" json:"showInEmailAutoreply,omitempty"`
	ShowInEmailNotification *bool `bson:"showInEmailNotification,omitempty" json:"showInEmailNotification,omitempty"`
}

// ValidCode reports whether the field code matches ^[a-z_][a-z0-9_]*$.
func (f *Field) ValidCode() bool {
	return fieldCodePattern.MatchString(f.Code)
}

// IsRequired is true when the required flag is set or the rule string already
// carries a required rule.
func (f *Field) IsRequired() bool {
	if f.Required {
		return true
	}
	for _, rule := range strings.Split(f.ValidationRules, "|") {
		if rule == "required" {
			return true
		}
	}
	return false
}

// IsMulti reports whether the raw input value is normalized to a list.
func (f *Field) IsMulti() bool {
	switch f.Type {
	case FieldCheckbox, FieldRadio, FieldSelect:
		return true
	}
	return false
}

func (f *Field) IsFile() bool {
	return f.Type == FieldFile || f.Type == FieldImage
}

// CompiledRules returns the field's validation rule string with the implicit
// rules added: email for email fields, numeric for number fields, required
// when the required flag is set.
func (f *Field) CompiledRules() string {
	var rules []string
	if f.ValidationRules != "" {
		rules = strings.Split(f.ValidationRules, "|")
	}

	has := func(name string) bool {
		for _, r := range rules {
			if r == name {
				return true
			}
		}
		return false
	}

	if f.Type == FieldEmail && !has("email") {
		rules = append(rules, "email")
	}
	if f.Type == FieldNumber && !has("numeric") {
		rules = append(rules, "numeric")
	}
	if f.Required && !has("required") {
		rules = append(rules, "required")
	}

	return strings.Join(rules, "|")
}

// OptionCodes flattens the field's options and option groups into the set of
// accepted codes, in declaration order.
func (f *Field) OptionCodes() []string {
	codes := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		codes = append(codes, opt.Code)
	}
	for _, group := range f.OptionGroups {
		for _, opt := range group.Options {
			codes = append(codes, opt.Code)
		}
	}
	return codes
}

// OptionRule is the per-element membership rule for multi-value fields. With
// no declared options it degrades to a truthy check, which is the only way to
// validate a freeform checkbox.
func (f *Field) OptionRule() string {
	if !f.IsMulti() {
		return ""
	}
	codes := f.OptionCodes()
	if len(codes) == 0 {
		return "truthy"
	}
	return "in:" + strings.Join(codes, ",")
}

// OptionLabel resolves an option code to its display label.
func (f *Field) OptionLabel(code string) (string, bool) {
	for _, opt := range f.Options {
		if opt.Code == code {
			return opt.Label, true
		}
	}
	for _, group := range f.OptionGroups {
		for _, opt := range group.Options {
			if opt.Code == code {
				return opt.Label, true
			}
		}
	}
	return "", false
}

// ShowsInEmail reports field visibility for an email kind ("notification" or
// "autoreply"). Unset flags default to visible.
func (f *Field) ShowsInEmail(kind string) bool {
	switch kind {
	case "autoreply":
		return f.ShowInEmailAutoreply == nil || *f.ShowInEmailAutoreply
	case "notification":
		return f.ShowInEmailNotification == nil || *f.ShowInEmailNotification
	}
	return false
}
