package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldCompiledRules(t *testing.T) {
	t.Run("EmailTypeGetsImplicitEmailRule", func(t *testing.T) {
		f := Field{Code: "contact", Type: FieldEmail, ValidationRules: "min:5"}
		assert.Equal(t, "min:5|email", f.CompiledRules())
	})

	t.Run("NumberTypeGetsImplicitNumericRule", func(t *testing.T) {
		f := Field{Code: "age", Type: FieldNumber}
		assert.Equal(t, "numeric", f.CompiledRules())
	})

	t.Run("RequiredFlagAppendsRequired", func(t *testing.T) {
		f := Field{Code: "name", Type: FieldText, Required: true}
		assert.Equal(t, "required", f.CompiledRules())
	})

	t.Run("NoDuplicateWhenRuleAlreadyPresent", func(t *testing.T) {
		f := Field{Code: "contact", Type: FieldEmail, Required: true, ValidationRules: "required|email"}
		assert.Equal(t, "required|email", f.CompiledRules())
	})
}

func TestFieldIsRequired(t *testing.T) {
	t.Run("FromFlag", func(t *testing.T) {
		f := Field{Required: true}
		assert.True(t, f.IsRequired())
	})

	t.Run("FromRuleString", func(t *testing.T) {
		f := Field{ValidationRules: "required|email"}
		assert.True(t, f.IsRequired())
	})

	t.Run("NotRequired", func(t *testing.T) {
		f := Field{ValidationRules: "email"}
		assert.False(t, f.IsRequired())
	})
}

func TestFieldOptionRule(t *testing.T) {
	t.Run("MembershipFromOptions", func(t *testing.T) {
		f := Field{Type: FieldSelect, Options: []Option{{Code: "a"}, {Code: "b"}}}
		assert.Equal(t, "in:a,b", f.OptionRule())
	})

	t.Run("IncludesGroupedOptions", func(t *testing.T) {
		f := Field{
			Type:    FieldSelect,
			Options: []Option{{Code: "a"}},
			OptionGroups: []OptionGroup{
				{Label: "More", Options: []Option{{Code: "b"}, {Code: "c"}}},
			},
		}
		assert.Equal(t, "in:a,b,c", f.OptionRule())
	})

	t.Run("DegradesToTruthyWithoutOptions", func(t *testing.T) {
		f := Field{Type: FieldCheckbox}
		assert.Equal(t, "truthy", f.OptionRule())
	})

	t.Run("EmptyForScalarFields", func(t *testing.T) {
		f := Field{Type: FieldText}
		assert.Equal(t, "", f.OptionRule())
	})
}

func TestFieldOptionLabel(t *testing.T) {
	f := Field{
		Type:    FieldRadio,
		Options: []Option{{Code: "yes", Label: "Yes please"}},
		OptionGroups: []OptionGroup{
			{Label: "Other", Options: []Option{{Code: "maybe", Label: "Maybe later"}}},
		},
	}

	label, ok := f.OptionLabel("yes")
	assert.True(t, ok)
	assert.Equal(t, "Yes please", label)

	label, ok = f.OptionLabel("maybe")
	assert.True(t, ok)
	assert.Equal(t, "Maybe later", label)

	_, ok = f.OptionLabel("no")
	assert.False(t, ok)
}

func TestFieldValidCode(t *testing.T) {
	valid := []string{"name", "first_name", "_hidden", "f2"}
	for _, code := range valid {
		f := Field{Code: code}
		assert.True(t, f.ValidCode(), code)
	}

	invalid := []string{"", "Name", "2name", "first-name", "first name"}
	for _, code := range invalid {
		f := Field{Code: code}
		assert.False(t, f.ValidCode(), code)
	}
}

func TestFieldShowsInEmail(t *testing.T) {
	hidden := false
	f := Field{ShowInEmailNotification: &hidden}

	assert.False(t, f.ShowsInEmail("notification"))
	assert.True(t, f.ShowsInEmail("autoreply"))
	assert.False(t, f.ShowsInEmail("unknown"))
}
