package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	v := New()

	t.Run("MissingRequiredFails", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{},
			map[string]string{"name": "required"},
			map[string]string{"name": "Name is required"},
		)
		assert.Equal(t, []string{"Name is required"}, errs["name"])
	})

	t.Run("EmptyStringFails", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"name": ""},
			map[string]string{"name": "required"},
			nil,
		)
		assert.Len(t, errs["name"], 1)
	})

	t.Run("PresentValuePasses", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"name": "Ada"},
			map[string]string{"name": "required"},
			nil,
		)
		assert.Empty(t, errs)
	})

	t.Run("EmptyListFailsRequired", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"tags": []string{}},
			map[string]string{"tags": "required"},
			nil,
		)
		assert.Len(t, errs["tags"], 1)
	})
}

func TestValidateOptionalSkipsWhenAbsent(t *testing.T) {
	v := New()

	errs := v.Validate(
		map[string]interface{}{},
		map[string]string{"contact": "email"},
		nil,
	)
	assert.Empty(t, errs)

	errs = v.Validate(
		map[string]interface{}{"contact": ""},
		map[string]string{"contact": "email"},
		nil,
	)
	assert.Empty(t, errs)
}

func TestValidateDelegatedRules(t *testing.T) {
	v := New()

	t.Run("Email", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"contact": "not-an-email"},
			map[string]string{"contact": "required|email"},
			nil,
		)
		assert.Len(t, errs["contact"], 1)

		errs = v.Validate(
			map[string]interface{}{"contact": "ada@example.com"},
			map[string]string{"contact": "required|email"},
			nil,
		)
		assert.Empty(t, errs)
	})

	t.Run("Numeric", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"age": "abc"},
			map[string]string{"age": "numeric"},
			nil,
		)
		assert.Len(t, errs["age"], 1)
	})

	t.Run("MinWithArgument", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"code": "ab"},
			map[string]string{"code": "min:3"},
			nil,
		)
		assert.Len(t, errs["code"], 1)

		errs = v.Validate(
			map[string]interface{}{"code": "abcd"},
			map[string]string{"code": "min:3"},
			nil,
		)
		assert.Empty(t, errs)
	})
}

func TestValidatePerElementRules(t *testing.T) {
	v := New()

	t.Run("MembershipPass", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"colors": []string{"red", "blue"}},
			map[string]string{"colors.*": "in:red,blue,green"},
			nil,
		)
		assert.Empty(t, errs)
	})

	t.Run("MembershipFailKeyedOnBase", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"colors": []string{"red", "purple"}},
			map[string]string{"colors.*": "in:red,blue,green"},
			map[string]string{"colors": "Pick a listed color"},
		)
		assert.Equal(t, []string{"Pick a listed color"}, errs["colors"])
	})

	t.Run("TruthyRejectsFalseyElements", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"consent": []string{"0"}},
			map[string]string{"consent.*": "truthy"},
			nil,
		)
		assert.Len(t, errs["consent"], 1)

		errs = v.Validate(
			map[string]interface{}{"consent": []string{"on"}},
			map[string]string{"consent.*": "truthy"},
			nil,
		)
		assert.Empty(t, errs)
	})
}

func TestValidateMiscRules(t *testing.T) {
	v := New()

	t.Run("Date", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"when": "2026-08-31"},
			map[string]string{"when": "date"},
			nil,
		)
		assert.Empty(t, errs)

		errs = v.Validate(
			map[string]interface{}{"when": "yesterday"},
			map[string]string{"when": "date"},
			nil,
		)
		assert.Len(t, errs["when"], 1)
	})

	t.Run("Regex", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"zip": "1234"},
			map[string]string{"zip": `regex:^\d{4}$`},
			nil,
		)
		assert.Empty(t, errs)
	})

	t.Run("UnknownRuleIgnored", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"x": "anything"},
			map[string]string{"x": "some_custom_rule"},
			nil,
		)
		assert.Empty(t, errs)
	})

	t.Run("FallbackMessage", func(t *testing.T) {
		errs := v.Validate(
			map[string]interface{}{"contact": "nope"},
			map[string]string{"contact": "email"},
			nil,
		)
		assert.Equal(t, []string{"contact is invalid"}, errs["contact"])
	})
}
