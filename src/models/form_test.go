package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formrunner/src/settings"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func TestFormSettingResolution(t *testing.T) {
	store := settings.NewMemoryStore(map[string]interface{}{
		"submit_text":          "Go",
		"max_requests_per_day": 3,
		"enable_recaptcha":     true,
	})

	t.Run("FormOverrideWins", func(t *testing.T) {
		form := (&Form{SubmitText: strPtr("Send it")}).BindSettings(store)
		assert.Equal(t, "Send it", form.SubmitTextValue())
	})

	t.Run("EmptyOverrideIsStillAuthoritative", func(t *testing.T) {
		form := (&Form{SubmitText: strPtr("")}).BindSettings(store)
		assert.Equal(t, "", form.SubmitTextValue())
	})

	t.Run("FalseOverrideBeatsTrueSetting", func(t *testing.T) {
		form := (&Form{EnableRecaptcha: boolPtr(false)}).BindSettings(store)
		assert.False(t, form.RecaptchaEnabled())
	})

	t.Run("SettingUsedWhenNoOverride", func(t *testing.T) {
		form := (&Form{}).BindSettings(store)
		assert.Equal(t, "Go", form.SubmitTextValue())
		assert.Equal(t, 3, form.MaxRequests())
		assert.True(t, form.RecaptchaEnabled())
	})

	t.Run("HardDefaultWhenStoreEmpty", func(t *testing.T) {
		form := (&Form{}).BindSettings(settings.NewMemoryStore(nil))
		assert.Equal(t, "Submit", form.SubmitTextValue())
		assert.Equal(t, 5, form.MaxRequests())
		assert.False(t, form.RecaptchaEnabled())
		assert.True(t, form.DoesSaveData())
	})
}

func TestFormMaxRequestsFloor(t *testing.T) {
	form := (&Form{MaxRequestsPerDay: intPtr(0)}).BindSettings(nil)
	assert.Equal(t, 1, form.MaxRequests())

	form = (&Form{MaxRequestsPerDay: intPtr(-3)}).BindSettings(nil)
	assert.Equal(t, 1, form.MaxRequests())
}

func TestFormFieldClassResolution(t *testing.T) {
	store := settings.NewMemoryStore(map[string]interface{}{"field_class": "input"})

	field := Field{Code: "name", FieldClass: strPtr("fancy-input")}
	plain := Field{Code: "other"}

	t.Run("FieldTierWins", func(t *testing.T) {
		form := (&Form{FieldClass: strPtr("form-wide")}).BindSettings(store)
		assert.Equal(t, "fancy-input", form.FieldClassFor(&field))
	})

	t.Run("FormTierNext", func(t *testing.T) {
		form := (&Form{FieldClass: strPtr("form-wide")}).BindSettings(store)
		assert.Equal(t, "form-wide", form.FieldClassFor(&plain))
	})

	t.Run("SettingTierNext", func(t *testing.T) {
		form := (&Form{}).BindSettings(store)
		assert.Equal(t, "input", form.FieldClassFor(&plain))
	})

	t.Run("HardDefaultLast", func(t *testing.T) {
		form := (&Form{}).BindSettings(nil)
		assert.Equal(t, "form-control", form.FieldClassFor(&plain))
	})
}

func TestFormSortFields(t *testing.T) {
	form := Form{Fields: []Field{
		{Code: "c", SortOrder: 3},
		{Code: "a", SortOrder: 1},
		{Code: "b", SortOrder: 2},
		{Code: "a2", SortOrder: 1},
	}}
	form.SortFields()

	codes := []string{}
	for _, f := range form.Fields {
		codes = append(codes, f.Code)
	}
	// Stable: equal sort orders keep insertion order.
	assert.Equal(t, []string{"a", "a2", "b", "c"}, codes)
}

func TestFormFieldRefs(t *testing.T) {
	form := Form{
		Fields:              []Field{{Code: "email", Type: FieldEmail}, {Code: "name"}},
		AutoReplyEmailField: strPtr("email"),
		AutoReplyNameField:  strPtr("missing"),
	}

	assert.NotNil(t, form.AutoReplyEmail())
	assert.Equal(t, "email", form.AutoReplyEmail().Code)
	assert.Nil(t, form.AutoReplyName())

	form.AutoReplyEmailField = strPtr("")
	assert.Nil(t, form.AutoReplyEmail())
}

func TestFormSnapshot(t *testing.T) {
	form := (&Form{Code: "contact", Title: "Contact Us", SubmitText: strPtr("Go")}).BindSettings(nil)
	snap := form.Snapshot()

	assert.Equal(t, "contact", snap["code"])
	assert.Equal(t, "Contact Us", snap["title"])
	assert.Equal(t, "Go", snap["submitText"])
	assert.Equal(t, "hide", snap["onSuccess"])
}
