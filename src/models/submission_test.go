package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderValue(t *testing.T) {
	t.Run("ListJoinsWithNewline", func(t *testing.T) {
		assert.Equal(t, "red\nblue", RenderValue([]string{"red", "blue"}))
	})

	t.Run("DecodedBSONList", func(t *testing.T) {
		assert.Equal(t, "a\nb", RenderValue([]interface{}{"a", "b"}))
	})

	t.Run("EscapesMarkup", func(t *testing.T) {
		assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", RenderValue("<b>hi</b>"))
	})

	t.Run("UnknownTypesRenderEmpty", func(t *testing.T) {
		assert.Equal(t, "", RenderValue(42))
		assert.Equal(t, "", RenderValue(nil))
	})
}

func TestOutcomeHTTPStatus(t *testing.T) {
	cases := map[OutcomeKind]int{
		OutcomeSuccess:            200,
		OutcomeValidationFailed:   400,
		OutcomeNoData:             400,
		OutcomeRecaptchaFailed:    400,
		OutcomeThrottled:          429,
		OutcomeNotificationConfig: 501,
		OutcomeAutoReplyConfig:    501,
	}
	for kind, status := range cases {
		o := Outcome{Kind: kind}
		assert.Equal(t, status, o.HTTPStatus(), string(kind))
	}
}
