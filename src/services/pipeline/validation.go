package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"formrunner/src/hooks"
	"formrunner/src/models"
	"formrunner/src/rules"
)

// formValidation compiles the form into the declared field codes, the rule
// set (including ".*" per-element entries for multi-value fields) and the
// per-field messages. When recaptcha is on, the challenge response is a
// synthetic required field.
func formValidation(form *models.Form) ([]string, map[string]string, map[string]string) {
	codes := make([]string, 0, len(form.Fields))
	ruleSet := map[string]string{}
	messages := map[string]string{}

	for i := range form.Fields {
		f := &form.Fields[i]
		codes = append(codes, f.Code)

		if compiled := f.CompiledRules(); compiled != "" {
			ruleSet[f.Code] = compiled
		}
		if rule := f.OptionRule(); rule != "" {
			ruleSet[f.Code+".*"] = rule
		}
		if _, any := ruleSet[f.Code]; any || f.IsMulti() {
			messages[f.Code] = fieldMessage(f)
		}
	}

	if form.RecaptchaEnabled() {
		codes = append(codes, recaptchaField)
		ruleSet[recaptchaField] = "required|string"
		messages[recaptchaField] = "Invalid ReCAPTCHA response"
	}

	return codes, ruleSet, messages
}

func fieldMessage(f *models.Field) string {
	if f.ValidationMessage != "" {
		return f.ValidationMessage
	}
	name := f.Name
	if name == "" {
		name = f.Code
	}
	return name + " is invalid"
}

// extractInput keeps only declared field keys, normalizing multi-value fields
// to string lists and everything else to strings. Keys absent from the input
// stay absent; they are not nulled in.
func extractInput(form *models.Form, codes []string, input map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{}
	for _, code := range codes {
		raw, ok := input[code]
		if !ok {
			continue
		}
		field := form.FieldByCode(code)
		if field != nil && field.IsMulti() {
			data[code] = normalizeList(raw)
		} else {
			data[code] = cast.ToString(raw)
		}
	}
	return data
}

func normalizeList(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, cast.ToString(item))
		}
		return out
	default:
		s := cast.ToString(raw)
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
}

// ValidateField runs the full form validation but reports only one field's
// result. Backs the per-field AJAX endpoint so inline feedback matches what a
// real submit would say.
func (p *Pipeline) ValidateField(ctx context.Context, formCode, fieldCode string, input map[string]interface{}) (*models.Outcome, error) {
	form, err := p.Forms.LoadByCode(ctx, formCode)
	if err != nil {
		return nil, err
	}

	field := form.FieldByCode(fieldCode)
	if field == nil {
		return nil, fmt.Errorf("unknown field %q on form %q", fieldCode, formCode)
	}

	codes, ruleSet, messages := formValidation(form)
	data := extractInput(form, codes, input)

	v := rules.New()
	hctx := &hooks.Context{
		Form:      form,
		Field:     field,
		Value:     data[fieldCode],
		Data:      data,
		Rules:     ruleSet,
		Messages:  messages,
		Validator: v,
	}
	if err := p.Hooks.Emit(hooks.BeforeValidateField, hctx); err != nil {
		return nil, err
	}

	errs := v.Validate(hctx.Data, hctx.Rules, hctx.Messages)
	if msgs, failed := errs[fieldCode]; failed {
		if err := p.Hooks.Emit(hooks.OnValidateFieldFail, hctx); err != nil {
			return nil, err
		}
		return &models.Outcome{
			Kind:        models.OutcomeValidationFailed,
			FieldErrors: map[string]string{fieldCode: strings.Join(msgs, " \n")},
		}, nil
	}

	if err := p.Hooks.Emit(hooks.OnValidateFieldPass, hctx); err != nil {
		return nil, err
	}
	return &models.Outcome{Kind: models.OutcomeSuccess}, nil
}
