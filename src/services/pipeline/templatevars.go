package pipeline

import (
	"fmt"
	"strings"

	"formrunner/src/hooks"
	"formrunner/src/models"
	"formrunner/src/utils"
)

// buildTemplateVars renders the submitted data into the variable set email
// templates receive, then lets hook handlers reshape it.
func (p *Pipeline) buildTemplateVars(run *runState) error {
	fields := map[string]models.TemplateField{}

	for i := range run.form.Fields {
		f := &run.form.Fields[i]
		raw, present := run.data[f.Code]
		if !present {
			continue
		}

		value, isRaw := renderFieldValue(f, raw, run.attachments)
		fields[f.Code] = models.TemplateField{
			Name:                    f.Name,
			Type:                    f.Type,
			Description:             f.Description,
			Value:                   value,
			Raw:                     isRaw,
			ShowInEmailAutoreply:    f.ShowsInEmail("autoreply"),
			ShowInEmailNotification: f.ShowsInEmail("notification"),
		}
	}

	vars := &models.TemplateVars{
		Fields: fields,
		Form:   run.form.Snapshot(),
	}

	hctx := &hooks.Context{Form: run.form, Data: run.data, Vars: vars}
	if err := p.Hooks.Emit(hooks.BeforeSetTemplateVars, hctx); err != nil {
		return err
	}
	run.vars = hctx.Vars
	return nil
}

// renderFieldValue turns one submitted value into display text. The second
// return marks values carrying markup that must not be escaped again.
func renderFieldValue(f *models.Field, raw interface{}, attachments map[string]Attachment) (string, bool) {
	if f.IsFile() {
		att, ok := attachments[f.Code]
		if !ok {
			return "N/A", false
		}
		return fmt.Sprintf("See attached: <code>%s</code>", att.FileName), true
	}

	list, isList := raw.([]string)
	if !isList {
		return strings.TrimSpace(toString(raw)), false
	}

	// A checkbox without declared options is a bare consent box; any
	// submitted value means it was ticked.
	if f.Type == models.FieldCheckbox && len(f.OptionCodes()) == 0 {
		if len(list) > 0 {
			return "Checked", false
		}
		return "N/A", false
	}

	if len(list) == 0 {
		return "N/A", false
	}

	labels := make([]string, 0, len(list))
	for _, code := range list {
		if label, ok := f.OptionLabel(code); ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, code)
		}
	}
	return strings.Join(labels, ", "), false
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// submissionLink builds the signed moreInfoLink for a stored submission.
func (p *Pipeline) submissionLink(sub *models.Submission) string {
	if sub == nil || p.BaseURL == "" {
		return ""
	}
	return utils.SubmissionViewLink(p.BaseURL, sub.ID.Hex())
}
