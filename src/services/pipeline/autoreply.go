package pipeline

import (
	"context"
	"log"

	"formrunner/src/hooks"
	"formrunner/src/models"
	"formrunner/src/services/mailer"
)

// sendAutoReply emails the submitter back, addressing them from their own
// submitted email and name fields. A submitter who left those fields blank
// simply gets no reply; a form that never wired the field references at all
// is misconfigured and reports an auto-reply config outcome.
func (p *Pipeline) sendAutoReply(ctx context.Context, run *runState) (*models.Outcome, error) {
	form := run.form
	emailField := form.AutoReplyEmail()
	nameField := form.AutoReplyName()

	var toEmail, toName string
	if emailField != nil {
		toEmail, _ = run.data[emailField.Code].(string)
	}
	if nameField != nil {
		toName, _ = run.data[nameField.Code].(string)
	}

	if (emailField != nil && toEmail == "") || (nameField != nil && toName == "") {
		return nil, p.Hooks.Emit(hooks.OnAutoReplyNotProvided, &hooks.Context{
			Form: form, Data: run.data, ToEmail: toEmail, ToName: toName,
		})
	}

	hctx := &hooks.Context{Form: form, Data: run.data, ToEmail: toEmail, ToName: toName}
	if err := p.Hooks.Emit(hooks.BeforeSendAutoReply, hctx); err != nil {
		return nil, err
	}
	toEmail, toName = hctx.ToEmail, hctx.ToName

	if emailField == nil && toEmail == "" {
		return p.autoReplyConfigFailure(run, toEmail, toName, "email")
	}
	if nameField == nil && toName == "" {
		return p.autoReplyConfigFailure(run, toEmail, toName, "name")
	}

	msg := mailer.Message{
		Template: form.AutoReplyTemplateName(),
		Subject:  "Thank you for contacting us",
		Vars:     run.vars.ForEmail("autoreply"),
		Envelope: mailer.Envelope{To: toEmail, ToName: toName},
	}
	if err := p.dispatch(ctx, msg); err != nil {
		return nil, err
	}

	if err := p.Hooks.Emit(hooks.AfterSendAutoReply, &hooks.Context{
		Form: form, Data: run.data, Sent: true, ToEmail: toEmail, ToName: toName,
	}); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) autoReplyConfigFailure(run *runState, toEmail, toName, failedOn string) (*models.Outcome, error) {
	if err := p.Hooks.Emit(hooks.OnAutoReplyValidationFail, &hooks.Context{
		Form: run.form, Data: run.data, ToEmail: toEmail, ToName: toName, FailedOn: failedOn,
	}); err != nil {
		return nil, err
	}
	log.Println("❌ Auto-reply", failedOn, "field not configured for form:", run.form.Code)
	return &models.Outcome{
		Kind:     models.OutcomeAutoReplyConfig,
		FailedOn: failedOn,
		Message:  "Auto-reply " + failedOn + " field is not configured.",
	}, nil
}
