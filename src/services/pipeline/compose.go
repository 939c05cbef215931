package pipeline

import (
	"context"

	"formrunner/src/services/mailer"
	"formrunner/src/settings"
)

func (p *Pipeline) composeNotification(run *runState, recipients []string) mailer.Message {
	form := run.form

	env := mailer.Envelope{
		To:          recipients[0],
		CC:          recipients[1:],
		Attachments: attachmentPaths(run.attachments),
	}
	if form.SendsReplyTo() {
		env.ReplyTo, env.ReplyToName = p.replyTo(run)
	}

	return mailer.Message{
		Template: form.NotificationTemplateName(),
		Subject:  "New submission: " + form.Title,
		Vars:     run.vars.ForEmail("notification"),
		Envelope: env,
	}
}

// replyTo resolves the notification Reply-To header from the submitter's own
// field values, so admins can answer directly from their mail client.
func (p *Pipeline) replyTo(run *runState) (email, name string) {
	if f := run.form.NotifReplyToEmail(); f != nil {
		email, _ = run.data[f.Code].(string)
	}
	if f := run.form.NotifReplyToName(); f != nil {
		name, _ = run.data[f.Code].(string)
	}
	return email, name
}

func attachmentPaths(attachments map[string]Attachment) map[string]string {
	if len(attachments) == 0 {
		return nil
	}
	out := make(map[string]string, len(attachments))
	for code, att := range attachments {
		name := att.FileName
		if _, taken := out[name]; taken {
			name = code + "_" + name
		}
		out[name] = att.LocalPath
	}
	return out
}

// dispatch sends now or enqueues, depending on the queue_emails setting. A
// transport failure is fatal to the run, matching the persistence stages.
func (p *Pipeline) dispatch(ctx context.Context, msg mailer.Message) error {
	if p.Mail == nil {
		return errNoMailer
	}
	if settings.Bool(p.Settings, "queue_emails", false) {
		return p.Mail.Queue(ctx, msg)
	}
	return p.Mail.Send(ctx, msg)
}
