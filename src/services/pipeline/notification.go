package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"formrunner/src/hooks"
	"formrunner/src/models"
	"formrunner/src/rules"
)

// sendNotification emails the submission to the configured recipients. An
// empty recipient list skips silently; an invalid one is an operator error
// reported as a notification config outcome, and no email leaves.
func (p *Pipeline) sendNotification(ctx context.Context, run *runState) (*models.Outcome, error) {
	form := run.form

	hctx := &hooks.Context{Form: form, Data: run.data, RecipientsRaw: form.NotificationRecipientList()}
	if err := p.Hooks.Emit(hooks.BeforeSendNotification, hctx); err != nil {
		return nil, err
	}

	recipients := splitRecipients(hctx.RecipientsRaw)
	if len(recipients) == 0 {
		if err := p.Hooks.Emit(hooks.AfterSendNotification, &hooks.Context{Form: form, Data: run.data, Sent: false}); err != nil {
			return nil, err
		}
		return nil, nil
	}

	v := rules.New()
	nctx := &hooks.Context{
		Form:       form,
		Data:       run.data,
		Recipients: recipients,
		Rules:      recipientRules(recipients),
		Validator:  v,
	}
	if err := p.Hooks.Emit(hooks.BeforeNotificationValidation, nctx); err != nil {
		return nil, err
	}

	errs := v.Validate(indexRecipients(nctx.Recipients), nctx.Rules, nil)
	if len(errs) > 0 {
		if err := p.Hooks.Emit(hooks.OnNotificationValidationFail, nctx); err != nil {
			return nil, err
		}
		log.Println("❌ Invalid notification recipients configured for form:", form.Code)
		return &models.Outcome{
			Kind:    models.OutcomeNotificationConfig,
			Message: "Invalid notification recipient configuration.",
		}, nil
	}
	if err := p.Hooks.Emit(hooks.OnNotificationValidationSuccess, nctx); err != nil {
		return nil, err
	}
	recipients = nctx.Recipients

	msg := p.composeNotification(run, recipients)
	if err := p.dispatch(ctx, msg); err != nil {
		return nil, err
	}

	if err := p.Hooks.Emit(hooks.AfterSendNotification, &hooks.Context{Form: form, Data: run.data, Sent: true, Recipients: recipients}); err != nil {
		return nil, err
	}
	return nil, nil
}

func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Recipients are validated through the same rule engine as field input, one
// synthetic index key per address.
func recipientRules(recipients []string) map[string]string {
	ruleSet := make(map[string]string, len(recipients))
	for i := range recipients {
		ruleSet[fmt.Sprintf("%d", i)] = "required|email"
	}
	return ruleSet
}

func indexRecipients(recipients []string) map[string]interface{} {
	data := make(map[string]interface{}, len(recipients))
	for i, addr := range recipients {
		data[fmt.Sprintf("%d", i)] = addr
	}
	return data
}
