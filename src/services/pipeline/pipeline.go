// Package pipeline runs the submission lifecycle: load the form, validate
// input against the compiled rule set, verify recaptcha, throttle, persist,
// then dispatch notification and auto-reply email. Every stage emits hook
// points so deployments can observe or mutate a run without forking the
// pipeline.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"formrunner/src/hooks"
	"formrunner/src/models"
	"formrunner/src/rules"
	"formrunner/src/services/mailer"
	"formrunner/src/settings"
)

// FormLoader resolves a form code to its definition.
type FormLoader interface {
	LoadByCode(ctx context.Context, code string) (*models.Form, error)
}

// SubmissionStore is the persistence the pipeline needs: create, plus the
// per-IP count behind the throttle window.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	CountSince(ctx context.Context, formID primitive.ObjectID, ip string, since time.Time) (int64, error)
}

// Verifier checks an anti-spam challenge response. Any outcome other than a
// confirmed pass is a fail.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// Cache stores rendered form snapshots.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Pipeline wires the submission stages together. Zero-value optional deps
// (Hooks, Recaptcha, Files, Cache, BaseURL) degrade individual features; Forms,
// Submissions and Mail are required for a full run.
type Pipeline struct {
	Forms       FormLoader
	Submissions SubmissionStore
	Settings    settings.Store
	Hooks       *hooks.Bus
	Mail        mailer.Mailer
	Recaptcha   Verifier
	Files       FileStore
	Cache       Cache

	// BaseURL is the public address used to build signed submission links.
	BaseURL string
}

const recaptchaField = "g-recaptcha-response"

// runState carries the per-run working set between stages.
type runState struct {
	form        *models.Form
	data        map[string]interface{}
	attachments map[string]Attachment
	vars        *models.TemplateVars
	submission  *models.Submission
}

// Run processes one submission end to end and returns its outcome. A non-nil
// error means the run itself broke (store down, mail transport failure, hook
// abort); every user-attributable result is an Outcome, not an error.
func (p *Pipeline) Run(ctx context.Context, formCode string, input map[string]interface{}, originAddr, originURL string) (*models.Outcome, error) {
	if err := p.Hooks.Emit(hooks.BeforeRun, &hooks.Context{Data: input}); err != nil {
		return nil, err
	}

	outcome, err := p.run(ctx, formCode, input, originAddr, originURL)
	if err != nil {
		return nil, err
	}

	if err := p.Hooks.Emit(hooks.AfterRun, &hooks.Context{Outcome: outcome}); err != nil {
		return nil, err
	}
	return outcome, nil
}

func (p *Pipeline) run(ctx context.Context, formCode string, input map[string]interface{}, originAddr, originURL string) (*models.Outcome, error) {
	if err := p.Hooks.Emit(hooks.BeforeFormSubmit, &hooks.Context{Data: input}); err != nil {
		return nil, err
	}

	form, err := p.Forms.LoadByCode(ctx, formCode)
	if err != nil {
		return nil, err
	}

	codes, ruleSet, messages := formValidation(form)
	data := extractInput(form, codes, input)
	if len(data) == 0 {
		return &models.Outcome{Kind: models.OutcomeNoData, Message: "No data supplied."}, nil
	}

	v := rules.New()
	hctx := &hooks.Context{
		Form:      form,
		Data:      data,
		Rules:     ruleSet,
		Messages:  messages,
		Validator: v,
	}
	if err := p.Hooks.Emit(hooks.BeforeValidateForm, hctx); err != nil {
		return nil, err
	}

	if errs := v.Validate(hctx.Data, hctx.Rules, hctx.Messages); len(errs) > 0 {
		if err := p.Hooks.Emit(hooks.OnValidateFormFail, hctx); err != nil {
			return nil, err
		}
		return &models.Outcome{
			Kind:        models.OutcomeValidationFailed,
			FieldErrors: joinFieldErrors(errs),
		}, nil
	}
	if err := p.Hooks.Emit(hooks.AfterValidateForm, hctx); err != nil {
		return nil, err
	}
	data = hctx.Data

	if form.RecaptchaEnabled() {
		token, _ := data[recaptchaField].(string)
		if p.Recaptcha == nil || !p.Recaptcha.Verify(ctx, token, originAddr) {
			if err := p.Hooks.Emit(hooks.OnRecaptchaFail, &hooks.Context{Form: form, Token: token}); err != nil {
				return nil, err
			}
			return &models.Outcome{
				Kind:        models.OutcomeRecaptchaFailed,
				FieldErrors: map[string]string{recaptchaField: "Invalid ReCAPTCHA response"},
			}, nil
		}
		if err := p.Hooks.Emit(hooks.OnRecaptchaSuccess, &hooks.Context{
			Form: form, Token: token, Data: data, Rules: hctx.Rules, Messages: hctx.Messages,
		}); err != nil {
			return nil, err
		}
		// The challenge token is transport noise, not submission data.
		delete(data, recaptchaField)
	}

	run := &runState{form: form, data: data}
	run.attachments = p.resolveFiles(ctx, run)

	if err := p.buildTemplateVars(run); err != nil {
		return nil, err
	}

	if out, err := p.throttle(ctx, run, originAddr); err != nil || out != nil {
		return out, err
	}

	if form.DoesSaveData() {
		if out, err := p.saveSubmission(ctx, run, originAddr, originURL); err != nil || out != nil {
			return out, err
		}
	}

	if form.SendsNotifications() {
		if out, err := p.sendNotification(ctx, run); err != nil || out != nil {
			return out, err
		}
	}

	if form.RepliesAutomatically() {
		if out, err := p.sendAutoReply(ctx, run); err != nil || out != nil {
			return out, err
		}
	}

	outcome := &models.Outcome{
		Kind:        models.OutcomeSuccess,
		Action:      form.OnSuccessAction(),
		RedirectURL: form.OnSuccessRedirectURL(),
		Message:     form.OnSuccessMessageText(),
	}
	if err := p.Hooks.Emit(hooks.AfterFormSubmit, &hooks.Context{Form: form, Data: data, Outcome: outcome}); err != nil {
		return nil, err
	}
	return outcome, nil
}

// throttle enforces the sliding 24h per-IP window. Only meaningful when the
// form saves data with IPs attached; otherwise there is nothing to count.
func (p *Pipeline) throttle(ctx context.Context, run *runState, originAddr string) (*models.Outcome, error) {
	form := run.form
	if !form.DoesSaveData() || !form.HasIPRestriction() {
		return nil, nil
	}
	if !settings.Bool(p.Settings, "store_ips", true) {
		return nil, nil
	}

	since := time.Now().Add(-24 * time.Hour)
	count, err := p.Submissions.CountSince(ctx, form.ID, originAddr, since)
	if err != nil {
		return nil, err
	}
	if count >= int64(form.MaxRequests()) {
		return &models.Outcome{
			Kind:    models.OutcomeThrottled,
			Message: form.ThrottleMessageText(),
		}, nil
	}
	return nil, nil
}

func (p *Pipeline) saveSubmission(ctx context.Context, run *runState, originAddr, originURL string) (*models.Outcome, error) {
	draft := &models.Submission{
		FormID:    run.form.ID,
		OriginURL: originURL,
		Data:      run.data,
	}
	if settings.Bool(p.Settings, "store_ips", true) {
		draft.IP = originAddr
	}

	hctx := &hooks.Context{Form: run.form, Data: run.data, Draft: draft}
	if err := p.Hooks.Emit(hooks.BeforeSaveSubmission, hctx); err != nil {
		return nil, err
	}

	stored, err := p.Submissions.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	run.submission = stored
	run.vars.MoreInfoLink = p.submissionLink(stored)

	if err := p.Hooks.Emit(hooks.AfterSaveSubmission, &hooks.Context{Form: run.form, Data: run.data, Submission: stored}); err != nil {
		return nil, err
	}
	return nil, nil
}

// joinFieldErrors collapses per-field message lists into the single string
// per field the transport layer exposes, joined with " \n".
func joinFieldErrors(errs map[string][]string) map[string]string {
	out := make(map[string]string, len(errs))
	for field, msgs := range errs {
		out[field] = strings.Join(msgs, " \n")
	}
	return out
}

var errNoMailer = errors.New("mailer not configured")
