// Package hooks is the extension-point dispatcher for the submission
// pipeline. External code registers handlers on named points; the pipeline
// emits each point with a shared mutable context, so a handler's changes are
// visible to every later handler and to the pipeline itself.
package hooks

import (
	"sync"

	"formrunner/src/models"
	"formrunner/src/rules"
)

// Point names one moment in pipeline execution.
type Point string

const (
	BeforeRun        Point = "beforeRun"
	AfterRun         Point = "afterRun"
	BeforeFormSubmit Point = "beforeFormSubmit"
	AfterFormSubmit  Point = "afterFormSubmit"

	BeforeValidateField Point = "beforeValidateField"
	OnValidateFieldFail Point = "onValidateFieldFail"
	OnValidateFieldPass Point = "onValidateFieldPass"

	BeforeValidateForm Point = "beforeValidateForm"
	OnValidateFormFail Point = "onValidateFormFail"
	AfterValidateForm  Point = "afterValidateForm"

	OnRecaptchaFail    Point = "onRecaptchaFail"
	OnRecaptchaSuccess Point = "onRecaptchaSuccess"

	BeforeSendNotification          Point = "beforeSendNotification"
	BeforeNotificationValidation    Point = "beforeNotificationValidation"
	OnNotificationValidationFail    Point = "onNotificationValidationFail"
	OnNotificationValidationSuccess Point = "onNotificationValidationSuccess"
	AfterSendNotification           Point = "afterSendNotification"

	BeforeSendAutoReply       Point = "beforeSendAutoReply"
	OnAutoReplyNotProvided    Point = "onAutoReplyEmailNotProvided"
	OnAutoReplyValidationFail Point = "onAutoReplyValidationFail"
	AfterSendAutoReply        Point = "afterSendAutoReply"

	BeforeSaveSubmission Point = "beforeSaveSubmission"
	AfterSaveSubmission  Point = "afterSaveSubmission"

	BeforeSetTemplateVars Point = "beforeSetTemplateVars"
	BeforeRenderPartial   Point = "beforeRenderPartial"
	AfterRenderPartial    Point = "afterRenderPartial"
)

// Context is the mutable payload handed to every handler of an emitted point.
// Only the fields relevant to that point are populated; see the pipeline for
// which point carries what.
type Context struct {
	Form  *models.Form
	Field *models.Field
	Value interface{}

	Data      map[string]interface{}
	Rules     map[string]string
	Messages  map[string]string
	Validator *rules.Validator

	Token string

	RecipientsRaw string
	Recipients    []string
	ToEmail       string
	ToName        string
	FailedOn      string
	Sent          bool

	Draft      *models.Submission
	Submission *models.Submission
	Vars       *models.TemplateVars
	Outcome    *models.Outcome

	CachingEnabled bool
	Rendered       string
}

// Handler observes or mutates the context. A returned error is fatal to the
// pipeline run; handlers are trusted, not sandboxed.
type Handler func(*Context) error

// Bus dispatches to handlers synchronously, in registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Point][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[Point][]Handler{}}
}

// On registers a handler for a point. Safe for concurrent use.
func (b *Bus) On(point Point, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[point] = append(b.handlers[point], h)
}

// Emit invokes every handler registered for point with the same context. The
// first handler error stops the chain and is returned to the pipeline. A nil
// bus emits nothing, so optional wiring needs no guard at call sites.
func (b *Bus) Emit(point Point, ctx *Context) error {
	if b == nil {
		return nil
	}

	b.mu.RLock()
	registered := b.handlers[point]
	b.mu.RUnlock()

	if ctx == nil {
		ctx = &Context{}
	}
	for _, h := range registered {
		if err := h(ctx); err != nil {
			return err
		}
	}
	return nil
}
