package models

import "net/http"

// OutcomeKind tags the terminal result of one pipeline run.
type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeValidationFailed   OutcomeKind = "validation_failed"
	OutcomeNoData             OutcomeKind = "no_data"
	OutcomeRecaptchaFailed    OutcomeKind = "recaptcha_failed"
	OutcomeThrottled          OutcomeKind = "throttled"
	OutcomeNotificationConfig OutcomeKind = "notification_config"
	OutcomeAutoReplyConfig    OutcomeKind = "autoreply_config"
)

// Outcome is the structured result of a pipeline run. It is not persisted;
// the transport layer translates it to an HTTP response.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Success payload
	Action      string `json:"action,omitempty"`
	RedirectURL string `json:"url,omitempty"`
	Message     string `json:"message,omitempty"`

	// Failure payload
	FieldErrors map[string]string `json:"errors,omitempty"`
	FailedOn    string            `json:"failedOn,omitempty"`
}

func (o *Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// HTTPStatus maps the outcome to its transport status code. Notification and
// auto-reply misconfigurations report 501: the submission itself was valid but
// an admin-controlled setting blocks it.
func (o *Outcome) HTTPStatus() int {
	switch o.Kind {
	case OutcomeSuccess:
		return http.StatusOK
	case OutcomeThrottled:
		return http.StatusTooManyRequests
	case OutcomeNotificationConfig, OutcomeAutoReplyConfig:
		return http.StatusNotImplemented
	default:
		return http.StatusBadRequest
	}
}
