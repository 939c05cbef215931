// Package mailer delivers notification and auto-reply emails over SMTP,
// either synchronously or through the Redis-backed job queue.
package mailer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"formrunner/src/models"
)

// TaskTypeEmailDeliver is the asynq task type for queued email delivery. The
// payload is a JSON-encoded Message.
const TaskTypeEmailDeliver = "email:deliver"

// Envelope carries the addressing for one outgoing email.
type Envelope struct {
	To          string            `json:"to"`
	ToName      string            `json:"toName"`
	CC          []string          `json:"cc,omitempty"`
	ReplyTo     string            `json:"replyTo,omitempty"`
	ReplyToName string            `json:"replyToName,omitempty"`
	Attachments map[string]string `json:"attachments,omitempty"` // display name -> local path
}

// Message is one renderable email: a template name, the variables to render
// it with, and the envelope.
type Message struct {
	Template string              `json:"template"`
	Subject  string              `json:"subject"`
	Vars     models.TemplateVars `json:"vars"`
	Envelope Envelope            `json:"envelope"`
}

// Mailer sends or defers messages. Queue falls back to a synchronous send
// when no queue backend is available.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Queue(ctx context.Context, msg Message) error
}

// QueueMailer sends through an SMTPSender and defers through asynq.
type QueueMailer struct {
	sender *SMTPSender
	queue  *asynq.Client
}

func New(sender *SMTPSender, queue *asynq.Client) *QueueMailer {
	return &QueueMailer{sender: sender, queue: queue}
}

func (m *QueueMailer) Send(ctx context.Context, msg Message) error {
	return m.sender.Send(ctx, msg)
}

// Queue enqueues the message for the worker. Without a queue client it
// degrades to a synchronous send so mail is never silently dropped.
func (m *QueueMailer) Queue(ctx context.Context, msg Message) error {
	if m.queue == nil {
		return m.Send(ctx, msg)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeEmailDeliver, payload)
	info, err := m.queue.EnqueueContext(ctx, task,
		asynq.TaskID(uuid.NewString()),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	log.Printf("📧 Queued email task id=%s to=%s template=%s", info.ID, msg.Envelope.To, msg.Template)
	return nil
}
