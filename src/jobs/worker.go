package jobs

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"formrunner/src/database"
	"formrunner/src/services/mailer"
)

// StartWorker runs the queued-email worker in the background. Without Redis
// there is no queue to drain, so it is a no-op.
func StartWorker() {
	if database.RedisClient == nil || database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Email worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(mailer.TaskTypeEmailDeliver, HandleEmailDeliverTask)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Email worker stopped:", err)
		}
	}()
	log.Println("✅ Email worker started")
}

// HandleEmailDeliverTask delivers one queued email. Errors bubble to asynq,
// which retries with backoff up to the task's MaxRetry.
func HandleEmailDeliverTask(ctx context.Context, t *asynq.Task) error {
	var msg mailer.Message
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		log.Println("❌ Malformed email task payload:", err)
		return err
	}

	sender, err := mailer.NewSMTPSenderFromEnv()
	if err != nil {
		return err
	}
	return sender.Send(ctx, msg)
}
