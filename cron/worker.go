package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"mentorhub/config"
	sessionRepo "mentorhub/database/repository/session"
	userRepo "mentorhub/database/repository/user"
	"mentorhub/metrics"
	"mentorhub/models"
	"mentorhub/services/tasks"

	"github.com/hibiken/asynq"
)

// InitSummaryWorker runs the async summary-generation worker in background.
func InitSummaryWorker(repo sessionRepo.SessionRepository, users userRepo.UserRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: config.AppConfig.SummaryWorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSummaryGenerate, handleSummaryTask(repo, users))

	// Start async worker with retry logic
	go func() {
		log.Println("[SummaryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SummaryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SummaryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleSummaryTask generates the summary text for a completed session and
// writes it back. Errors are returned so asynq retries up to the bound set
// at enqueue time; a missing session is not retried since that cannot heal.
func handleSummaryTask(repo sessionRepo.SessionRepository, users userRepo.UserRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.SummaryPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid summary payload: %v: %w", err, asynq.SkipRetry)
		}

		sess, err := repo.GetByID(ctx, payload.SessionID)
		if errors.Is(err, sessionRepo.ErrNotFound) {
			log.Printf("[SummaryWorker] Session %s not found, skipping", payload.SessionID)
			return nil
		}
		if err != nil {
			metrics.SummaryJobsFailed.Inc()
			return err
		}

		expert, err := users.GetExpertByID(ctx, sess.ExpertID)
		if err != nil {
			metrics.SummaryJobsFailed.Inc()
			return fmt.Errorf("failed to resolve expert %s: %w", sess.ExpertID, err)
		}
		student, err := users.GetStudentByID(ctx, sess.StudentID)
		if err != nil {
			metrics.SummaryJobsFailed.Inc()
			return fmt.Errorf("failed to resolve student %s: %w", sess.StudentID, err)
		}

		if err := repo.SetSummary(ctx, sess.ID, buildSummary(sess, expert, student)); err != nil {
			metrics.SummaryJobsFailed.Inc()
			return fmt.Errorf("failed to store summary for session %s: %w", sess.ID, err)
		}

		metrics.SummaryJobsCompleted.Inc()
		log.Printf("[SummaryWorker] Summary generated for session %s", sess.ID)
		return nil
	}
}

// buildSummary renders the summary text for a completed session.
func buildSummary(sess *models.Session, expert *models.Expert, student *models.Student) string {
	minutes := sess.DurationMinutes()
	duration := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)

	return fmt.Sprintf(
		"Session %s — %s\nDuration: %s\nExpert: %s (ID %s)\nStudent: %s (ID %s)",
		sess.ID, sess.DisplayName(), duration,
		expert.Name, expert.ID,
		student.Name, student.ID,
	)
}
