package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festreg/internal/badge"
	"festreg/internal/config"
	"festreg/internal/mailer"
	"festreg/internal/metrics"
	"festreg/internal/queue"
	"festreg/internal/registration"
	"festreg/internal/store"
)

// Worker consumes decision messages, renders badges for approvals, and
// sends the notification email through Resend. Delivery is best effort:
// a failure leaves email_sent false and the admin resends manually.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "festreg:decisions")
	}

	repo := registration.NewRepository(db.Client)
	gen := badge.NewGenerator()
	mail := mailer.New(cfg.ResendAPIKey, cfg.MailFrom)
	m := metrics.New()

	if cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set, email sends will fail")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for decisions...")
	for msg := range messages {
		if msg.Type != "decision" {
			continue
		}

		var body struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(msg.Body, &body); err != nil || body.ID == "" {
			log.Printf("malformed decision message: %v", err)
			continue
		}

		if err := notify(ctx, repo, gen, mail, m, body.ID); err != nil {
			log.Printf("notification failed for %s: %v", body.ID, err)
			m.EmailFailures.Inc()
			continue
		}

		log.Printf("notification sent for %s", body.ID)
		time.Sleep(10 * time.Millisecond) // small delay between sends
	}

	log.Println("worker stopped")
}

func notify(ctx context.Context, repo *registration.Repository, gen *badge.Generator, mail *mailer.Client, m *metrics.Metrics, id string) error {
	reg, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch reg.Status {
	case registration.StatusApproved:
		pdf, err := gen.Render(reg)
		if err != nil {
			return err
		}
		m.BadgesRendered.Inc()
		if _, err := mail.SendApproval(ctx, reg, pdf); err != nil {
			return err
		}
		m.EmailsSent.WithLabelValues("approval").Inc()
	case registration.StatusRejected:
		if _, err := mail.SendRejection(ctx, reg); err != nil {
			return err
		}
		m.EmailsSent.WithLabelValues("rejection").Inc()
	default:
		log.Printf("skipping %s: still pending", id)
		return nil
	}

	return repo.SetEmailSent(ctx, id, true)
}
