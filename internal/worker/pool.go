package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"guardian-backend/internal/metrics"
	"guardian-backend/internal/models"
	"guardian-backend/internal/services"
)

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type contactLister interface {
	ListEmergency(ctx context.Context, userID uuid.UUID) ([]models.Contact, error)
}

// Pool drains the SOS alert queue and delivers notifications to the
// owning user's emergency contacts. Delivery is at-most-once per event
// (a redis lock keyed by event id keeps workers from double-dispatching);
// failed deliveries are logged, never retried.
type Pool struct {
	redis       *redis.Client
	email       *services.EmailService
	users       userGetter
	contacts    contactLister
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, email *services.EmailService, users userGetter, contacts contactLister, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		email:       email,
		users:       users,
		contacts:    contacts,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d alert dispatch workers", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Alert worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, services.AlertQueueKey).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var event models.SOSEvent
		if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
			log.Printf("Alert worker %d: failed to parse event: %v", id, err)
			continue
		}

		// Try to acquire the per-event lock
		lockKey := fmt.Sprintf("alert_lock:%s", event.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this event
		}

		p.dispatch(ctx, id, &event)
	}
}

func (p *Pool) dispatch(ctx context.Context, workerID int, event *models.SOSEvent) {
	if event.UserID == nil {
		// Escalations from check-ins with an opaque userId have no user
		// record, so there is no contact list to resolve.
		log.Printf("Alert worker %d: event %s has no user, skipping contact dispatch", workerID, event.ID)
		metrics.AlertsDispatched.WithLabelValues("skipped").Inc()
		return
	}

	user, err := p.users.GetByID(ctx, *event.UserID)
	if err != nil {
		log.Printf("Alert worker %d: failed to load user for event %s: %v", workerID, event.ID, err)
		metrics.AlertsDispatched.WithLabelValues("failed").Inc()
		return
	}

	contacts, err := p.contacts.ListEmergency(ctx, user.ID)
	if err != nil {
		log.Printf("Alert worker %d: failed to load contacts for event %s: %v", workerID, event.ID, err)
		metrics.AlertsDispatched.WithLabelValues("failed").Inc()
		return
	}

	if len(contacts) == 0 {
		log.Printf("Alert worker %d: user %s has no emergency contacts for event %s", workerID, user.ID, event.ID)
		metrics.AlertsDispatched.WithLabelValues("skipped").Inc()
		return
	}

	for _, contact := range contacts {
		if contact.Email == nil || *contact.Email == "" {
			// SMS delivery to phone-only contacts is not wired up yet;
			// TODO: route through an SMS gateway once one is provisioned.
			log.Printf("Alert worker %d: contact %s has no email, skipping", workerID, contact.ID)
			metrics.AlertsDispatched.WithLabelValues("skipped").Inc()
			continue
		}

		if err := p.email.SendSOSAlertEmail(*contact.Email, contact.Name, user.FullName, event); err != nil {
			log.Printf("Alert worker %d: failed to alert %s for event %s: %v", workerID, contact.ID, event.ID, err)
			metrics.AlertsDispatched.WithLabelValues("failed").Inc()
			continue
		}

		metrics.AlertsDispatched.WithLabelValues("sent").Inc()
	}
}
