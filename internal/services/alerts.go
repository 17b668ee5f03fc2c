package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"guardian-backend/internal/models"
)

const AlertQueueKey = "queue:sos-alerts"

// AlertChannel is the pub/sub channel carrying live alerts for one user.
func AlertChannel(userID string) string {
	return "sos_alerts:" + userID
}

// AlertPublisher fans a freshly persisted SOS event out: onto the redis
// dispatch queue for the worker pool, and onto the owner's pub/sub
// channel for connected websocket clients. Both legs are best-effort;
// failures are logged and never surface to the caller, because the SOS
// event itself is already durable.
type AlertPublisher struct {
	redis *redis.Client
}

func NewAlertPublisher(redisClient *redis.Client) *AlertPublisher {
	return &AlertPublisher{redis: redisClient}
}

func (p *AlertPublisher) Notify(ctx context.Context, event *models.SOSEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("alert publish: failed to marshal event %s: %v", event.ID, err)
		return
	}

	if err := p.redis.LPush(ctx, AlertQueueKey, payload).Err(); err != nil {
		log.Printf("alert publish: failed to enqueue event %s: %v", event.ID, err)
	}

	if event.UserID == nil {
		return
	}

	msg, err := json.Marshal(models.WSMessage{
		Type: "sos_alert",
		Payload: models.SOSAlert{
			EventID:   event.ID,
			Status:    event.Status,
			Location:  event.Location,
			CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		log.Printf("alert publish: failed to marshal ws message for event %s: %v", event.ID, err)
		return
	}

	if err := p.redis.Publish(ctx, AlertChannel(event.UserID.String()), msg).Err(); err != nil {
		log.Printf("alert publish: failed to publish event %s: %v", event.ID, err)
	}
}
