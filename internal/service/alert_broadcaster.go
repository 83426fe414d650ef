package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Zayne-Feng/group-assessment-v3/internal/dto"
	"github.com/Zayne-Feng/group-assessment-v3/internal/models"
	"github.com/Zayne-Feng/group-assessment-v3/internal/observability"
)

// AlertBroadcaster announces committed alerts to staff-facing subscribers.
type AlertBroadcaster interface {
	Broadcast(ctx context.Context, alert models.Alert)
}

// AlertEvent is the payload published for each new alert.
type AlertEvent struct {
	Source string            `json:"source"`
	Alert  dto.AlertResponse `json:"alert"`
	SentAt time.Time         `json:"sent_at"`
}

type alertBroadcaster struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	nodeID       string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAlertBroadcaster publishes alerts on "<channelBase>:alerts" over Redis pub/sub
// and "<channelBase>.alerts" over NATS. Either transport may be nil.
func NewAlertBroadcaster(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) AlertBroadcaster {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":alerts"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".alerts"
	}

	return &alertBroadcaster{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		nodeID:       uuid.NewString(),
		logger:       logger.With().Str("component", "alert_broadcaster").Logger(),
		now:          time.Now,
	}
}

// Broadcast publishes best-effort; failures are logged and counted but never returned.
func (b *alertBroadcaster) Broadcast(ctx context.Context, alert models.Alert) {
	payload, err := json.Marshal(AlertEvent{
		Source: b.nodeID,
		Alert:  dto.NewAlertResponse(alert),
		SentAt: b.now().UTC(),
	})
	if err != nil {
		b.logger.Warn().Err(err).Uint("alert_id", alert.ID).Msg("failed to encode alert event")
		return
	}

	if b.redis != nil && b.redisChannel != "" {
		if err := b.redis.Publish(ctx, b.redisChannel, payload).Err(); err != nil {
			observability.AlertBroadcasts().WithLabelValues("redis", "error").Inc()
			b.logger.Warn().Err(err).Uint("alert_id", alert.ID).Msg("failed to publish alert to redis")
		} else {
			observability.AlertBroadcasts().WithLabelValues("redis", "ok").Inc()
		}
	}

	if b.nats != nil && b.natsSubject != "" {
		if err := b.nats.Publish(b.natsSubject, payload); err != nil {
			observability.AlertBroadcasts().WithLabelValues("nats", "error").Inc()
			b.logger.Warn().Err(err).Uint("alert_id", alert.ID).Msg("failed to publish alert to nats")
		} else {
			observability.AlertBroadcasts().WithLabelValues("nats", "ok").Inc()
		}
	}
}
