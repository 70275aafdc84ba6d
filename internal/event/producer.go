package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gr1d99/shopping-list-api-sub000/internal/domain"
	pkgkafka "github.com/gr1d99/shopping-list-api-sub000/pkg/kafka"
)

// Kafka topic constants for account domain events.
const (
	TopicUserRegistered         = "shoplist.user.registered"
	TopicPasswordResetRequested = "shoplist.user.password_reset_requested"
	TopicUserDeleted            = "shoplist.user.deleted"
)

// Aggregate type constant.
const AggregateTypeUser = "user"

// Source identifier for events originating from this service.
const SourceShoppingListAPI = "shopping-list-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PasswordResetRequestedData is the payload for a password_reset_requested
// event. The email sender consumes this queue and delivers the token.
type PasswordResetRequestedData struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// UserDeletedData is the payload for a user.deleted event.
type UserDeletedData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Producer publishes account domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	return p.publish(ctx, TopicUserRegistered, user.ID, data)
}

// PublishPasswordResetRequested publishes a password_reset_requested event
// carrying the opaque reset token for out-of-band delivery.
func (p *Producer) PublishPasswordResetRequested(ctx context.Context, user *domain.User, token string) error {
	data := PasswordResetRequestedData{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}
	return p.publish(ctx, TopicPasswordResetRequested, user.ID, data)
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, user *domain.User) error {
	data := UserDeletedData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	return p.publish(ctx, TopicUserDeleted, user.ID, data)
}

func (p *Producer) publish(ctx context.Context, topic string, userID int64, data any) error {
	event, err := pkgkafka.NewEvent(topic, strconv.FormatInt(userID, 10), AggregateTypeUser, SourceShoppingListAPI, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.Int64("user_id", userID),
	)

	return nil
}
