package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amer1301/bokrecension/internal/domain"
	pkgkafka "github.com/amer1301/bokrecension/pkg/kafka"
	"github.com/amer1301/bokrecension/pkg/logger"
)

// Kafka topic constants for review and user domain events.
const (
	TopicUserRegistered   = "bokrecension.user.registered"
	TopicReviewCreated    = "bokrecension.review.created"
	TopicReviewUpdated    = "bokrecension.review.updated"
	TopicReviewDeleted    = "bokrecension.review.deleted"
	TopicReviewLiked      = "bokrecension.review.liked"
	TopicReviewUnliked    = "bokrecension.review.unliked"
	TopicReadingStatusSet = "bokrecension.reading_status.set"
)

// Aggregate type constants.
const (
	AggregateTypeUser   = "user"
	AggregateTypeReview = "review"
)

// Source identifier for events originating from this service.
const SourceReviewService = "bokrecension-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReviewData is the payload for review lifecycle events.
type ReviewData struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}

// ReviewLikeData is the payload for review.liked and review.unliked events.
type ReviewLikeData struct {
	ReviewID string `json:"review_id"`
	UserID   string `json:"user_id"`
}

// ReadingStatusData is the payload for a reading_status.set event.
type ReadingStatusData struct {
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// Producer publishes domain events to Kafka.
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

// publish builds the envelope, stamps the originating request ID and any
// metadata, and sends it.
func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any, meta map[string]string) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	event.WithRequestID(logger.RequestIDFromContext(ctx))
	for k, v := range meta {
		event.WithMetadata(k, v)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	return nil
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}

	if err := p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data, nil); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	return p.publishReview(ctx, TopicReviewCreated, review)
}

// PublishReviewUpdated publishes a review.updated event.
func (p *Producer) PublishReviewUpdated(ctx context.Context, review *domain.Review) error {
	return p.publishReview(ctx, TopicReviewUpdated, review)
}

// PublishReviewDeleted publishes a review.deleted event.
func (p *Producer) PublishReviewDeleted(ctx context.Context, review *domain.Review) error {
	return p.publishReview(ctx, TopicReviewDeleted, review)
}

func (p *Producer) publishReview(ctx context.Context, topic string, review *domain.Review) error {
	data := ReviewData{
		ID:     review.ID,
		BookID: review.BookID,
		UserID: review.Author.ID,
		Rating: review.Rating,
	}

	meta := map[string]string{"book_id": review.BookID}
	if err := p.publish(ctx, topic, review.ID, AggregateTypeReview, data, meta); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published review event",
		slog.String("topic", topic),
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
	)

	return nil
}

// PublishReviewLiked publishes a review.liked event.
func (p *Producer) PublishReviewLiked(ctx context.Context, reviewID, userID string) error {
	return p.publishLike(ctx, TopicReviewLiked, reviewID, userID)
}

// PublishReviewUnliked publishes a review.unliked event.
func (p *Producer) PublishReviewUnliked(ctx context.Context, reviewID, userID string) error {
	return p.publishLike(ctx, TopicReviewUnliked, reviewID, userID)
}

func (p *Producer) publishLike(ctx context.Context, topic, reviewID, userID string) error {
	data := ReviewLikeData{
		ReviewID: reviewID,
		UserID:   userID,
	}

	return p.publish(ctx, topic, reviewID, AggregateTypeReview, data, nil)
}

// PublishReadingStatusSet publishes a reading_status.set event.
func (p *Producer) PublishReadingStatusSet(ctx context.Context, status *domain.ReadingStatus) error {
	data := ReadingStatusData{
		BookID: status.BookID,
		UserID: status.UserID,
		Status: status.Status,
	}

	meta := map[string]string{"book_id": status.BookID}
	return p.publish(ctx, TopicReadingStatusSet, status.UserID, AggregateTypeUser, data, meta)
}
