package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	PromotionTopic    = "promotion-events"
	SubscriptionTopic = "subscription-events"
)

type PromotionEvent struct {
	PromotionType    string `json:"promotion_type"` // "featured" | "hot_deal"
	PromotionID      string `json:"promotion_id"`
	ProductID        string `json:"product_id"`
	StoreID          string `json:"store_id"`
	SubscriptionCode string `json:"subscription_code"`
	PlanType         string `json:"plan_type"`
	Transition       string `json:"transition"` // "created" | "expired"
	At               int64  `json:"at"`
}

type SubscriptionEvent struct {
	SubscriptionID   string `json:"subscription_id"`
	StoreID          string `json:"store_id"`
	SubscriptionCode string `json:"subscription_code"`
	PlanType         string `json:"plan_type"`
	Transition       string `json:"transition"` // "created" | "activated" | "rejected" | "expired"
	At               int64  `json:"at"`
}

type EventPublisher interface {
	PublishPromotion(event PromotionEvent) error
	PublishSubscription(event SubscriptionEvent) error
	Close() error
}

type Publisher struct {
	promotionWriter    *kafka.Writer
	subscriptionWriter *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return &Publisher{
		promotionWriter:    newWriter(PromotionTopic),
		subscriptionWriter: newWriter(SubscriptionTopic),
	}
}

func (p *Publisher) PublishPromotion(event PromotionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.promotionWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.SubscriptionCode),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *Publisher) PublishSubscription(event SubscriptionEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.subscriptionWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.SubscriptionCode),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *Publisher) Close() error {
	if err := p.promotionWriter.Close(); err != nil {
		return err
	}
	return p.subscriptionWriter.Close()
}

// NopPublisher is wired when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishPromotion(PromotionEvent) error       { return nil }
func (NopPublisher) PublishSubscription(SubscriptionEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
