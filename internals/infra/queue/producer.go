// file: internals/infra/queue/producer.go
package queue

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

// StatusChangedEvent is published after an application status change is stored.
type StatusChangedEvent struct {
	StudentID             string    `json:"student_id"`
	UniversityChoiceIndex int       `json:"university_choice_index"`
	UniversityName        string    `json:"university_name"`
	PreviousStatus        string    `json:"previous_status"`
	NewStatus             string    `json:"new_status"`
	ChangedBy             string    `json:"changed_by"`
	Timestamp             time.Time `json:"changed_at"`
}

type Publisher interface {
	PublishStatusChanged(ctx context.Context, ev StatusChangedEvent) error
	Close() error
}

/* =======================================================
   KAFKA
   ======================================================= */

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	log.Printf("[INFO] kafka publisher ready brokers=%s topic=%s", strings.Join(brokers, ","), topic)
	return &KafkaPublisher{w: w}
}

// PublishStatusChanged keys by student so one student's events stay ordered.
func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, ev StatusChangedEvent) error {
	b, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.StudentID),
		Value: b,
		Time:  ev.Timestamp,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

/* =======================================================
   NOOP
   ======================================================= */

type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, StatusChangedEvent) error { return nil }
func (NoopPublisher) Close() error { return nil }

// New returns a Kafka publisher when brokers are configured, otherwise a no-op.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 || topic == "" {
		log.Println("[INFO] KAFKA_BROKERS not set, status events disabled")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
