package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithoutBrokersIsNoop(t *testing.T) {
	p := New(nil, "student.status.changed")
	_, ok := p.(NoopPublisher)
	assert.True(t, ok)
	assert.NoError(t, p.PublishStatusChanged(context.Background(), StatusChangedEvent{StudentID: "x"}))
	assert.NoError(t, p.Close())

	p = New([]string{"localhost:9092"}, "")
	_, ok = p.(NoopPublisher)
	assert.True(t, ok)
}

func TestNewWithBrokersIsKafka(t *testing.T) {
	p := New([]string{"localhost:9092"}, "student.status.changed")
	kp, ok := p.(*KafkaPublisher)
	if assert.True(t, ok) {
		assert.Equal(t, "student.status.changed", kp.w.Topic)
		assert.NoError(t, kp.Close())
	}
}
