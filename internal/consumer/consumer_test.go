package consumer

import (
	"encoding/base64"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type fakeAcknowledger struct {
	acked     bool
	nacked    bool
	requeued  bool
	rejectErr error
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return f.rejectErr
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return f.rejectErr
}

type fakeHandler struct {
	got string
	err error
}

func (f *fakeHandler) HandleEvent(decodedMessage string) error {
	f.got = decodedMessage
	return f.err
}

func delivery(ack amqp.Acknowledger, body string) amqp.Delivery {
	return amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  7,
		Body:         []byte(body),
	}
}

func TestProcessMessage(t *testing.T) {
	t.Parallel()

	t.Run("decodes and acks on success", func(t *testing.T) {
		t.Parallel()

		ack := &fakeAcknowledger{}
		handler := &fakeHandler{}
		encoded := base64.StdEncoding.EncodeToString([]byte(`{"keyword":"rock"}`))

		ProcessMessage(zap.NewNop(), "sync.requests", delivery(ack, encoded), handler)

		if handler.got != `{"keyword":"rock"}` {
			t.Errorf("expected decoded payload, got %q", handler.got)
		}
		if !ack.acked {
			t.Errorf("expected message acked")
		}
		if ack.nacked {
			t.Errorf("expected no nack on success")
		}
	})

	t.Run("invalid base64 is nacked without requeue", func(t *testing.T) {
		t.Parallel()

		ack := &fakeAcknowledger{}
		handler := &fakeHandler{}

		ProcessMessage(zap.NewNop(), "sync.requests", delivery(ack, "%%%not-base64%%%"), handler)

		if handler.got != "" {
			t.Errorf("expected handler not called, got %q", handler.got)
		}
		if !ack.nacked || ack.requeued {
			t.Errorf("expected nack without requeue, nacked=%v requeued=%v", ack.nacked, ack.requeued)
		}
	})

	t.Run("handler failure is nacked without requeue", func(t *testing.T) {
		t.Parallel()

		ack := &fakeAcknowledger{}
		handler := &fakeHandler{err: errors.New("sync run failed")}
		encoded := base64.StdEncoding.EncodeToString([]byte(`{}`))

		ProcessMessage(zap.NewNop(), "sync.requests", delivery(ack, encoded), handler)

		if ack.acked {
			t.Errorf("expected no ack on handler failure")
		}
		if !ack.nacked || ack.requeued {
			t.Errorf("expected nack without requeue, nacked=%v requeued=%v", ack.nacked, ack.requeued)
		}
	})

	t.Run("nack failure is absorbed", func(t *testing.T) {
		t.Parallel()

		ack := &fakeAcknowledger{rejectErr: errors.New("channel closed")}
		handler := &fakeHandler{err: errors.New("sync run failed")}
		encoded := base64.StdEncoding.EncodeToString([]byte(`{}`))

		// Must not panic
		ProcessMessage(zap.NewNop(), "sync.requests", delivery(ack, encoded), handler)
	})
}
