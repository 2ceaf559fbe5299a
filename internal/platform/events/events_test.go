package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsJSON(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	sp := mocks.NewSyncProducer(t, cfg)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var evt Event
		if err := json.Unmarshal(val, &evt); err != nil {
			return err
		}
		if evt.Type != EmployeeCreated || evt.EntityID != "42" {
			return errors.New("unexpected event body")
		}
		return nil
	})

	pub := NewKafkaPublisher(sp, "hrpro.events", zerolog.Nop())
	err := pub.Publish(context.Background(), New(EmployeeCreated, "employee", "42", map[string]string{"nif": "123456789"}))
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherReturnsSendError(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	sp := mocks.NewSyncProducer(t, cfg)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisher(sp, "hrpro.events", zerolog.Nop())
	err := pub.Publish(context.Background(), New(EmployeeDeleted, "employee", "7", nil))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestNilKafkaPublisher(t *testing.T) {
	var pub *KafkaPublisher
	assert.Error(t, pub.Publish(context.Background(), Event{}))
	assert.NoError(t, pub.Close())
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
	got    chan struct{}
}

func (r *recordingPublisher) Publish(_ context.Context, evt Event) error {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
	r.got <- struct{}{}
	return r.err
}

type countingObserver struct {
	mu       sync.Mutex
	ok, fail int
}

func (c *countingObserver) EventPublished(_ string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.fail++
		return
	}
	c.ok++
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	rec := &recordingPublisher{got: make(chan struct{}, 4)}
	obs := &countingObserver{}
	d := NewDispatcher(rec, 4, obs, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()

	require.NoError(t, d.Publish(ctx, New(EmployeeCreated, "employee", "1", nil)))
	require.NoError(t, d.Publish(ctx, New(EmployeeUpdated, "employee", "1", nil)))

	for range 2 {
		select {
		case <-rec.got:
		case <-time.After(2 * time.Second):
			t.Fatal("event not delivered")
		}
	}
	cancel()
	<-done

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.events, 2)
	assert.Equal(t, EmployeeCreated, rec.events[0].Type)
	assert.Equal(t, EmployeeUpdated, rec.events[1].Type)
	assert.Equal(t, 2, obs.ok)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	rec := &recordingPublisher{got: make(chan struct{}, 4)}
	d := NewDispatcher(rec, 1, nil, zerolog.Nop())

	require.NoError(t, d.Publish(context.Background(), New(JobClosed, "job", "1", nil)))
	require.NoError(t, d.Publish(context.Background(), New(JobClosed, "job", "2", nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.events, 1)
	assert.Equal(t, "1", rec.events[0].EntityID)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), New(EvaluationCreated, "evaluation", "3", nil)))
}
