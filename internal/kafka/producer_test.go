package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWriter) written() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafka.Message(nil), f.msgs...)
}

func TestProducer_FlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, 16, nil)
	p.Start(context.Background())

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, p.Publish(context.Background(), []byte(k), []byte(`{}`)))
	}
	p.Close()
	p.WaitClosed()

	msgs := w.written()
	require.Len(t, msgs, 3)
	assert.Equal(t, "a", string(msgs[0].Key))
	assert.Equal(t, "c", string(msgs[2].Key))
	assert.True(t, w.closed)
}

func TestProducer_PublishAfterCloseFails(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, 1, nil)
	p.Start(context.Background())
	p.Close()
	p.Close()
	p.WaitClosed()

	err := p.Publish(context.Background(), []byte("k"), []byte("v"))
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestProducer_CancelledContextClosesProducer(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, 4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	require.NoError(t, p.Publish(context.Background(), []byte("k"), []byte("v")))
	cancel()
	p.WaitClosed()

	assert.Len(t, w.written(), 1)
}

func TestProducer_PublishHonoursContextWhenInboxFull(t *testing.T) {
	// not started: nothing drains the inbox
	p := NewProducerWithWriter(&fakeWriter{}, 1, nil)
	require.NoError(t, p.Publish(context.Background(), []byte("1"), nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Publish(ctx, []byte("2"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProducer_WriteErrorsDoNotStopLoop(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(w, 4, nil)
	p.Start(context.Background())

	require.NoError(t, p.Publish(context.Background(), []byte("k"), []byte("v")))
	require.NoError(t, p.Publish(context.Background(), []byte("k"), []byte("v")))
	p.Close()
	p.WaitClosed()

	assert.Empty(t, w.written())
	assert.True(t, w.closed)
}
