package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Close followed by cancel is the api binary's shutdown order; both make
// the loop's select ready, so closing must tolerate either branch
// winning.
func TestProducerCloseThenCancel(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "test.topic", 8)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	p.Close()
	cancel()
	assert.NotPanics(t, p.Close)

	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not shut down")
	}
}

func TestProducerCancelOnly(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "test.topic", 8)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	p.WaitClosed()
	assert.NotPanics(t, p.Close)
}
