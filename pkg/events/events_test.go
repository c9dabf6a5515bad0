package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.Publish(&Event{Type: EventDocumentSet, Table: "users", Key: "john"})

	select {
	case event := <-sub:
		assert.Equal(t, EventDocumentSet, event.Type)
		assert.Equal(t, "users", event.Table)
		assert.Equal(t, "john", event.Key)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub1 := b.Subscribe()
	sub2 := b.Subscribe()
	defer b.Unsubscribe(sub1)
	defer b.Unsubscribe(sub2)

	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(&Event{Type: EventSessionOpened})

	for _, sub := range []Subscriber{sub1, sub2} {
		select {
		case event := <-sub:
			assert.Equal(t, EventSessionOpened, event.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	// Overrun the subscriber buffer; the broker must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			b.Publish(&Event{Type: EventDocumentSet})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestSubscribeTypesFilters(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.SubscribeTypes(EventDocumentDeleted)
	defer b.Unsubscribe(sub)

	b.Publish(&Event{Type: EventDocumentSet, Key: "skipped"})
	b.Publish(&Event{Type: EventDocumentDeleted, Key: "wanted"})

	select {
	case event := <-sub:
		assert.Equal(t, EventDocumentDeleted, event.Type)
		assert.Equal(t, "wanted", event.Key)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for filtered event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)

	_, open := <-sub
	assert.False(t, open)
	assert.Equal(t, 0, b.SubscriberCount())
}
