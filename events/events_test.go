package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryAfterFlush tests the flow from TransactionalBus to the main Bus
func TestEventDeliveryAfterFlush(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan BalanceChangeEvent, 1)
	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		if balanceEvent, ok := event.(BalanceChangeEvent); ok {
			eventReceived <- balanceEvent
		} else {
			t.Errorf("Expected BalanceChangeEvent, got %T", event)
		}
	})

	testEvent := BalanceChangeEvent{
		UserID:          123456,
		GuildID:         789,
		OldBalance:      100,
		NewBalance:      120,
		TransactionType: TransactionTypeGambleWin,
		ChangeAmount:    20,
	}

	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	// Nothing is delivered before the commit
	select {
	case <-eventReceived:
		t.Fatal("Event delivered before flush")
	case <-time.After(50 * time.Millisecond):
	}

	transactionalBus.Flush(context.Background())
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var mu sync.Mutex
	userIDs := make(map[int64]bool)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
		userIDs[event.(BalanceChangeEvent).UserID] = true
	})

	for _, id := range []int64{1, 2, 3} {
		transactionalBus.Publish(BalanceChangeEvent{UserID: id, TransactionType: TransactionTypeSpawn})
	}
	transactionalBus.Flush(context.Background())

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Not all events were delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[int64]bool{1: true, 2: true, 3: true}, userIDs)
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)
	mainBus.Subscribe(EventTypeTicketStateChange, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(TicketStateChangeEvent{GuildID: 1, TicketID: 1, OldState: "open", NewState: "closed"})
	transactionalBus.Discard()
	transactionalBus.Flush(context.Background())

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

// TestHandlerPanicIsContained tests that one panicking handler does not stop others
func TestHandlerPanicIsContained(t *testing.T) {
	bus := NewBus()
	received := make(chan struct{}, 1)

	bus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		received <- struct{}{}
	})

	bus.Publish(LevelUpEvent{UserID: 1, Level: 2})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("Second handler did not run")
	}
}
