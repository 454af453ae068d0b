package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campus-canteen/internal/domain"
)

func TestBrokerDeliversOnlyToOwner(t *testing.T) {
	broker := NewBroker()
	ch1, cancel1 := broker.Subscribe(1)
	defer cancel1()
	ch2, cancel2 := broker.Subscribe(2)
	defer cancel2()

	broker.Publish(domain.ChangeEvent{Table: domain.TableOrders, UserID: 1, OrderID: 9, Status: domain.StatusNew})

	select {
	case event := <-ch1:
		assert.Equal(t, 9, event.OrderID)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received its event")
	}

	select {
	case event := <-ch2:
		t.Fatalf("event for user 1 leaked to user 2: %+v", event)
	default:
	}
}

func TestBrokerCancelClosesChannel(t *testing.T) {
	broker := NewBroker()
	ch, cancel := broker.Subscribe(1)
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic or block.
	broker.Publish(domain.ChangeEvent{UserID: 1})
}

func TestBrokerDropsWhenSubscriberStalls(t *testing.T) {
	broker := NewBroker()
	_, cancel := broker.Subscribe(1)
	defer cancel()

	// Nobody drains the channel; publishing far past its capacity must not
	// block the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			broker.Publish(domain.ChangeEvent{UserID: 1, OrderID: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a stalled subscriber")
	}
}

func TestChangeConsumerForwardsOrderEvents(t *testing.T) {
	watcher := &recordingSink{}
	broker := NewBroker()
	consumer := NewChangeConsumer(nil, broker, watcher)

	ch, cancel := broker.Subscribe(7)
	defer cancel()

	consumer.Process(domain.ChangeEvent{
		Table:   domain.TableOrders,
		Type:    domain.EventUpdate,
		UserID:  7,
		OrderID: 9,
		Status:  domain.StatusNew,
	})

	select {
	case event := <-ch:
		assert.Equal(t, domain.StatusNew, event.Status)
	case <-time.After(time.Second):
		t.Fatal("broker never saw the event")
	}
	assert.Equal(t, []appliedStatus{{orderID: 9, status: domain.StatusNew, source: SourceRealtime}}, watcher.applied)
}

func TestChangeConsumerIgnoresNonOrderEventsForWatcher(t *testing.T) {
	watcher := &recordingSink{}
	consumer := NewChangeConsumer(nil, NewBroker(), watcher)

	consumer.Process(domain.ChangeEvent{Table: domain.TableProfiles, Type: domain.EventUpdate, UserID: 7, Coins: 150})
	consumer.Process(domain.ChangeEvent{Table: domain.TableOrders, Type: domain.EventDelete, UserID: 7})

	assert.Empty(t, watcher.applied)
}

type appliedStatus struct {
	orderID int
	status  domain.OrderStatus
	source  string
}

type recordingSink struct {
	applied []appliedStatus
}

func (r *recordingSink) ApplyStatus(orderID int, status domain.OrderStatus, source string) {
	r.applied = append(r.applied, appliedStatus{orderID: orderID, status: status, source: source})
}
