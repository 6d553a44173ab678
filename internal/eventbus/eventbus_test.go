package eventbus

import "testing"

func TestPublishSubscribe(t *testing.T) {
	b := New[string]()
	ch, cancel := b.Subscribe()
	defer cancel()

	b.Publish("one")
	b.Publish("two")
	if got := <-ch; got != "one" {
		t.Fatalf("first event = %q, want one", got)
	}
	if got := <-ch; got != "two" {
		t.Fatalf("second event = %q, want two", got)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	b := New[int]()
	_, cancel := b.Subscribe()
	defer cancel()
	// No reader: the buffer fills and further publishes drop.
	for i := 0; i < subscriberBuffer*3; i++ {
		b.Publish(i)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	b := New[int]()
	ch, cancel := b.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after cancel")
	}
	cancel()

	b.Publish(42)
}

func TestClose(t *testing.T) {
	b := New[int]()
	ch, _ := b.Subscribe()
	b.Close()
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after bus close")
	}
	b.Publish(1)
	b.Close()

	late, cancel := b.Subscribe()
	defer cancel()
	if _, ok := <-late; ok {
		t.Fatal("subscription on a closed bus yielded an open channel")
	}
}
