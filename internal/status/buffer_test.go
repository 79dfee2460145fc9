package status

import (
	"testing"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

func entry(count int) Entry {
	return Entry{Outcome: logic.Outcome{Kind: logic.OutcomeEntered, Count: count, Capacity: 100}}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer(10)
	if got := rb.items(); got != nil {
		t.Errorf("expected nil from empty buffer, got %d items", len(got))
	}
	if rb.len() != 0 {
		t.Errorf("expected len 0, got %d", rb.len())
	}
}

func TestRingBufferPushInOrder(t *testing.T) {
	rb := newRingBuffer(10)
	for i := 0; i < 5; i++ {
		rb.push(entry(i))
	}

	got := rb.items()
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for i := 0; i < 5; i++ {
		if got[i].Outcome.Count != i {
			t.Errorf("item %d: expected count %d, got %d", i, i, got[i].Outcome.Count)
		}
	}
	if rb.overflow {
		t.Error("overflow should be false")
	}
}

func TestRingBufferFillToCapacity(t *testing.T) {
	cap := 10
	rb := newRingBuffer(cap)
	for i := 0; i < cap; i++ {
		rb.push(entry(i))
	}

	got := rb.items()
	if len(got) != cap {
		t.Fatalf("expected %d items, got %d", cap, len(got))
	}
	if rb.overflow {
		t.Error("filling exactly to capacity should not overflow")
	}
}

func TestRingBufferOverflow(t *testing.T) {
	cap := 5
	rb := newRingBuffer(cap)

	// Push cap+3 items (0..7), buffer should keep the most recent 5 (3..7)
	for i := 0; i < cap+3; i++ {
		rb.push(entry(i))
	}

	if rb.len() != cap {
		t.Errorf("expected len %d, got %d", cap, rb.len())
	}
	if !rb.overflow {
		t.Error("expected overflow to be set")
	}

	got := rb.items()
	for i := 0; i < cap; i++ {
		if got[i].Outcome.Count != i+3 {
			t.Errorf("item %d: expected count %d, got %d", i, i+3, got[i].Outcome.Count)
		}
	}
}

func TestRingBufferItemsIsCopy(t *testing.T) {
	rb := newRingBuffer(3)
	rb.push(entry(1))

	got := rb.items()
	got[0].Outcome.Count = 42

	if rb.items()[0].Outcome.Count != 1 {
		t.Error("items should return a copy")
	}
}
