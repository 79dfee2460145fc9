package edge

import (
	"testing"
	"time"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// recorder is a Releaser that records the order of posts.
type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Give() { *r.log = append(*r.log, r.name) }

func newTestDispatcher() (*Dispatcher, *[]string) {
	var log []string
	d := NewDispatcher(
		logic.NewFilter(200*time.Millisecond),
		recorder{"entry", &log},
		recorder{"exit", &log},
		recorder{"reset", &log},
	)
	return d, &log
}

func TestDispatcherRoutesEachInput(t *testing.T) {
	d, log := newTestDispatcher()

	d.Edge(logic.InputEntry, 1000)
	d.Edge(logic.InputExit, 1000)
	d.Edge(logic.InputReset, 1000)

	want := []string{"entry", "exit", "reset"}
	if len(*log) != len(want) {
		t.Fatalf("expected %d posts, got %v", len(want), *log)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Errorf("post %d: got %s, want %s", i, (*log)[i], want[i])
		}
	}
}

func TestDispatcherDebounce(t *testing.T) {
	d, log := newTestDispatcher()

	// Two edges closer than the window -> one event
	d.Edge(logic.InputEntry, 1000)
	d.Edge(logic.InputEntry, 1100)
	if len(*log) != 1 {
		t.Fatalf("expected 1 post within window, got %d", len(*log))
	}
	if d.Bounced() != 1 {
		t.Errorf("expected 1 bounced edge, got %d", d.Bounced())
	}

	// Further apart than the window -> second event
	d.Edge(logic.InputEntry, 1300)
	if len(*log) != 2 {
		t.Errorf("expected 2 posts, got %d", len(*log))
	}
}

func TestDispatchCoalescedFixedOrder(t *testing.T) {
	d, log := newTestDispatcher()

	d.Dispatch(SetOf(logic.InputReset, logic.InputEntry, logic.InputExit), 5000)

	want := []string{"entry", "exit", "reset"}
	if len(*log) != 3 {
		t.Fatalf("expected every coalesced input to post, got %v", *log)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Errorf("post %d: got %s, want %s", i, (*log)[i], want[i])
		}
	}
}

func TestDispatchCoalescedPartialBounce(t *testing.T) {
	d, log := newTestDispatcher()

	d.Edge(logic.InputExit, 5000)
	*log = nil

	// Exit is still inside its window; entry and reset must still post.
	d.Dispatch(SetOf(logic.InputEntry, logic.InputExit, logic.InputReset), 5050)

	if len(*log) != 2 || (*log)[0] != "entry" || (*log)[1] != "reset" {
		t.Errorf("expected [entry reset], got %v", *log)
	}
}

func TestDispatcherIgnoresUnknownInput(t *testing.T) {
	d, log := newTestDispatcher()
	d.Edge(logic.Input(7), 5000)
	if len(*log) != 0 {
		t.Errorf("unknown input posted: %v", *log)
	}
	if d.Bounced() != 0 {
		t.Errorf("unknown input counted as bounce")
	}
}

func TestHandlerUsesDispatcher(t *testing.T) {
	d, log := newTestDispatcher()
	h := d.Handler()
	h(logic.InputExit, 1000)
	if len(*log) != 1 || (*log)[0] != "exit" {
		t.Errorf("expected [exit], got %v", *log)
	}
}

func TestSet(t *testing.T) {
	s := SetOf(logic.InputEntry, logic.InputReset, logic.Input(9))
	if !s.Has(logic.InputEntry) || !s.Has(logic.InputReset) {
		t.Error("set missing members")
	}
	if s.Has(logic.InputExit) {
		t.Error("set has unexpected exit")
	}
	if s.Has(logic.Input(9)) {
		t.Error("invalid input should never be a member")
	}
}
