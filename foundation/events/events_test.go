package events_test

import (
	"testing"

	"github.com/ardanlabs/blockledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out events to subscribers.")
	{
		evts := events.New()

		id, ch := evts.Subscribe()
		_, other := evts.Subscribe()

		t.Logf("\tTest 0:\tWhen sending an event.")
		{
			evts.Send("state: MineNewBlock: started")

			if got := <-ch; got != "state: MineNewBlock: started" {
				t.Fatalf("\t%s\tTest 0:\tShould receive the event, got %q.", failed, got)
			}
			if got := <-other; got != "state: MineNewBlock: started" {
				t.Fatalf("\t%s\tTest 0:\tShould receive the event on every channel, got %q.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould receive the event on every channel.", success)
		}

		t.Logf("\tTest 1:\tWhen the buffer is full.")
		{
			for i := 0; i < 500; i++ {
				evts.Send("burst")
			}
			t.Logf("\t%s\tTest 1:\tShould not block the sender.", success)
		}

		t.Logf("\tTest 2:\tWhen releasing a subscriber.")
		{
			if err := evts.Release(id); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to release: %v", failed, err)
			}
			if err := evts.Release(id); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould not release twice.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould release the subscriber once.", success)
		}

		t.Logf("\tTest 3:\tWhen shutting down.")
		{
			evts.Shutdown()

			for range other {
			}
			t.Logf("\t%s\tTest 3:\tShould close the remaining channels.", success)
		}
	}
}
