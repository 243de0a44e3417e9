package eventbus

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	got := make(chan string, 3)
	b.Subscribe(EventRequestStarted, func(e DomainEvent) {
		got <- e.(RequestStartedEvent).Control
	})

	for _, c := range []string{"a", "b", "c"} {
		b.Publish(RequestStartedEvent{Control: c})
	}

	for _, want := range []string{"a", "b", "c"} {
		select {
		case c := <-got:
			assert.Equal(t, want, c)
		case <-time.After(time.Second):
			t.Fatalf("event %q not delivered", want)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	first := make(chan struct{}, 1)
	second := make(chan struct{}, 1)
	unsubscribe := b.Subscribe(EventExportSaved, func(DomainEvent) { first <- struct{}{} })
	b.Subscribe(EventExportSaved, func(DomainEvent) { second <- struct{}{} })
	unsubscribe()

	b.Publish(ExportSavedEvent{Path: "grades.csv"})

	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber not called")
	}
	assert.Len(t, first, 0)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New(quietLogger())
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventOverloadDecided, func(e DomainEvent) {
		if e.(OverloadDecidedEvent).Count == 0 {
			panic("boom")
		}
		done <- struct{}{}
	})

	b.Publish(OverloadDecidedEvent{Count: 0})
	b.Publish(OverloadDecidedEvent{Count: 1})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus stopped after handler panic")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New(quietLogger())
	b.Close()
	require.NotPanics(t, func() {
		b.Publish(RequestFinishedEvent{Control: "x"})
		b.Close()
	})
}
