package nats

import (
	"testing"
	"time"
)

type fakeMessage struct {
	delivered uint64
	nakDelay  time.Duration
	nakCalled bool
	termed    bool
}

func (m *fakeMessage) Ack() error        { return nil }
func (m *fakeMessage) Nak() error        { return nil }
func (m *fakeMessage) Term() error       { m.termed = true; return nil }
func (m *fakeMessage) InProgress() error { return nil }
func (m *fakeMessage) NakWithDelay(delay time.Duration) error {
	m.nakCalled = true
	m.nakDelay = delay
	return nil
}
func (m *fakeMessage) NumDelivered() uint64 { return m.delivered }

func TestNackWithBackoff_DelayDoubles(t *testing.T) {
	cases := []struct {
		delivered uint64
		want      time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
	}
	for _, tc := range cases {
		msg := &fakeMessage{delivered: tc.delivered}
		NackWithBackoff(msg)
		if !msg.nakCalled {
			t.Errorf("delivery %d: expected nak with delay", tc.delivered)
			continue
		}
		if msg.nakDelay != tc.want {
			t.Errorf("delivery %d: expected delay %v, got %v", tc.delivered, tc.want, msg.nakDelay)
		}
		if msg.termed {
			t.Errorf("delivery %d: message should not be terminated", tc.delivered)
		}
	}
}

func TestNackWithBackoff_TerminatesAtMaxDeliveries(t *testing.T) {
	msg := &fakeMessage{delivered: 5}
	NackWithBackoff(msg)
	if !msg.termed {
		t.Error("expected message to be terminated after max deliveries")
	}
	if msg.nakCalled {
		t.Error("terminated message should not be nacked")
	}
}
