package refresh

import (
	"testing"
	"time"
)

type fakeMessage struct {
	data      []byte
	acked     bool
	naked     bool
	termed    bool
	delivered uint64
}

func (m *fakeMessage) Ack() error                             { m.acked = true; return nil }
func (m *fakeMessage) Nak() error                             { m.naked = true; return nil }
func (m *fakeMessage) Term() error                            { m.termed = true; return nil }
func (m *fakeMessage) InProgress() error                      { return nil }
func (m *fakeMessage) NakWithDelay(delay time.Duration) error { m.naked = true; return nil }
func (m *fakeMessage) NumDelivered() uint64                   { return m.delivered }
func (m *fakeMessage) Data() []byte                           { return m.data }

// TestPlayerMatches_MalformedPayload tests that an undecodable payload is
// terminated rather than redelivered forever.
func TestPlayerMatches_MalformedPayload(t *testing.T) {
	msg := &fakeMessage{data: []byte("{not json"), delivered: 1}

	PlayerMatches(msg, nil, nil)

	if !msg.termed {
		t.Error("expected malformed message to be terminated")
	}
	if msg.acked || msg.naked {
		t.Error("malformed message must not be acked or nacked")
	}
}

// TestPlayerMatches_MissingPUUID tests that a payload without a puuid is
// terminated.
func TestPlayerMatches_MissingPUUID(t *testing.T) {
	msg := &fakeMessage{data: []byte(`{"player_name":"Faker#KR1"}`), delivered: 1}

	PlayerMatches(msg, nil, nil)

	if !msg.termed {
		t.Error("expected message without puuid to be terminated")
	}
}
