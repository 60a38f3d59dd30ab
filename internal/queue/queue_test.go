package queue

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() BookingConfirmedEvent {
	return BookingConfirmedEvent{
		Reference: "ref-1", Film: "Les Évanouis", Room: "3", Start: "14:00",
		Seats: []string{"A2", "B2"}, Tickets: 2, TotalCents: 1980, Method: "card",
		ConfirmedAt: "2025-06-01T20:00:00Z",
	}
}

func TestFormatLine(t *testing.T) {
	line := FormatLine(sampleEvent())
	assert.Equal(t, `[2025-06-01T20:00:00Z] Booking confirmed | ref=ref-1 | film="Les Évanouis" | salle="3" | seance=14:00 | tickets=2 | total=1980 cents | method=card | seats=[A2,B2]`+"\n", line)

	empty := sampleEvent()
	empty.Seats = nil
	assert.Contains(t, FormatLine(empty), "seats=[]")
}

func TestHandleMessage_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	require.NoError(t, handleMessage(path, body))
	require.NoError(t, handleMessage(path, body))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "ref=ref-1"))

	assert.Error(t, handleMessage(path, []byte("not json")))
}

func TestDialTimeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, dialTimeout(context.Background(), 5*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	left := dialTimeout(ctx, time.Minute)
	assert.LessOrEqual(t, left, 3*time.Second)
	assert.Greater(t, left, 2*time.Second)

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	assert.Equal(t, time.Millisecond, dialTimeout(expired, time.Minute))
}

// A broker that accepts connections and never answers must not hold the
// publisher past the caller's deadline.
func TestPublish_SilentBrokerHonoursDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	p := NewPublisher("amqp://guest:guest@"+ln.Addr().String()+"/", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = p.PublishBookingConfirmed(ctx, BookingConfirmedEvent{Reference: "r1"})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
