package mail

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleSenderRecordsMessages(t *testing.T) {
	sender := NewConsoleSender(nil)

	msg := Message{ToName: "Asha", ToAddr: "asha@med-train.com", Subject: "report"}
	require.NoError(t, sender.Send(context.Background(), msg))

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, msg, sent[0])
}

func TestConsoleSenderCancelledContext(t *testing.T) {
	sender := NewConsoleSender(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, Message{ToAddr: "asha@med-train.com"})
	require.Error(t, err)
	assert.Empty(t, sender.Sent())
}

func TestConsoleSenderConcurrentSends(t *testing.T) {
	sender := NewConsoleSender(nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sender.Send(context.Background(), Message{ToAddr: "asha@med-train.com"})
		}()
	}
	wg.Wait()

	assert.Len(t, sender.Sent(), 16)
}
