package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhangmm/zblog/pkg/internal/services"
)

// With no SMTP server configured the worker drops the message but the task
// handle still resolves, which is the contract callers rely on.
func TestMailQueueResolvesTaskHandle(t *testing.T) {
	task := services.MailQueue.Enqueue("someone@example.com", "Hello", "body")
	require.NotEmpty(t, task.ID)

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("mail task never resolved")
	}

	assert.NoError(t, task.Err())
}

func TestMailQueueDoesNotBlockCaller(t *testing.T) {
	start := time.Now()
	for i := 0; i < 16; i++ {
		services.MailQueue.Enqueue("someone@example.com", "Hello", "body")
	}
	assert.Less(t, time.Since(start), time.Second)
}
