package worker

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-site/internal/models"
)

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []uuid.UUID
	fail  bool
	block chan struct{}
}

func (n *recordingNotifier) SendContactNotification(msg *models.ContactMessage) error {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp down")
	}
	n.sent = append(n.sent, msg.ID)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func TestPool_DeliversQueuedJobsBeforeStop(t *testing.T) {
	n := &recordingNotifier{}
	p := NewPool(n, 2, 10)
	p.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, p.SendContactNotification(&models.ContactMessage{ID: uuid.New()}))
	}
	p.Stop()

	assert.Equal(t, 5, n.count())
}

func TestPool_RejectsWhenFull(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	p := NewPool(n, 1, 1)
	p.Start()

	// One job parks in the worker, one fills the queue.
	require.NoError(t, p.SendContactNotification(&models.ContactMessage{ID: uuid.New()}))

	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = p.SendContactNotification(&models.ContactMessage{ID: uuid.New()})
	}
	assert.ErrorIs(t, err, ErrQueueFull)

	close(n.block)
	p.Stop()
}

func TestPool_AfterStop(t *testing.T) {
	p := NewPool(&recordingNotifier{}, 1, 1)
	p.Start()
	p.Stop()
	p.Stop()

	err := p.SendContactNotification(&models.ContactMessage{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestPool_FailuresDoNotStopWorkers(t *testing.T) {
	n := &recordingNotifier{fail: true}
	p := NewPool(n, 1, 4)
	p.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, p.SendContactNotification(&models.ContactMessage{ID: uuid.New()}))
	}
	p.Stop()

	assert.Equal(t, 0, n.count())
}
