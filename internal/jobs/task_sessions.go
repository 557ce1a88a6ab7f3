package jobs

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/reelist/reelist/internal/auth"
)

// SessionPurger sweeps expired session rows. Auth also rejects expired
// tokens at request time, so the sweep only reclaims storage.
type SessionPurger struct {
	sessions auth.SessionStore
}

func NewSessionPurger(sessions auth.SessionStore) *SessionPurger {
	return &SessionPurger{sessions: sessions}
}

func (p *SessionPurger) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	n, err := p.sessions.DeleteExpired(ctx, time.Now().Unix())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("jobs: purged %d expired sessions", n)
	}
	return nil
}

// RegisterSessionPurge wires the purge handler and schedules it hourly.
func (q *Queue) RegisterSessionPurge(sessions auth.SessionStore) error {
	q.Handle(TaskPurgeSessions, NewSessionPurger(sessions))
	return q.Schedule("@every 1h", asynq.NewTask(TaskPurgeSessions, nil), asynq.Queue("low"))
}
