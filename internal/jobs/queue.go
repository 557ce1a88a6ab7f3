package jobs

import (
	"github.com/hibiken/asynq"
)

const TaskPurgeSessions = "sessions:purge"

// Queue wraps the asynq client, worker, and scheduler behind one lifecycle.
type Queue struct {
	client    *asynq.Client
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
}

func NewQueue(redisAddr string) *Queue {
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	client := asynq.NewClient(redisOpt)
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)
	mux := asynq.NewServeMux()
	scheduler := asynq.NewScheduler(redisOpt, nil)
	return &Queue{client: client, server: server, mux: mux, scheduler: scheduler}
}

// Handle registers a handler for a task type. Must be called before Start.
func (q *Queue) Handle(taskType string, handler asynq.Handler) {
	q.mux.Handle(taskType, handler)
}

// Schedule registers a periodic task on a cron-style spec.
func (q *Queue) Schedule(spec string, task *asynq.Task, opts ...asynq.Option) error {
	_, err := q.scheduler.Register(spec, task, opts...)
	return err
}

func (q *Queue) Start() error {
	if err := q.server.Start(q.mux); err != nil {
		return err
	}
	return q.scheduler.Start()
}

func (q *Queue) Shutdown() {
	q.scheduler.Shutdown()
	q.server.Shutdown()
	q.client.Close()
}
