package queue

import (
	"wedding-rsvp/core/logger"

	"github.com/hibiken/asynq"
)

// Queue wraps the asynq client used to enqueue background tasks (currently
// only confirmation emails).
type Queue struct {
	client *asynq.Client
}

type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func NewQueue(config QueueConfig) *Queue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	return &Queue{client: client}
}

func (q *Queue) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	info, err := q.client.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	logger.Debug("Queue:Enqueue", "task", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}

// NewServer builds the asynq worker that processes background tasks in the
// same process as the HTTP server.
func NewServer(config QueueConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		},
		asynq.Config{
			Concurrency: 2,
		},
	)
}
