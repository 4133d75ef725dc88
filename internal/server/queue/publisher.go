// Package queue publishes alert delivery tasks to Redis as
// Celery-compatible messages. It is the bridge between the Go backend and
// the delivery worker that owns SMS/telegram integrations; the worker is
// responsible for the delivered/failed status transitions.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// deliveryTaskName is the Celery task the worker registers for alerts.
const deliveryTaskName = "emergency.tasks.deliver_alert"

// AlertTask is the payload handed to the delivery worker.
type AlertTask struct {
	AlertID  string   `json:"alert_id"`
	UserID   string   `json:"user_id"`
	Message  string   `json:"message"`
	Location string   `json:"location"`
	Contacts []string `json:"contacts"`
}

// Publisher sends alert tasks to Redis in Celery task format.
type Publisher struct {
	rdb       *redis.Client
	queueName string
}

// NewPublisher creates a new Redis publisher targeting the given queue.
func NewPublisher(rdb *redis.Client, queueName string) *Publisher {
	return &Publisher{
		rdb:       rdb,
		queueName: queueName,
	}
}

// celeryTask represents a Celery-compatible task message.
// Celery reads tasks from Redis using this exact JSON structure.
type celeryTask struct {
	ID      string        `json:"id"`
	Task    string        `json:"task"`
	Args    []interface{} `json:"args"`
	Kwargs  interface{}   `json:"kwargs"`
	Retries int           `json:"retries"`
	ETA     *string       `json:"eta"`
}

// celeryMessage wraps a task for Redis transport.
type celeryMessage struct {
	Body            string                 `json:"body"`
	ContentEncoding string                 `json:"content-encoding"`
	ContentType     string                 `json:"content-type"`
	Headers         map[string]interface{} `json:"headers"`
	Properties      map[string]interface{} `json:"properties"`
}

// PublishAlertTask serialises an alert task and publishes it as a Celery
// task to Redis. The delivery worker picks it up via
// `celery worker -Q emergency_alerts`.
func (p *Publisher) PublishAlertTask(ctx context.Context, task *AlertTask) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal alert task: %w", err)
	}

	taskID := uuid.New().String()

	body := celeryTask{
		ID:     taskID,
		Task:   deliveryTaskName,
		Args:   []interface{}{string(taskJSON)},
		Kwargs: map[string]interface{}{},
	}

	taskBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal celery task: %w", err)
	}

	msg := celeryMessage{
		Body:            string(taskBody),
		ContentEncoding: "utf-8",
		ContentType:     "application/json",
		Headers: map[string]interface{}{
			"lang":    "py",
			"task":    deliveryTaskName,
			"id":      taskID,
			"retries": 0,
		},
		Properties: map[string]interface{}{
			"correlation_id": taskID,
			"delivery_mode":  2,
			"delivery_tag":   taskID,
			"body_encoding":  "utf-8",
			"exchange":       p.queueName,
			"routing_key":    p.queueName,
			"delivery_info": map[string]string{
				"exchange":    p.queueName,
				"routing_key": p.queueName,
			},
		},
	}

	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal celery message: %w", err)
	}

	// Celery consumes with BRPOP, so enqueue with LPUSH.
	if err := p.rdb.LPush(ctx, p.queueName, string(msgJSON)).Err(); err != nil {
		return fmt.Errorf("redis LPUSH: %w", err)
	}

	return nil
}

// Ping checks the Redis connection.
func (p *Publisher) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.rdb.Ping(ctx).Err()
}
