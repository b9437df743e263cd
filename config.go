package blazetopic

import (
	"time"

	"github.com/go-logr/logr"
)

// Config tunes the Router and Dispatcher.
type Config struct {
	// WorkerCount sizes the ants pool used by Dispatcher and Router.MatchBatch.
	WorkerCount      int
	PreAlloc         bool
	MaxBlockingTasks int
	ExpiryDuration   time.Duration

	// QueueCapacity and ResultCapacity pre-size the scratch buffers of every
	// Query the Router creates.
	QueueCapacity  int
	ResultCapacity int

	Logger logr.Logger
}

const (
	DefaultWorkerCount      = 1_000
	DefaultMaxBlockingTasks = 10_000
	DefaultQueueCapacity    = 8
	DefaultResultCapacity   = 4
)

func NewConfig() Config {
	return Config{
		WorkerCount:      DefaultWorkerCount,
		PreAlloc:         false,
		MaxBlockingTasks: DefaultMaxBlockingTasks,
		ExpiryDuration:   0,
		QueueCapacity:    DefaultQueueCapacity,
		ResultCapacity:   DefaultResultCapacity,
		Logger:           logr.Discard(),
	}
}

// withDefaults fills zero values so a partially populated Config still works.
func (c Config) withDefaults() Config {
	if c.WorkerCount <= 0 {
		c.WorkerCount = DefaultWorkerCount
	}

	if c.QueueCapacity <= 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}

	if c.ResultCapacity <= 0 {
		c.ResultCapacity = DefaultResultCapacity
	}

	if c.Logger.GetSink() == nil {
		c.Logger = logr.Discard()
	}

	return c
}
