package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/logging"
)

const tasksSuffix = "-tasks"

// Client runs the catalog's background queues on backlite. The queue keeps
// its own sqlite file so worker writes never contend with catalog requests.
type Client struct {
	queue *backlite.Client
	db    *sql.DB
	path  string
	cfg   Config
	log   logrus.FieldLogger

	mu      sync.RWMutex
	running bool
}

// TasksDBPath derives the queue database from the catalog database:
// "data/catalog.db" becomes "data/catalog-tasks.db".
func TasksDBPath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + tasksSuffix + ext
}

func tasksDSN(path string) string {
	return path + "?_journal=WAL&_timeout=5000&_busy_timeout=5000"
}

// NewClient opens the queue database at path and installs the backlite
// schema. Queues must be registered before Start.
func NewClient(path string, cfg Config, log logrus.FieldLogger) (*Client, error) {
	db, err := sql.Open("sqlite3", tasksDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database %s: %w", path, err)
	}
	// Each worker holds a connection while it runs; leave headroom for
	// enqueues coming from the scheduler.
	db.SetMaxOpenConns(cfg.Workers + 4)
	db.SetMaxIdleConns(cfg.Workers + 1)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          logging.NewTaskLogger(log),
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up task queue in %s: %w", path, err)
	}

	return &Client{queue: queue, db: db, path: path, cfg: cfg, log: log}, nil
}

func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start launches the workers and returns immediately. Calling it twice is a
// no-op.
func (c *Client) Start(ctx context.Context) {
	if !c.setRunning(true) {
		return
	}
	c.log.WithFields(logrus.Fields{"workers": c.cfg.Workers, "path": c.path}).Info("Task queue started")
	c.queue.Start(ctx)
}

// Stop waits for in-flight tasks until ctx expires. It reports false when
// the deadline cut some of them short.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.setRunning(false) {
		return true
	}
	if c.queue.Stop(ctx) {
		c.log.Info("Task queue stopped")
		return true
	}
	c.log.Warn("Task queue stopped before all tasks finished")
	return false
}

// setRunning flips the running flag and reports whether it changed.
func (c *Client) setRunning(v bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running == v {
		return false
	}
	c.running = v
	return true
}

// Close releases the queue database. Call it after Stop.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.queue.Add(tasks...)
}

func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.queue.Status(ctx, taskID)
}

// Started reports whether the workers are running. The health endpoint
// reads it.
func (c *Client) Started() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

func (c *Client) Workers() int {
	return c.cfg.Workers
}

// Enqueue stores a single task and returns its id.
func (c *Client) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	ids, err := c.queue.Add(task).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", task.Config().Name, err)
	}
	return ids[0], nil
}
