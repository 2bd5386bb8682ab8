package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketTasks = []byte("tasks")
	bucketMeta  = []byte("meta")
	keyActive   = []byte("active_task")
)

// DefaultDBPath returns the bolt database under the XDG data directory.
func DefaultDBPath() (string, error) {
	return xdg.DataFile("stickyboard/tasks.db")
}

// BoltService stores tasks as JSON in a bbolt database.
type BoltService struct {
	db  *bolt.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewBoltService opens (creating if needed) the database at path, or at
// DefaultDBPath when path is empty.
func NewBoltService(path string) (*BoltService, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve task database path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTasks); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltService{db: db, now: time.Now}, nil
}

func getTask(tx *bolt.Tx, id string) (*Task, error) {
	raw := tx.Bucket(bucketTasks).Get([]byte(id))
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	var t Task
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &t, nil
}

func putTask(tx *bolt.Tx, t *Task) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketTasks).Put([]byte(t.ID), raw)
}

func (s *BoltService) GetTask(ctx context.Context, id string) (*Task, error) {
	var t *Task
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		t, err = getTask(tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return t, nil
}

func (s *BoltService) UpdateTask(ctx context.Context, id string, p Patch) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out *Task
	err := s.db.Update(func(tx *bolt.Tx) error {
		t, err := getTask(tx, id)
		if err != nil {
			return err
		}
		out, err = Apply(t, p, s.now())
		if err != nil {
			return err
		}
		return putTask(tx, out)
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", id, err)
	}
	return out, nil
}

func (s *BoltService) UpdateActiveTask(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if _, err := getTask(tx, id); err != nil {
			return fmt.Errorf("activate %s: %w", id, err)
		}
		return tx.Bucket(bucketMeta).Put(keyActive, []byte(id))
	})
}

func (s *BoltService) ActiveTask(ctx context.Context) (string, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		id = string(tx.Bucket(bucketMeta).Get(keyActive))
		return nil
	})
	return id, err
}

func (s *BoltService) CreateTask(ctx context.Context, title string) (*Task, error) {
	t := New(title, s.now())
	if err := t.Validate(); err != nil {
		return nil, err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return putTask(tx, t)
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *BoltService) ListTasks(ctx context.Context) ([]*Task, error) {
	var out []*Task
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(k, v []byte) error {
			var t Task
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("decode task %s: %w", k, err)
			}
			out = append(out, &t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortTasks(out)
	return out, nil
}

func (s *BoltService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
