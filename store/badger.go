package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/hupe1980/agenthub/core"
)

// Key layout: execution records live under time-ordered keys so recent-N
// queries are a bounded reverse scan; a small id index supports updates.
//
//	ae/<agentID>/<nanos>  -> AgentExecution JSON
//	aeidx/<execID>        -> time-ordered key
//	te/<teamID>/<nanos>   -> TeamExecution JSON
//	teidx/<execID>        -> time-ordered key
const (
	agentExecPrefix  = "ae/"
	agentIndexPrefix = "aeidx/"
	teamExecPrefix   = "te/"
	teamIndexPrefix  = "teidx/"
)

// BadgerOptions configure the Badger-backed execution store.
type BadgerOptions struct {
	// Dir is the directory for Badger data files. Required unless InMemory.
	Dir string

	// InMemory runs Badger without disk persistence. Useful for tests that
	// want the real storage engine.
	InMemory bool

	// Logger overrides badger's own logger. Nil keeps badger silent.
	Logger badger.Logger
}

// BadgerStore is an ExecutionStore backed by BadgerDB. Agent and team
// catalogs are intentionally out of scope here; pair it with an AgentStore /
// TeamStore implementation.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) the Badger database.
func NewBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("store: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(opts.Logger)
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error { return s.db.Close() }

func timeKey(prefix, ownerID string, nanos int64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", prefix, ownerID, nanos))
}

func (s *BadgerStore) create(prefix, indexPrefix, ownerID, execID string, nanos int64, record any) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: marshal execution: %w", err)
	}
	key := timeKey(prefix, ownerID, nanos)
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, value); err != nil {
			return err
		}
		return txn.Set([]byte(indexPrefix+execID), key)
	})
}

func (s *BadgerStore) update(indexPrefix, execID string, record any) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: marshal execution: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(indexPrefix + execID))
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *BadgerStore) recent(prefix, ownerID string, limit int, visit func(value []byte) error) error {
	scanPrefix := []byte(prefix + ownerID + "/")
	return s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Reverse = true
		iterOpts.Prefix = scanPrefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		// Seek past the last possible key in the prefix range, then walk back.
		seekKey := append(append([]byte(nil), scanPrefix...), 0xff)
		count := 0
		for it.Seek(seekKey); it.ValidForPrefix(scanPrefix) && count < limit; it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := visit(value); err != nil {
				return err
			}
			count++
		}
		return nil
	})
}

// CreateAgentExecution implements ExecutionStore.
func (s *BadgerStore) CreateAgentExecution(_ context.Context, exec *core.AgentExecution) error {
	return s.create(agentExecPrefix, agentIndexPrefix, exec.AgentID, exec.ID, exec.StartedAt.UnixNano(), exec)
}

// UpdateAgentExecution implements ExecutionStore.
func (s *BadgerStore) UpdateAgentExecution(_ context.Context, exec *core.AgentExecution) error {
	return s.update(agentIndexPrefix, exec.ID, exec)
}

// RecentAgentExecutions implements ExecutionStore.
func (s *BadgerStore) RecentAgentExecutions(_ context.Context, agentID string, limit int) ([]core.AgentExecution, error) {
	var execs []core.AgentExecution
	err := s.recent(agentExecPrefix, agentID, limit, func(value []byte) error {
		var exec core.AgentExecution
		if err := json.Unmarshal(value, &exec); err != nil {
			return fmt.Errorf("store: unmarshal agent execution: %w", err)
		}
		execs = append(execs, exec)
		return nil
	})
	return execs, err
}

// CreateTeamExecution implements ExecutionStore.
func (s *BadgerStore) CreateTeamExecution(_ context.Context, exec *core.TeamExecution) error {
	return s.create(teamExecPrefix, teamIndexPrefix, exec.TeamID, exec.ID, exec.StartedAt.UnixNano(), exec)
}

// UpdateTeamExecution implements ExecutionStore.
func (s *BadgerStore) UpdateTeamExecution(_ context.Context, exec *core.TeamExecution) error {
	return s.update(teamIndexPrefix, exec.ID, exec)
}

// RecentTeamExecutions implements ExecutionStore.
func (s *BadgerStore) RecentTeamExecutions(_ context.Context, teamID string, limit int) ([]core.TeamExecution, error) {
	var execs []core.TeamExecution
	err := s.recent(teamExecPrefix, teamID, limit, func(value []byte) error {
		var exec core.TeamExecution
		if err := json.Unmarshal(value, &exec); err != nil {
			return fmt.Errorf("store: unmarshal team execution: %w", err)
		}
		execs = append(execs, exec)
		return nil
	})
	return execs, err
}
