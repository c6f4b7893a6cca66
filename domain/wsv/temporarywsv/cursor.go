package temporarywsv

import (
	"bytes"

	"github.com/kaspanet/wsvd/infrastructure/db/database"
	"github.com/pkg/errors"
)

type cursorEntry struct {
	key   *database.Key
	value []byte
}

// stagingCursor is a database.Cursor over a sorted snapshot of entries
type stagingCursor struct {
	entries  []cursorEntry
	index    int
	isClosed bool
}

func newStagingCursor(entries []cursorEntry) *stagingCursor {
	return &stagingCursor{entries: entries, index: -1}
}

func (c *stagingCursor) Next() bool {
	if c.isClosed || c.index >= len(c.entries) {
		return false
	}
	c.index++
	return c.index < len(c.entries)
}

func (c *stagingCursor) First() bool {
	if c.isClosed {
		return false
	}
	c.index = 0
	return len(c.entries) > 0
}

func (c *stagingCursor) Seek(key *database.Key) error {
	if c.isClosed {
		return errors.New("cannot seek a closed cursor")
	}
	for i, entry := range c.entries {
		if bytes.Equal(entry.key.Bytes(), key.Bytes()) {
			c.index = i
			return nil
		}
	}
	return errors.Wrapf(database.ErrNotFound, "key %s not found", key)
}

func (c *stagingCursor) current() (*cursorEntry, error) {
	if c.isClosed {
		return nil, errors.New("cannot read from a closed cursor")
	}
	if c.index < 0 || c.index >= len(c.entries) {
		return nil, errors.Wrap(database.ErrNotFound, "cursor is exhausted")
	}
	return &c.entries[c.index], nil
}

func (c *stagingCursor) Key() (*database.Key, error) {
	entry, err := c.current()
	if err != nil {
		return nil, err
	}
	return entry.key, nil
}

func (c *stagingCursor) Value() ([]byte, error) {
	entry, err := c.current()
	if err != nil {
		return nil, err
	}
	return entry.value, nil
}

func (c *stagingCursor) Close() error {
	if c.isClosed {
		return errors.New("cannot close an already closed cursor")
	}
	c.isClosed = true
	c.entries = nil
	return nil
}
