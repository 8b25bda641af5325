package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/coocood/freecache"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/domain/session"
)

type fileStore struct {
	// mu orders flushes so that the file always holds the latest snapshot
	mu    sync.Mutex
	path  string
	cache *freecache.Cache
}

// NewFileStore keeps entries in a freecache of sizeMB and snapshots them as
// json to path. An empty path keeps the store in memory only.
func NewFileStore(path string, sizeMB int) session.Store {
	return &fileStore{
		path:  path,
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
	}
}

func (s *fileStore) Get(c ctx.Ctx, key listing.Key) (session.Entry, bool) {
	val, err := s.cache.Get([]byte(key.String()))
	if err != nil {
		return session.Entry{}, false
	}
	e := session.Entry{}
	if err := json.Unmarshal(val, &e); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Warn("json.Unmarshal failed")
		return session.Entry{}, false
	}
	return e, true
}

func (s *fileStore) Set(c ctx.Ctx, key listing.Key, e session.Entry) error {
	return s.set(c, key.String(), e)
}

func (s *fileStore) set(c ctx.Ctx, key string, e session.Entry) error {
	val, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := s.cache.Set([]byte(key), val, 0); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("cache.Set failed")
		return err
	}
	return nil
}

func (s *fileStore) Load(c ctx.Ctx) error {
	if s.path == "" {
		return nil
	}
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		c.WithField("err", err).Error("os.ReadFile failed")
		return err
	}

	entries := map[string]session.Entry{}
	if err := json.Unmarshal(b, &entries); err != nil {
		c.WithFields(log.Fields{
			"path": s.path,
			"err":  err,
		}).Error("corrupted session file")
		return err
	}
	for k, e := range entries {
		if err := s.set(c, k, e); err != nil {
			return err
		}
	}
	c.WithField("entries", len(entries)).Info("session loaded")
	return nil
}

func (s *fileStore) Flush(c ctx.Ctx) error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[string]session.Entry{}
	it := s.cache.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		e := session.Entry{}
		if err := json.Unmarshal(entry.Value, &e); err != nil {
			continue
		}
		entries[string(entry.Key)] = e
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		c.WithField("err", err).Error("os.CreateTemp failed")
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		c.WithField("err", err).Error("tmp.Write failed")
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		c.WithField("err", err).Error("os.Rename failed")
		return err
	}
	return nil
}
