// ABOUTME: In-memory cache of decoded audio files
// ABOUTME: Keyed by path, size and modification time so edited files decode again
package app

import (
	"os"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/harperreed/toolbox/pkg/audio"
)

type decodeKey struct {
	path     string
	size     int64
	modTime  int64
	channels int
}

type decoded struct {
	buf    *audio.Buffer
	format audio.Format
}

// decodeCache holds recently decoded files. Buffers are shared between
// callers and must not be modified.
type decodeCache struct {
	entries *lru.Cache[decodeKey, decoded]
	hits    atomic.Int64
}

func newDecodeCache(size int) *decodeCache {
	entries, err := lru.New[decodeKey, decoded](size)
	if err != nil {
		// Only reachable with size < 1, which config validation rejects
		panic(err)
	}
	return &decodeCache{entries: entries}
}

// key stats path. ok is false when the file cannot be stat'ed.
func (c *decodeCache) key(path string, channels int) (k decodeKey, ok bool) {
	st, err := os.Stat(path)
	if err != nil {
		return decodeKey{}, false
	}
	return decodeKey{
		path:     path,
		size:     st.Size(),
		modTime:  st.ModTime().UnixNano(),
		channels: channels,
	}, true
}

func (c *decodeCache) get(k decodeKey) (decoded, bool) {
	d, ok := c.entries.Get(k)
	if ok {
		c.hits.Add(1)
	}
	return d, ok
}

func (c *decodeCache) add(k decodeKey, d decoded) {
	c.entries.Add(k, d)
}

func (c *decodeCache) len() int {
	return c.entries.Len()
}
