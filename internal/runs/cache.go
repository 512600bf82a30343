package runs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024
	// freecache refuses entries above 1/1024 of its size, minus its own entry header
	entryOverhead = 128
)

// ListCache keeps the full runs list, as JSON pages, between writes. Only unbounded lists are
// cached. A header entry records the generation and page count of the stored list; Invalidate
// moves the generation forward, so a list read before a write can never be served after it.
type ListCache struct {
	cache          *freecache.Cache
	expiry         time.Duration
	maxPageBytes   int
	generation     atomic.Uint64
	metricsManager *metrics.Manager
}

func NewListCache(sizeMB int, expiry time.Duration, metricsManager *metrics.Manager) *ListCache {
	if sizeMB < 1 {
		sizeMB = 1
	}
	return &ListCache{
		cache:          freecache.NewCache(sizeMB * megabyte),
		expiry:         expiry,
		maxPageBytes:   sizeMB*megabyte/1024 - entryOverhead,
		metricsManager: metricsManager,
	}
}

func headerKey(includeDeleted bool) []byte {
	return []byte(fmt.Sprintf("runs::list::deleted=%t", includeDeleted))
}

func pageKey(generation uint64, includeDeleted bool, page int) []byte {
	return []byte(fmt.Sprintf("runs::list::gen=%d::deleted=%t::page=%d", generation, includeDeleted, page))
}

// Generation must be read before loading the list handed to Set.
func (c *ListCache) Generation() uint64 {
	return c.generation.Load()
}

func (c *ListCache) Get(includeDeleted bool) ([]Run, bool) {
	runs, err := c.get(includeDeleted)
	if err != nil {
		log.Tracef("runs cache miss: %s", err)
		c.metricsManager.CounterCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	c.metricsManager.CounterCacheLookups.WithLabelValues("hit").Inc()
	return runs, true
}

func (c *ListCache) get(includeDeleted bool) ([]Run, error) {
	header, err := c.cache.Get(headerKey(includeDeleted))
	if err != nil {
		return nil, err
	}

	var (
		generation uint64
		pages      int
	)
	if _, err := fmt.Sscanf(string(header), "%d:%d", &generation, &pages); err != nil {
		return nil, fmt.Errorf("parse header %q: %w", header, err)
	}
	if generation != c.Generation() {
		return nil, fmt.Errorf("stale generation %d", generation)
	}

	var runs []Run
	for p := 0; p < pages; p++ {
		pageBytes, err := c.cache.Get(pageKey(generation, includeDeleted, p))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p, err)
		}
		var page []Run
		if err := json.Unmarshal(pageBytes, &page); err != nil {
			return nil, fmt.Errorf("unmarshal page %d: %w", p, err)
		}
		runs = append(runs, page...)
	}
	return runs, nil
}

// Set stores runs loaded while the cache was at generation. Nothing is stored when a write
// invalidated the cache in the meantime.
func (c *ListCache) Set(generation uint64, includeDeleted bool, runs []Run) {
	if generation != c.Generation() {
		return
	}

	pages, err := c.paginate(runs)
	if err != nil {
		log.Errorf("runs cache: %s", err)
		return
	}

	expireSeconds := int(c.expiry.Seconds())
	for i, page := range pages {
		if err := c.cache.Set(pageKey(generation, includeDeleted, i), page, expireSeconds); err != nil {
			log.Errorf("set runs cache page %d (%d bytes): %s", i, len(page), err)
			return
		}
	}
	header := []byte(fmt.Sprintf("%d:%d", generation, len(pages)))
	if err := c.cache.Set(headerKey(includeDeleted), header, expireSeconds); err != nil {
		log.Errorf("set runs cache header: %s", err)
	}
}

// paginate splits runs into JSON arrays that each fit into one cache entry.
func (c *ListCache) paginate(runs []Run) ([][]byte, error) {
	var (
		pages [][]byte
		page  bytes.Buffer
	)
	flush := func() {
		if page.Len() == 0 {
			return
		}
		page.WriteByte(']')
		pages = append(pages, bytes.Clone(page.Bytes()))
		page.Reset()
	}

	for _, run := range runs {
		runBytes, err := json.Marshal(run)
		if err != nil {
			return nil, fmt.Errorf("marshal run %s: %w", run.ID, err)
		}
		if len(runBytes)+2 > c.maxPageBytes {
			return nil, fmt.Errorf("run %s (%d bytes) does not fit a cache page", run.ID, len(runBytes))
		}
		if page.Len() > 0 && page.Len()+1+len(runBytes)+1 > c.maxPageBytes {
			flush()
		}
		if page.Len() == 0 {
			page.WriteByte('[')
		} else {
			page.WriteByte(',')
		}
		page.Write(runBytes)
	}
	flush()
	return pages, nil
}

func (c *ListCache) Invalidate() {
	c.generation.Add(1)
	c.cache.Clear()
}
