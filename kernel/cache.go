package kernel

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/arloliu/gpfield/errs"
	"github.com/arloliu/gpfield/internal/hash"
	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/mat"
)

// Cache is a fixed-size LRU cache of Gram matrices, safe for concurrent use.
//
// Entries are keyed by the xxHash64 of the kernel identity, coordinates and
// parameters. The identity is the name for built-in kernels and the name plus
// instance address for *Func kernels, so two custom kernels never share
// entries. A hit is only served when the stored identity, coordinates and
// parameters match the request exactly, so a hash collision costs a rebuild
// rather than a wrong matrix. Other Kernel implementations must use distinct
// names for distinct covariance functions.
//
// A nil *Cache is valid and builds every matrix directly.
type Cache struct {
	entries *lru.Cache[uint64, *cacheEntry]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

type cacheEntry struct {
	name   string
	coords []float64
	params Params
	gram   *mat.SymDense
}

// NewCache creates a cache holding at most size matrices.
//
// Returns errs.ErrInvalidConfig when size is not positive.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: kernel cache size must be positive, got %d", errs.ErrInvalidConfig, size)
	}

	entries, err := lru.New[uint64, *cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return &Cache{entries: entries}, nil
}

// Matrix returns the Gram matrix of k over x with parameters p, building and
// storing it on a miss. The returned matrix is shared and must not be modified.
func (c *Cache) Matrix(k Kernel, x []float64, p Params) (*mat.SymDense, error) {
	if c == nil {
		return k.Matrix(x, p)
	}

	name := identity(k)
	key := hash.Key(name, x, p)
	if e, ok := c.entries.Get(key); ok && e.matches(name, x, p) {
		c.hits.Add(1)
		return e.gram, nil
	}

	c.misses.Add(1)
	gram, err := k.Matrix(x, p)
	if err != nil {
		return nil, err
	}

	c.entries.Add(key, &cacheEntry{
		name:   name,
		coords: slices.Clone(x),
		params: slices.Clone(p),
		gram:   gram,
	})

	return gram, nil
}

// Len returns the number of cached matrices.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	return c.entries.Len()
}

// Stats returns the hit and miss counts since the cache was created.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}

	return c.hits.Load(), c.misses.Load()
}

// Purge drops every cached matrix and keeps the counters.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

func identity(k Kernel) string {
	if f, ok := k.(*Func); ok {
		return fmt.Sprintf("%s@%p", f.name, f)
	}

	return k.Name()
}

func (e *cacheEntry) matches(name string, x []float64, p Params) bool {
	return e.name == name && slices.Equal(e.coords, x) && slices.Equal(e.params, p)
}
