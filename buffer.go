package fabric

import (
	"fmt"
	"sync"

	"github.com/e7canasta/kotekan-fabric/internal/ring"
)

// New builds a Buffer from cfg. It is the only public constructor and part
// of the stable API; everything else about how a Buffer allocates and
// tracks its slots is an internal implementation detail.
func New(cfg Config) (*Buffer, error) {
	return ring.NewBuffer(cfg)
}

// BufferContainer is a name-keyed catalog of live buffers. It belongs to
// the surrounding pipeline builder, not to any individual Buffer - the
// fabric itself never looks a buffer up by name.
type BufferContainer struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
}

// NewBufferContainer returns an empty catalog.
func NewBufferContainer() *BufferContainer {
	return &BufferContainer{buffers: make(map[string]*Buffer)}
}

// Register adds b to the catalog under b.Name(). It fails if that name is
// already taken.
func (c *BufferContainer) Register(b *Buffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.buffers[b.Name()]; exists {
		return fmt.Errorf("fabric: buffer container: name %q already registered", b.Name())
	}
	c.buffers[b.Name()] = b
	return nil
}

// Get looks up a buffer by name.
func (c *BufferContainer) Get(name string) (*Buffer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.buffers[name]
	return b, ok
}

// Remove drops name from the catalog without closing the underlying buffer;
// the caller owns its lifecycle.
func (c *BufferContainer) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.buffers, name)
}

// Names returns the currently registered buffer names in no particular
// order.
func (c *BufferContainer) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.buffers))
	for name := range c.buffers {
		names = append(names, name)
	}
	return names
}
