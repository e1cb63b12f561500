package pool

import "sync"

// Buffer sizes for encoded result tables.
const (
	TableBufferDefaultSize  = 1024 * 4   // 4KiB, enough for a few hundred rows
	TableBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is an append-only byte slice that is recycled through a pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer
// is returned to its pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures that n more bytes can be appended without reallocating.
//
// Small buffers grow by TableBufferDefaultSize, larger ones by a quarter of
// their capacity, and never by less than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := TableBufferDefaultSize
	if cap(bb.B) > 4*TableBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	buf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(buf, bb.B)
	bb.B = buf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool recycles ByteBuffers and drops buffers that grew beyond
// maxThreshold so one huge table does not pin memory forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize bytes.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. Nil and oversized buffers are discarded.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var tablePool = NewByteBufferPool(TableBufferDefaultSize, TableBufferMaxThreshold)

// GetTableBuffer retrieves a buffer for encoding a result table.
func GetTableBuffer() *ByteBuffer {
	return tablePool.Get()
}

// PutTableBuffer returns a table buffer to its pool.
func PutTableBuffer(bb *ByteBuffer) {
	tablePool.Put(bb)
}
