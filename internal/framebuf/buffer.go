package framebuf

import "bytes"

var crlf = []byte("\r\n")

// Buffer accumulates bytes read from a channel until a complete line can be cut off its head.
// Consumed bytes aren't freed immediately: the dead prefix is reclaimed on the next Push, as soon
// as it takes at least a half of the backing array.
type Buffer struct {
	memory []byte
	head   int
	// scanned is the number of unconsumed bytes already known not to contain a CRLF
	scanned int
}

func New(initialSize int) *Buffer {
	return &Buffer{
		memory: make([]byte, 0, initialSize),
	}
}

// Push appends a copy of b to the tail. Slices previously returned by Shift or Bytes
// are invalidated.
func (b *Buffer) Push(data []byte) {
	if len(data) == 0 {
		return
	}

	if b.head > 0 && b.head >= cap(b.memory)/2 {
		n := copy(b.memory, b.memory[b.head:])
		b.memory = b.memory[:n]
		b.head = 0
	}

	b.memory = append(b.memory, data...)
}

// Search returns the offset of the first CRLF relative to the head or -1 if there's none.
// Bytes that were already looked through aren't scanned again, except the last one, as it
// might be a CR waiting for its LF.
func (b *Buffer) Search() int {
	from := b.scanned - 1
	if from < 0 {
		from = 0
	}

	unconsumed := b.memory[b.head:]
	if i := bytes.Index(unconsumed[from:], crlf); i != -1 {
		return from + i
	}

	b.scanned = len(unconsumed)
	return -1
}

// Shift removes first n bytes and returns them. The returned slice stays valid until the
// next Push.
func (b *Buffer) Shift(n int) []byte {
	if n > b.Len() {
		n = b.Len()
	}

	segment := b.memory[b.head : b.head+n]
	b.head += n
	if b.scanned -= n; b.scanned < 0 {
		b.scanned = 0
	}

	if b.head == len(b.memory) {
		b.Clear()
	}

	return segment
}

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.memory) - b.head
}

// Bytes returns unconsumed bytes without consuming them.
func (b *Buffer) Bytes() []byte {
	return b.memory[b.head:]
}

// Clear drops everything, keeping the allocated space.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
	b.head = 0
	b.scanned = 0
}
