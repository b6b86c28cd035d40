package editor

// ByteSource reads the byte at a buffer-relative address. Addresses passed in
// are always below the current buffer size.
type ByteSource interface {
	ByteAt(addr uint64) byte
}

// MemoryBuffer owns the bytes being viewed. Base is added to addresses for
// display only.
type MemoryBuffer struct {
	data []byte
	Base uint64
}

func (b *MemoryBuffer) Size() uint64 { return uint64(len(b.data)) }

func (b *MemoryBuffer) ByteAt(addr uint64) byte {
	if addr >= uint64(len(b.data)) {
		return 0
	}
	return b.data[addr]
}

// Bytes returns a copy of [start, end].
func (b *MemoryBuffer) Bytes(start, end uint64) []byte {
	size := b.Size()
	if size == 0 || start >= size {
		return nil
	}
	if end >= size {
		end = size - 1
	}
	if start > end {
		start, end = end, start
	}
	return append([]byte(nil), b.data[start:end+1]...)
}

func (b *MemoryBuffer) reset() {
	b.data = nil
	b.Base = 0
}
