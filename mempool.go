package lsystem

type Buffer struct {
	Symbols []Symbol
}

// BufferPool is a pair of symbol buffers: one generation is read from the
// swap buffer while the next is written into the active one.
type BufferPool struct {
	active   *Buffer
	inactive *Buffer

	swap bool
}

func NewBufferPool(capacity int) *BufferPool {
	return &BufferPool{
		active: &Buffer{
			Symbols: make([]Symbol, 0, capacity),
		},
		inactive: &Buffer{
			Symbols: make([]Symbol, 0, capacity),
		},

		swap: false,
	}
}

func (m *BufferPool) Reset() {
	m.active.Symbols = m.active.Symbols[:0]
	m.inactive.Symbols = m.inactive.Symbols[:0]
	m.swap = false
}

func (m *BufferPool) GetActive() *Buffer {
	if m.swap {
		return m.inactive
	}
	return m.active
}

func (m *BufferPool) GetSwap() *Buffer {
	if m.swap {
		return m.active
	}
	return m.inactive
}

func (m *BufferPool) Append(s Symbol) {
	active := m.GetActive()
	active.Symbols = append(active.Symbols, s)
}

func (m *BufferPool) AppendSlice(symbols []Symbol) {
	active := m.GetActive()
	active.Symbols = append(active.Symbols, symbols...)
}

func (m *BufferPool) GetLen() int {
	return len(m.GetActive().Symbols)
}

func (m *BufferPool) GetCap() int {
	return cap(m.GetActive().Symbols)
}

// Swap makes the freshly written buffer the one to read from.
func (m *BufferPool) Swap() {
	m.swap = !m.swap
}

func (m *BufferPool) ResetWritingHead() {
	active := m.GetActive()
	active.Symbols = active.Symbols[:0]
}

// ReadAll returns a copy of the last completed generation.
func (m *BufferPool) ReadAll() []Symbol {
	src := m.GetSwap().Symbols
	out := make([]Symbol, len(src))
	copy(out, src)
	return out
}
