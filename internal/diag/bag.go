package diag

// Bag is an ordered, append-only collection of diagnostics for one
// compilation. The parser writes to it through a Reporter; the driver reads
// it once parsing is done.
type Bag struct {
	items      []Diagnostic
	max        int
	dropped    int
	droppedErr bool
}

// NewBag creates a bag that keeps at most limit diagnostics; limit <= 0
// means no limit.
func NewBag(limit int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, min(max(limit, 0), 64)),
		max:   limit,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		b.droppedErr = b.droppedErr || d.Severity >= SevError
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the configured limit (0 when unlimited).
func (b *Bag) Cap() int {
	if b.max < 0 {
		return 0
	}
	return b.max
}

// Dropped counts diagnostics rejected because the bag was full.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return b.droppedErr
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Empty reports whether nothing was ever reported, including dropped items.
func (b *Bag) Empty() bool {
	return len(b.items) == 0 && b.dropped == 0
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик в порядке добавления.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}
