package platform

// IDKind selects which id sequence an allocation draws from.
type IDKind int

// The entity kinds with independent id sequences.
const (
	KindUser IDKind = iota
	KindAssignment
	KindGrade
	KindSchedule
	KindNotification
	kindCount
)

// IDAllocator issues unique, monotonically increasing integer ids per
// entity kind, starting at 1. Ids are never reused, even after the
// owning entity is removed. Each Platform owns its own allocator, so
// independent platform instances never share sequences.
type IDAllocator struct {
	next [kindCount]int
}

// NewIDAllocator returns an allocator with all sequences at 1.
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	for k := range a.next {
		a.next[k] = 1
	}
	return a
}

// Next returns the next id for the given kind and advances the sequence.
func (a *IDAllocator) Next(kind IDKind) int {
	id := a.next[kind]
	a.next[kind]++
	return id
}
