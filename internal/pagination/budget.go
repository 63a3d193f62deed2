package pagination

const (
	// ServerMaxPageSize is the largest page the server returns for any list method.
	ServerMaxPageSize = 100

	// Unbounded is the item budget used when no limit is set.
	Unbounded = 1<<31 - 1
)

// Budget bounds one pagination run.
type Budget struct {
	// Limit is the total number of items to yield. Zero means no limit.
	// A negative limit counts the same as its absolute value.
	Limit int

	// PageSize is the preferred page size. Zero means the server maximum.
	PageSize int
}

// Total returns the number of items the run may yield.
func (b Budget) Total() int {
	switch {
	case b.Limit == 0:
		return Unbounded
	case b.Limit < 0:
		return -b.Limit
	default:
		return b.Limit
	}
}

// Size returns the page size requested on every fetch of the run.
// It never exceeds ServerMaxPageSize.
func (b Budget) Size() int {
	size := ServerMaxPageSize
	if b.PageSize > 0 && b.PageSize < size {
		size = b.PageSize
	}
	if total := b.Total(); total < size {
		size = total
	}
	return size
}
