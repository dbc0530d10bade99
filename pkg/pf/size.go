package pf

// BinarySize is an upper bound on the encoded footprint of a type. It exists
// so that a sentinel-terminated array can test whether the next element is
// all zero before decoding it. Dynamic sizes cannot be probed.
type BinarySize struct {
	FixedBytes int
	Pointers   int
	Dynamic    bool
}

// Fixed is the size of a type made of n plain bytes.
func Fixed(n int) BinarySize { return BinarySize{FixedBytes: n} }

// PointerFields is the size of a type made of n pointer fields.
func PointerFields(n int) BinarySize { return BinarySize{Pointers: n} }

// Dynamic is the size of a type whose footprint depends on its content.
func Dynamic() BinarySize { return BinarySize{Dynamic: true} }

// Add returns the size of s followed by o.
func (s BinarySize) Add(o BinarySize) BinarySize {
	return BinarySize{
		FixedBytes: s.FixedBytes + o.FixedBytes,
		Pointers:   s.Pointers + o.Pointers,
		Dynamic:    s.Dynamic || o.Dynamic,
	}
}

// Times returns the size of n consecutive values of s.
func (s BinarySize) Times(n int) BinarySize {
	return BinarySize{FixedBytes: s.FixedBytes * n, Pointers: s.Pointers * n, Dynamic: s.Dynamic}
}

// Sizes sums the sizes of a record's fields in declaration order.
func Sizes(fields ...BinarySize) BinarySize {
	var total BinarySize
	for _, f := range fields {
		total = total.Add(f)
	}
	return total
}

// Actual resolves the byte size for the given pointer mode. ok is false for
// dynamic sizes.
func (s BinarySize) Actual(wide bool) (n int, ok bool) {
	if s.Dynamic {
		return 0, false
	}
	width := narrowPointerSize
	if wide {
		width = widePointerSize
	}
	return s.FixedBytes + s.Pointers*width, true
}
