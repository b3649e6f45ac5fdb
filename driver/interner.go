package driver

// Interner deduplicates token text strings. Delimiter tokens repeat endlessly
// in a document ("*", "``", ">}}"), so tooling that materializes their text
// shares one string instance per distinct spelling.
type Interner struct {
	pool map[string]string
}

// NewInterner creates an interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical instance of s.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes converts b to a string and interns it. The temporary string
// used for the lookup is optimized away by the compiler on the hit path.
func (i *Interner) InternBytes(b []byte) string {
	s := string(b)
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the pool.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset clears the pool.
func (i *Interner) Reset() {
	i.pool = make(map[string]string)
}
