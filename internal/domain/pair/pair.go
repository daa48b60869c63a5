package pair

// Key identifies an unordered pair of distinct essays.
// NewKey(a, b) and NewKey(b, a) produce the same Key.
type Key struct {
	a string
	b string
}

// NewKey creates an unordered pair key; the lexicographically smaller id comes first.
func NewKey(idA, idB string) Key {
	if idB < idA {
		idA, idB = idB, idA
	}
	return Key{a: idA, b: idB}
}

// A returns the first essay id of the pair.
func (k Key) A() string { return k.a }

// B returns the second essay id of the pair.
func (k Key) B() string { return k.b }

// String renders the key as "a|b".
func (k Key) String() string { return k.a + "|" + k.b }

// Less orders keys by A, then B.
func (k Key) Less(other Key) bool {
	if k.a != other.a {
		return k.a < other.a
	}
	return k.b < other.b
}

// Count returns the number of unordered pairs among n essays.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
