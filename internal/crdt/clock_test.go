package crdt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/savesync/internal/errs"
)

func TestNewVectorClock(t *testing.T) {
	vc := NewVectorClock()

	require.NotNil(t, vc)
	assert.True(t, vc.IsZero())
	assert.Equal(t, uint64(0), vc.Get("device-a"), "Absent entry should be zero")
	assert.Equal(t, "{}", vc.String())
}

func TestVectorClock_Increment(t *testing.T) {
	base := VectorClock{"a": 1, "b": 5}

	next := base.Increment("a")

	assert.Equal(t, VectorClock{"a": 2, "b": 5}, next)
	assert.Equal(t, VectorClock{"a": 1, "b": 5}, base, "Increment must not mutate receiver")

	fresh := NewVectorClock().Increment("c")
	assert.Equal(t, uint64(1), fresh.Get("c"))
}

func TestVectorClock_Increment_Monotonicity(t *testing.T) {
	vc := NewVectorClock()

	var previous uint64
	for i := 0; i < 100; i++ {
		vc = vc.Increment("node")
		assert.Greater(t, vc.Get("node"), previous, "Counter should always increase")
		previous = vc.Get("node")
	}

	assert.Equal(t, uint64(100), vc.Get("node"))
}

func TestVectorClock_Merge(t *testing.T) {
	tests := []struct {
		a        VectorClock
		b        VectorClock
		expected VectorClock
		name     string
	}{
		{
			name:     "disjoint devices",
			a:        VectorClock{"a": 1},
			b:        VectorClock{"b": 1},
			expected: VectorClock{"a": 1, "b": 1},
		},
		{
			name:     "pointwise max",
			a:        VectorClock{"a": 3, "b": 1},
			b:        VectorClock{"a": 2, "b": 4},
			expected: VectorClock{"a": 3, "b": 4},
		},
		{
			name:     "merge with empty",
			a:        VectorClock{"a": 2},
			b:        NewVectorClock(),
			expected: VectorClock{"a": 2},
		},
		{
			name:     "nil clocks",
			a:        nil,
			b:        nil,
			expected: VectorClock{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Merge(tt.b))
			assert.Equal(t, tt.expected, tt.b.Merge(tt.a), "Merge should be commutative")
		})
	}
}

func TestVectorClock_Merge_Properties(t *testing.T) {
	clocks := []VectorClock{
		{},
		{"a": 1},
		{"b": 1},
		{"a": 2, "b": 1},
		{"a": 1, "b": 3, "c": 1},
		{"c": 7},
	}

	for _, a := range clocks {
		for _, b := range clocks {
			assert.True(t, a.Merge(b).Equal(b.Merge(a)), "commutative: %s %s", a, b)
			assert.True(t, a.Merge(a).Equal(a), "idempotent: %s", a)

			for _, c := range clocks {
				left := a.Merge(b).Merge(c)
				right := a.Merge(b.Merge(c))
				assert.True(t, left.Equal(right), "associative: %s %s %s", a, b, c)
			}

			// Compare согласован с Merge
			if a.Compare(b) == Before {
				assert.True(t, a.Merge(b).Equal(b), "a before b implies merge(a, b) == b: %s %s", a, b)
			}

			merged := a.Merge(b)
			assert.Contains(t, []Ordering{After, Equal}, merged.Compare(a))
			assert.Contains(t, []Ordering{After, Equal}, merged.Compare(b))
		}
	}
}

func TestVectorClock_Compare(t *testing.T) {
	tests := []struct {
		a        VectorClock
		b        VectorClock
		name     string
		expected Ordering
	}{
		{name: "both empty", a: VectorClock{}, b: VectorClock{}, expected: Equal},
		{name: "identical", a: VectorClock{"a": 1, "b": 2}, b: VectorClock{"a": 1, "b": 2}, expected: Equal},
		{name: "explicit zero equals absent", a: VectorClock{"a": 1, "b": 0}, b: VectorClock{"a": 1}, expected: Equal},
		{name: "strictly before", a: VectorClock{"a": 1}, b: VectorClock{"a": 2}, expected: Before},
		{name: "before with new device", a: VectorClock{"a": 1}, b: VectorClock{"a": 1, "b": 1}, expected: Before},
		{name: "strictly after", a: VectorClock{"a": 3, "b": 1}, b: VectorClock{"a": 2, "b": 1}, expected: After},
		{name: "concurrent disjoint", a: VectorClock{"a": 1}, b: VectorClock{"b": 1}, expected: Concurrent},
		{name: "concurrent crossed", a: VectorClock{"a": 2, "b": 1}, b: VectorClock{"a": 1, "b": 2}, expected: Concurrent},
		{name: "zero clock before non-zero", a: VectorClock{}, b: VectorClock{"z": 1}, expected: Before},
		{name: "non-zero after nil", a: VectorClock{"z": 1}, b: nil, expected: After},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
		})
	}
}

func TestVectorClock_Compare_Symmetry(t *testing.T) {
	inverse := map[Ordering]Ordering{
		Equal:      Equal,
		Before:     After,
		After:      Before,
		Concurrent: Concurrent,
	}

	clocks := []VectorClock{{}, {"a": 1}, {"a": 2}, {"b": 1}, {"a": 1, "b": 1}, {"a": 2, "b": 0}}
	for _, a := range clocks {
		for _, b := range clocks {
			assert.Equal(t, inverse[a.Compare(b)], b.Compare(a), "%s vs %s", a, b)
		}
	}
}

func TestVectorClock_String_Deterministic(t *testing.T) {
	vc := VectorClock{"b": 2, "a": 1, "c": 3}

	for i := 0; i < 10; i++ {
		assert.Equal(t, "{a:1, b:2, c:3}", vc.String())
	}
}

func TestVectorClock_Text_RoundTrip(t *testing.T) {
	vc := VectorClock{"A": 1, "B": 2}

	parsed, err := ParseClock(vc.Text())
	require.NoError(t, err)
	assert.Equal(t, vc, parsed)

	assert.Equal(t, "{}", VectorClock(nil).Text())
}

func TestParseClock_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "not json", input: "A:1"},
		{name: "array", input: `[1,2]`},
		{name: "null", input: `null`},
		{name: "negative counter", input: `{"A":-1}`},
		{name: "fractional counter", input: `{"A":1.5}`},
		{name: "exponent counter", input: `{"A":1e3}`},
		{name: "string counter", input: `{"A":"1"}`},
		{name: "empty device id", input: `{"":1}`},
		{name: "trailing data", input: `{"A":1} {"B":2}`},
		{name: "trailing garbage", input: `{"A":1} xyz`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc, err := ParseClock(tt.input)
			require.Error(t, err)
			assert.Nil(t, vc)
			assert.ErrorIs(t, err, errs.ErrMalformedClock)
			assert.Equal(t, errs.CodeMalformedClock, errs.CodeOf(err))
		})
	}
}

func TestParseClock_Valid(t *testing.T) {
	vc, err := ParseClock(` {"A": 2, "B": 0, "C": 18446744073709551615} `)

	require.NoError(t, err)
	assert.Equal(t, VectorClock{"A": 2, "C": 18446744073709551615}, vc, "zero entries are dropped")
}

func TestVectorClock_ConcurrentReaders(t *testing.T) {
	base := VectorClock{"a": 1, "b": 1}
	goroutines := 10

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = base.Increment("a").Merge(base).Compare(base)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, VectorClock{"a": 1, "b": 1}, base, "Concurrent pure operations must not mutate the clock")
}

func BenchmarkVectorClock_Compare(b *testing.B) {
	x := VectorClock{"a": 3, "b": 1, "c": 9}
	y := VectorClock{"a": 2, "b": 4, "c": 9}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = x.Compare(y)
	}
}

func BenchmarkVectorClock_Merge(b *testing.B) {
	x := VectorClock{"a": 3, "b": 1, "c": 9}
	y := VectorClock{"a": 2, "b": 4, "d": 9}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = x.Merge(y)
	}
}
