package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapSet(t *testing.T) {
	var s Bitmap

	assert.False(t, s.IsSet(0))
	assert.Equal(t, 0, s.Size())

	s.Set(3)
	s.Set(70)
	s.Set(200)

	assert.True(t, s.IsSet(3))
	assert.True(t, s.IsSet(70))
	assert.True(t, s.IsSet(200))
	assert.False(t, s.IsSet(4))
	assert.False(t, s.IsSet(1000))
	assert.Equal(t, 3, s.Size())

	var n *Bitmap

	assert.False(t, n.IsSet(1))
	assert.Equal(t, 0, n.Size())
}

func TestBitmapAdd(t *testing.T) {
	var s Bitmap

	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1))
	assert.True(t, s.Add(65))
	assert.Equal(t, 2, s.Size())
}

func TestBitmapRange(t *testing.T) {
	var s Bitmap

	for _, i := range []int{0, 63, 64, 128} {
		s.Set(i)
	}

	var got []int
	s.Range(func(i int) bool {
		got = append(got, i)
		return true
	})

	assert.Equal(t, []int{0, 63, 64, 128}, got)

	got = got[:0]
	s.Range(func(i int) bool {
		got = append(got, i)
		return len(got) < 2
	})

	assert.Equal(t, []int{0, 63}, got)
}

func TestBitmapNegative(t *testing.T) {
	var s Bitmap

	assert.Panics(t, func() { s.Set(-1) })
}
