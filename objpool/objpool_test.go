package objpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ygrebnov/concoro/objpool"
)

func TestDynamic_GetManufacturesWhenEmpty(t *testing.T) {
	t.Parallel()

	calls := 0
	p := objpool.NewDynamic(func() int {
		calls++
		return calls
	})

	v := p.Get()
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)
}

func TestDynamic_PutAllowsReuse(t *testing.T) {
	t.Parallel()

	p := objpool.NewDynamic(func() []int { return make([]int, 0, 8) })

	s := p.Get()
	s = append(s, 1, 2, 3)
	p.Put(s[:0])

	got := p.Get()
	assert.Equal(t, 0, len(got))
	assert.GreaterOrEqual(t, cap(got), 3)
}

func TestFixed_GetManufacturesUpToCapacity(t *testing.T) {
	t.Parallel()

	calls := 0
	p := objpool.NewFixed(2, func() int {
		calls++
		return calls
	})

	a := p.Get()
	b := p.Get()
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, calls)
}

func TestFixed_PutThenGetReusesValue(t *testing.T) {
	t.Parallel()

	p := objpool.NewFixed(1, func() string { return "fresh" })

	v := p.Get()
	p.Put("reused")
	got := p.Get()
	assert.Equal(t, "reused", got)
	_ = v
}
