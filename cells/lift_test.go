package cells_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/delaneyj/cellparty/cells"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoice struct {
	cells.State
}

var (
	netAmount  = cells.NewValue("net_amount", func(*invoice) int { return 100 })
	vatRate    = cells.NewValue("vat_rate", func(*invoice) int { return 20 })
	grossCalls = 0
	gross      = cells.Lift2("gross", netAmount, vatRate, func(net, rate int) (int, error) {
		grossCalls++
		return net + net*rate/100, nil
	})

	liftErrSrc  = cells.NewValue("lift_err_src", func(*invoice) int { return 1 })
	errNegative = errors.New("negative amount")
	validated   = cells.NewComputed("validated", func(inv *invoice) (int, error) {
		v := liftErrSrc.Get(inv)
		if v < 0 {
			return 0, errNegative
		}
		return v, nil
	})
	liftFnCalls = 0
	liftOut     = cells.Lift1("lift_out", validated, func(v int) (int, error) {
		liftFnCalls++
		return v * 2, nil
	})

	chainSrc  = cells.NewValue("chain_src", func(*invoice) int { return 0 })
	chainLeaf = func() *cells.Computed[*invoice, int] {
		var prev cells.Cell[*invoice, int] = chainSrc
		var leaf *cells.Computed[*invoice, int]
		for i := 0; i < 10; i++ {
			leaf = cells.Lift1(fmt.Sprintf("chain_%d", i), prev, func(v int) (int, error) {
				return v + 1, nil
			})
			prev = leaf
		}
		return leaf
	}()

	l8srcs = func() []*cells.Value[*invoice, int] {
		srcs := make([]*cells.Value[*invoice, int], 8)
		for i := range srcs {
			srcs[i] = cells.NewValue(fmt.Sprintf("l8_src_%d", i), func(*invoice) int { return 1 })
		}
		return srcs
	}()
	l8sumCalls = 0
	l8sum      = cells.Lift8("l8_sum",
		l8srcs[0], l8srcs[1], l8srcs[2], l8srcs[3],
		l8srcs[4], l8srcs[5], l8srcs[6], l8srcs[7],
		func(a, b, c, d, e, f, g, h int) (int, error) {
			l8sumCalls++
			return a + b + c + d + e + f + g + h, nil
		})
)

// should combine its inputs and recompute only when one changes
func TestLiftCombinesDeps(t *testing.T) {
	inv := &invoice{}
	assert.Equal(t, "gross", gross.Name())

	before := grossCalls
	got, err := gross.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 120, got)

	got, err = gross.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 120, got)
	assert.Equal(t, before+1, grossCalls)

	require.NoError(t, vatRate.Set(inv, 10))
	got, err = gross.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 110, got)
	assert.Equal(t, before+2, grossCalls)
}

// should propagate a dependency error without running the combiner
func TestLiftShortCircuitsOnDepError(t *testing.T) {
	inv := &invoice{}

	before := liftFnCalls
	got, err := liftOut.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, before+1, liftFnCalls)

	require.NoError(t, liftErrSrc.Set(inv, -1))
	_, err = liftOut.Get(inv)
	assert.ErrorIs(t, err, errNegative)
	assert.Equal(t, before+1, liftFnCalls)

	require.NoError(t, liftErrSrc.Set(inv, 3))
	got, err = liftOut.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
	assert.Equal(t, before+2, liftFnCalls)
}

// should propagate a change through a deep chain of lifts
func TestLiftChain(t *testing.T) {
	inv := &invoice{}

	got, err := chainLeaf.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	require.NoError(t, chainSrc.Set(inv, 100))
	got, err = chainLeaf.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 110, got)
}

// should fan eight inputs into one output
func TestLiftEight(t *testing.T) {
	inv := &invoice{}

	before := l8sumCalls
	got, err := l8sum.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 8, got)

	require.NoError(t, l8srcs[3].Set(inv, 10))
	got, err = l8sum.Get(inv)
	require.NoError(t, err)
	assert.Equal(t, 17, got)
	assert.Equal(t, before+2, l8sumCalls)
}
