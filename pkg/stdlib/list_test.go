package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nois-lang/noisc/pkg/interp"
	"github.com/nois-lang/noisc/pkg/parse"
	"github.com/nois-lang/noisc/pkg/stdlib"
)

func run(t *testing.T, source string) interp.Value {
	t.Helper()
	prog, err := parse.NewParser().ParseString(source)
	require.NoError(t, err)
	ctx := interp.NewContext(source, stdlib.Global())
	v, err := interp.EvalProgram(ctx, prog)
	require.NoError(t, err)
	return v
}

func ints(vs ...int64) interp.List {
	items := make([]interp.Value, len(vs))
	for i, v := range vs {
		items[i] = interp.Int{V: v}
	}
	return interp.List{Items: items}
}

func TestSliceWholeRangeIsIdentity(t *testing.T) {
	v := run(t, "xs = [1, 2, 3, 4]; slice(xs, 0, len(xs) - 1)")
	assert.Equal(t, ints(1, 2, 3, 4), v)
}

func TestMapIdentityFunctionIsNoop(t *testing.T) {
	v := run(t, "xs = [1, 2, 3]; map(xs, (x) -> x)")
	assert.Equal(t, ints(1, 2, 3), v)
}

func TestFilterAlwaysTrueIsIdentity(t *testing.T) {
	v := run(t, "xs = [1, 2, 3]; filter(xs, (x) -> True)")
	assert.Equal(t, ints(1, 2, 3), v)
}

func TestFilterAlwaysFalseIsEmpty(t *testing.T) {
	v := run(t, "xs = [1, 2, 3]; filter(xs, (x) -> False)")
	assert.Equal(t, interp.List{Items: nil}, v)
}

func TestReverseIsInvolution(t *testing.T) {
	v := run(t, "xs = [1, 2, 3]; reverse(reverse(xs))")
	assert.Equal(t, ints(1, 2, 3), v)
}

func TestSortIsIdempotent(t *testing.T) {
	v := run(t, "xs = [3, 1, 2]; sort(sort(xs))")
	assert.Equal(t, ints(1, 2, 3), v)
}

func TestSortIsNonDecreasing(t *testing.T) {
	v := run(t, "sort([5, 3, 4, 1, 2])")
	assert.Equal(t, ints(1, 2, 3, 4, 5), v)
}

func TestReduceIsLeftFold(t *testing.T) {
	v := run(t, "reduce([1, 2, 3, 4], 0, (a, x, i) -> a + x)")
	assert.Equal(t, interp.Int{V: 10}, v)
}

func TestReduceOrderMattersForNonCommutativeFold(t *testing.T) {
	v := run(t, `reduce(["a", "b", "c"], "", (a, x, i) -> a + x)`)
	list, ok := v.(interp.List)
	require.True(t, ok)
	require.True(t, interp.IsString(list))
	assert.Equal(t, "abc", v.Display())
}
