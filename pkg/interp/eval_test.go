package interp_test

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

func runErr(t *testing.T, source string) error {
	t.Helper()
	prog, err := parse.NewParser().ParseString(source)
	if err != nil {
		return err
	}
	ctx := interp.NewContext(source, stdlib.Global())
	_, err = interp.EvalProgram(ctx, prog)
	return err
}

func TestScenarioOperatorPrecedence(t *testing.T) {
	v := run(t, "1 + 2 * 3")
	assert.Equal(t, interp.Int{V: 7}, v)
}

func TestScenarioRebindAndReread(t *testing.T) {
	v := run(t, "a = 4; a = a + 1; a")
	assert.Equal(t, interp.Int{V: 5}, v)
}

func TestScenarioSpreadDestructure(t *testing.T) {
	v := run(t, "[a, ..r] = [1, 2, 3]; r")
	list, ok := v.(interp.List)
	require.True(t, ok)
	assert.Equal(t, []interp.Value{interp.Int{V: 2}, interp.Int{V: 3}}, list.Items)
}

func TestScenarioFilterMapChain(t *testing.T) {
	v := run(t, "range(5).filter(x -> x > 1).map(x -> x * 10)")
	list, ok := v.(interp.List)
	require.True(t, ok)
	assert.Equal(t, []interp.Value{interp.Int{V: 20}, interp.Int{V: 30}, interp.Int{V: 40}}, list.Items)
}

func TestScenarioMatchSpreadTail(t *testing.T) {
	v := run(t, "match [1,2,3] { [_, .., a] => a }")
	assert.Equal(t, interp.Int{V: 3}, v)
}

func TestScenarioClosureCaptureAtConstruction(t *testing.T) {
	v := run(t, "g = a -> a + 1; f = { a = 20; g(a) }; a = 10; f + a")
	assert.Equal(t, interp.Int{V: 31}, v)
}

func TestShortCircuitAndOr(t *testing.T) {
	v := run(t, `False && panic("boom")`)
	assert.Equal(t, interp.Bool{V: false}, v)

	v = run(t, `True || panic("boom")`)
	assert.Equal(t, interp.Bool{V: true}, v)
}

func TestChainedNonAssociativeComparisonFails(t *testing.T) {
	err := runErr(t, "a = 1; b = 2; c = 3; a == b <= c")
	require.Error(t, err)
	var evalErr *interp.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, interp.ChainError, evalErr.Kind)
}

func TestTypeRoundTripAndWildcard(t *testing.T) {
	v := run(t, "type(1) == type(2)")
	assert.Equal(t, interp.Bool{V: true}, v)

	v = run(t, "type(1) == *")
	assert.Equal(t, interp.Bool{V: true}, v)
}

func TestWildcardMatchesListShapedType(t *testing.T) {
	v := run(t, "type([1, 2]) == *")
	assert.Equal(t, interp.Bool{V: true}, v)

	v = run(t, "* == type([1, 2])")
	assert.Equal(t, interp.Bool{V: true}, v)

	v = run(t, "type([1, 2]) == [I]")
	assert.Equal(t, interp.Bool{V: true}, v)

	v = run(t, "type([1, 2]) == [C]")
	assert.Equal(t, interp.Bool{V: false}, v)
}

func TestClosureRebindAfterConstructionIsIgnored(t *testing.T) {
	v := run(t, "x = 1; f = () -> x; x = 2; f()")
	assert.Equal(t, interp.Int{V: 1}, v)
}

func TestNestedBlockDoesNotLeakBindings(t *testing.T) {
	v := run(t, "a = 10; f = { a = 20; a }; a")
	assert.Equal(t, interp.Int{V: 10}, v)
	_ = v
}
