package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nois-lang/noisc/pkg/interp"
)

func TestSomeWrapsSingleElementList(t *testing.T) {
	v := run(t, "some(5)")
	assert.Equal(t, ints(5), v)
}

func TestNoneIsEmptyList(t *testing.T) {
	v := run(t, "none()")
	assert.Equal(t, interp.List{}, v)
}

func TestTypeOfEmptyListIsListOfAny(t *testing.T) {
	v := run(t, "type([]) == [*]")
	assert.Equal(t, "True", v.Display())
}

func TestTypeOfNonEmptyListFollowsFirstElement(t *testing.T) {
	v := run(t, "type([1, 2]) == [I]")
	assert.Equal(t, "True", v.Display())
}
