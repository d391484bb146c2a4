package gyroid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamErrorMessage(t *testing.T) {
	err := &ParamError{Field: "Size", Value: -1}
	require.Contains(t, err.Error(), "Size")
	require.Contains(t, err.Error(), "-1")
}

func TestAllocGuardPassesThroughOnSuccess(t *testing.T) {
	var ran bool
	err := allocGuard("test", func() { ran = true })
	require.NoError(t, err)
	require.True(t, ran)
}

func TestAllocGuardConvertsPanicToOutOfMemoryError(t *testing.T) {
	err := allocGuard("field grid", func() {
		panic("runtime error: out of memory")
	})
	require.Error(t, err)
	var oom *OutOfMemoryError
	require.ErrorAs(t, err, &oom)
	require.Contains(t, oom.Error(), "field grid")
}
