// SPDX-License-Identifier: MIT

package backend_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/loopy/backend"
)

var cpu backend.Backend = backend.CPU{}

func TestCPU_GatherScatter(t *testing.T) {
	t.Parallel()

	src := []float64{10, 20, 30}
	dst := make([]float64, 4)
	cpu.Gather(dst, src, []int{2, 0, 0, 1})
	assert.Equal(t, []float64{30, 10, 10, 20}, dst)

	out := []float64{-1, -1, -1}
	cpu.Scatter(out, []float64{7, 8}, []int{2, 0})
	assert.Equal(t, []float64{8, -1, 7}, out)
}

func TestCPU_Gather_LengthMismatch_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, backend.ErrDimensionMismatch))
	}()
	cpu.Gather(make([]float64, 2), []float64{1}, []int{0})
}

func TestCPU_SegmentSum(t *testing.T) {
	t.Parallel()

	dst := []float64{99, 99, 99}
	cpu.SegmentSum(dst, []float64{1, 2, 3, 4}, []int{0, 2, 0, 2})
	assert.Equal(t, []float64{4, 0, 6}, dst)
}

func TestCPU_SegmentSumExclusive(t *testing.T) {
	t.Parallel()

	src := []float64{1e20, 1, 2, 5}
	seg := []int{0, 0, 0, 1}
	dst := make([]float64, len(src))
	cpu.SegmentSumExclusive(dst, src, seg, 2)

	assert.Equal(t, 3.0, dst[0], "no cancellation against the large entry")
	assert.Equal(t, 1e20+2, dst[1])
	assert.Equal(t, 1e20+1, dst[2])
	assert.Equal(t, 0.0, dst[3])
}

func TestCPU_SegmentReduce(t *testing.T) {
	t.Parallel()

	src := []float64{1, 3, math.Log(2), math.Log(2), math.Inf(-1)}
	seg := []int{0, 0, 1, 1, 3}

	t.Run("max", func(t *testing.T) {
		dst := make([]float64, 4)
		cpu.SegmentReduce(dst, src, seg, 0)
		assert.Equal(t, 3.0, dst[0])
		assert.Equal(t, math.Log(2), dst[1])
		assert.True(t, math.IsInf(dst[2], -1), "empty segment")
		assert.True(t, math.IsInf(dst[3], -1), "all -Inf segment")
	})

	t.Run("logsumexp", func(t *testing.T) {
		dst := make([]float64, 4)
		cpu.SegmentReduce(dst, src, seg, 1)
		assert.InDelta(t, math.Log(math.E+math.Exp(3)), dst[0], 1e-12)
		assert.InDelta(t, math.Log(4), dst[1], 1e-12)
		assert.True(t, math.IsInf(dst[2], -1))
		assert.True(t, math.IsInf(dst[3], -1))
	})

	t.Run("temperature", func(t *testing.T) {
		dst := make([]float64, 1)
		cpu.SegmentReduce(dst, []float64{0, 0}, []int{0, 0}, 0.5)
		assert.InDelta(t, 0.5*math.Log(2), dst[0], 1e-12)
	})
}

func TestCPU_SegmentMaxExclusive(t *testing.T) {
	t.Parallel()

	src := []float64{5, 1, 3, 7, 7}
	seg := []int{0, 0, 0, 1, 2}
	dst := make([]float64, len(src))
	cpu.SegmentMaxExclusive(dst, src, seg, 3)

	assert.Equal(t, 3.0, dst[0])
	assert.Equal(t, 5.0, dst[1])
	assert.Equal(t, 5.0, dst[2])
	assert.True(t, math.IsInf(dst[3], -1), "singleton segment")
	assert.True(t, math.IsInf(dst[4], -1), "singleton segment")

	ties := make([]float64, 2)
	cpu.SegmentMaxExclusive(ties, []float64{4, 4}, []int{0, 0}, 1)
	assert.Equal(t, []float64{4, 4}, ties)
}

func TestCPU_NormalizeRanges(t *testing.T) {
	t.Parallel()

	x := []float64{1, 3, -2, -5, 0}
	shift := cpu.NormalizeRanges(x, []int{0, 2, 4, 5})
	assert.Equal(t, []float64{-2, 0, 0, -3, 0}, x)
	assert.Equal(t, 3.0, shift)
}

func TestCPU_Blend(t *testing.T) {
	t.Parallel()

	old := []float64{0, 10}
	computed := []float64{4, 0}

	dst := make([]float64, 2)
	cpu.Blend(dst, old, computed, 0.25)
	assert.Equal(t, []float64{3, 2.5}, dst)

	cpu.Blend(dst, old, computed, 0)
	assert.Equal(t, computed, dst)

	// in-place on the computed buffer
	c := append([]float64(nil), computed...)
	cpu.Blend(c, old, c, 0.5)
	assert.Equal(t, []float64{2, 5}, c)
}

func TestCPU_FloorAndFinite(t *testing.T) {
	t.Parallel()

	x := []float64{math.Inf(-1), -1e30, 0}
	cpu.Floor(x)
	assert.Equal(t, []float64{backend.LogFloor, backend.LogFloor, 0}, x)
	assert.Equal(t, -1, cpu.FirstNonFinite(x))
	assert.Equal(t, 1, cpu.FirstNonFinite([]float64{0, math.NaN(), math.Inf(1)}))
}

func TestCPU_MaxAbsDiff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, cpu.MaxAbsDiff(nil, nil))
	assert.Equal(t, 4.0, cpu.MaxAbsDiff([]float64{1, -2, 3}, []float64{1, 2, 2}))
}

func TestCPU_SoftmaxArgmaxRanges(t *testing.T) {
	t.Parallel()

	src := []float64{0, 0, math.Log(3), 0, 2, 2}
	off := []int{0, 2, 4, 6}

	p := make([]float64, len(src))
	cpu.SoftmaxRanges(p, src, off)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.75, 0.25, 0.5, 0.5}, p, 1e-12)

	arg := make([]int, 3)
	cpu.ArgmaxRanges(arg, src, off)
	assert.Equal(t, []int{0, 0, 0}, arg, "ties resolve to the lowest index")
}

func TestLogHelpers(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Log(2), backend.Softplus(0, 1), 1e-12)
	assert.Equal(t, 3.0, backend.Softplus(3, 0))
	assert.InDelta(t, 1000.0, backend.Softplus(1000, 1), 1e-9)

	assert.True(t, math.IsInf(backend.LogExpm1(0, 1), -1))
	assert.InDelta(t, math.Log(math.E-1), backend.LogExpm1(1, 1), 1e-12)
	assert.InDelta(t, 500.0, backend.LogExpm1(500, 1), 1e-9)

	assert.InDelta(t, math.Log(2), backend.LogAddExp(0, 0, 1), 1e-12)
	assert.Equal(t, 2.0, backend.LogAddExp(2, -1, 0))
	assert.Equal(t, 1.0, backend.LogAddExp(math.Inf(-1), 1, 1))
}

func TestValidators(t *testing.T) {
	t.Parallel()

	require.NoError(t, backend.ValidateIndex([]int{0, 2}, 3))
	assert.ErrorIs(t, backend.ValidateIndex([]int{3}, 3), backend.ErrIndexOutOfRange)
	require.NoError(t, backend.ValidateIndexRange([]int{4, 5}, 4, 6))
	assert.ErrorIs(t, backend.ValidateIndexRange([]int{4, 3}, 4, 6), backend.ErrIndexOutOfRange)
	assert.ErrorIs(t, backend.ValidateSegments([]int{0}, 2, 1), backend.ErrDimensionMismatch)
	require.NoError(t, backend.ValidateOffsets([]int{0, 2, 2, 5}, 5))
	assert.ErrorIs(t, backend.ValidateOffsets([]int{0, 3, 2}, 2), backend.ErrDimensionMismatch)
}
