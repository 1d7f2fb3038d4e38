package workpool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToCPUCount(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), New(0).Size())
	assert.Equal(t, runtime.NumCPU(), New(-3).Size())
	assert.Equal(t, 3, New(3).Size())
}

func TestNilPoolRunsSerially(t *testing.T) {
	var p *Pool
	assert.Equal(t, 1, p.Size())
}

func TestRunVisitsEveryIndex(t *testing.T) {
	p := New(4)
	seen := make([]int32, 100)

	err := p.Run(context.Background(), len(seen), func(_ context.Context, i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	require.NoError(t, err)

	for i, n := range seen {
		assert.Equalf(t, int32(1), n, "index %d visited %d times", i, n)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	p := New(2)
	var inFlight, peak int32

	err := p.Run(context.Background(), 50, func(_ context.Context, i int) error {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		runtime.Gosched()
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestRunReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := New(2).Run(context.Background(), 10, func(_ context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunZeroTasks(t *testing.T) {
	called := false
	err := New(2).Run(context.Background(), 0, func(context.Context, int) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestChunksCoverRange(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		for _, total := range []int{1, 2, 7, 100} {
			chunks := New(workers).Chunks(total)
			require.NotEmpty(t, chunks)
			assert.LessOrEqual(t, len(chunks), workers)

			next := 0
			for _, c := range chunks {
				assert.Equal(t, next, c[0])
				assert.Greater(t, c[1], c[0])
				next = c[1]
			}
			assert.Equal(t, total, next)
		}
	}
	assert.Nil(t, New(4).Chunks(0))
}
