package tpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/concoro/tpool"
)

func TestTask_JoinBeforePushFails(t *testing.T) {
	t.Parallel()

	task := tpool.NewTask(func(any) any { return nil }, nil)
	_, err := task.Join()
	assert.ErrorIs(t, err, tpool.ErrTaskNotPushed)

	_, err = task.TimedJoin(0)
	assert.ErrorIs(t, err, tpool.ErrTaskNotPushed)

	err = task.Detach()
	assert.ErrorIs(t, err, tpool.ErrTaskNotPushed)
}

func TestTask_DeleteBeforePushSucceeds(t *testing.T) {
	t.Parallel()

	task := tpool.NewTask(func(any) any { return nil }, nil)
	require.NoError(t, task.Delete())
}

func TestTask_DeleteWhileInPoolFails(t *testing.T) {
	t.Parallel()

	p, err := tpool.NewPool(1)
	require.NoError(t, err)

	release := make(chan struct{})
	task := tpool.NewTask(func(any) any { <-release; return nil }, nil)
	require.NoError(t, p.Push(task))

	err = task.Delete()
	assert.ErrorIs(t, err, tpool.ErrTaskInPool)

	close(release)
	_, err = task.Join()
	require.NoError(t, err)

	require.NoError(t, task.Delete())
	require.NoError(t, p.Delete())
}

func TestTask_StateTransitions(t *testing.T) {
	t.Parallel()

	task := tpool.NewTask(func(any) any { return nil }, nil)
	assert.Equal(t, tpool.StateCreated, task.State())

	p, err := tpool.NewPool(1)
	require.NoError(t, err)

	require.NoError(t, p.Push(task))
	_, err = task.Join()
	require.NoError(t, err)
	assert.Equal(t, tpool.StateFinished, task.State())
	assert.True(t, task.IsFinished())
	assert.False(t, task.IsRunning())

	require.NoError(t, p.Delete())
}

func TestTask_MultipleJoinersSeeSameResult(t *testing.T) {
	t.Parallel()

	p, err := tpool.NewPool(1)
	require.NoError(t, err)

	task := tpool.NewTask(func(any) any { return 42 }, nil)
	require.NoError(t, p.Push(task))

	const joiners = 5
	results := make(chan any, joiners)
	for i := 0; i < joiners; i++ {
		go func() {
			r, err := task.Join()
			require.NoError(t, err)
			results <- r
		}()
	}
	for i := 0; i < joiners; i++ {
		assert.Equal(t, 42, <-results)
	}

	require.NoError(t, p.Delete())
}
