package platform

import (
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortForIsStableAndInRange(t *testing.T) {
	port := PortFor("Pomodoro")
	assert.Equal(t, port, PortFor("Pomodoro"))
	assert.GreaterOrEqual(t, port, minPort)
	assert.LessOrEqual(t, port, maxPort)
}

func TestSecondInstanceIsRejected(t *testing.T) {
	appName := fmt.Sprintf("pomodoro-test-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	assert.Contains(t, guard.Address(), "127.0.0.1:")

	_, err = AcquireSingleInstance(appName)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestShowRequestReachesRunningInstance(t *testing.T) {
	appName := fmt.Sprintf("pomodoro-show-%d", time.Now().UnixNano())

	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Release() })

	var shows atomic.Int32
	guard.Serve(func() { shows.Add(1) })
	guard.Serve(func() { t.Error("only the first handler serves") })

	require.NoError(t, RequestShow(appName))
	require.Eventually(t, func() bool { return shows.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// Unknown requests are ignored.
	conn, err := net.Dial("tcp", guard.Address())
	require.NoError(t, err)
	_, err = fmt.Fprintln(conn, "quit")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.NoError(t, RequestShow(appName))
	require.Eventually(t, func() bool { return shows.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestRequestShowWithoutInstance(t *testing.T) {
	appName := fmt.Sprintf("pomodoro-absent-%d", time.Now().UnixNano())
	assert.Error(t, RequestShow(appName))
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	guard.Serve(func() {})
}
