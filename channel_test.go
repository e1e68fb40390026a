package ke220

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSharedChannelExclusive(t *testing.T) {
	ch := newTestChannel(newFakePort())

	lease, err := ch.Acquire(0)
	require.NoError(t, err)

	_, err = ch.Acquire(10 * time.Millisecond)
	require.Error(t, err)
	require.Equal(t, ErrChannelBusy, errors.Cause(err))

	lease.Release()
	lease.Release()

	again, err := ch.Acquire(10 * time.Millisecond)
	require.NoError(t, err)
	again.Release()
}

func TestSharedChannelWaitsForRelease(t *testing.T) {
	ch := newTestChannel(newFakePort())

	lease, err := ch.Acquire(0)
	require.NoError(t, err)
	go func() {
		time.Sleep(5 * time.Millisecond)
		lease.Release()
	}()

	next, err := ch.Acquire(time.Second)
	require.NoError(t, err)
	next.Release()
}

func TestSharedChannelsAreIndependent(t *testing.T) {
	a := newTestChannel(newFakePort())
	b := newTestChannel(newFakePort())

	la, err := a.Acquire(0)
	require.NoError(t, err)
	defer la.Release()

	lb, err := b.Acquire(10 * time.Millisecond)
	require.NoError(t, err)
	lb.Release()
}

func TestLeaseAccess(t *testing.T) {
	p := newFakePort([]byte{1, 2})
	ch := newTestChannel(p)
	ch.Sleep(time.Millisecond)
	require.Equal(t, 2, ch.Available())

	lease, err := ch.Acquire(0)
	require.NoError(t, err)
	defer lease.Release()

	_, err = lease.Write([]byte{9, 8})
	require.NoError(t, err)
	require.NoError(t, lease.Flush())
	require.Equal(t, 2, lease.Available())
	b, err := lease.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)

	require.Equal(t, []byte{9, 8}, p.writtenBytes())
	require.Equal(t, 1, p.flushes)
}

func TestLeaseReleased(t *testing.T) {
	p := newFakePort([]byte{1})
	ch := newTestChannel(p)
	ch.Sleep(time.Millisecond)

	lease, err := ch.Acquire(0)
	require.NoError(t, err)
	lease.Release()

	_, err = lease.Write([]byte{9})
	require.Equal(t, ErrLeaseReleased, err)
	require.Equal(t, ErrLeaseReleased, lease.Flush())
	require.Zero(t, lease.Available())
	_, err = lease.ReadByte()
	require.Equal(t, ErrLeaseReleased, err)

	// nothing reached the port
	require.Empty(t, p.writtenBytes())
	require.Zero(t, p.flushes)
	require.Equal(t, 1, ch.Available())
}
