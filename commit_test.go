package ke220

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestApplyConfig(t *testing.T) {
	testCases := []struct {
		name    string
		channel uint8
		echo    [][]byte
		err     error
	}{
		{"echo of same length", 0, [][]byte{seq(11)}, nil},
		{"echo content is not compared", 30, [][]byte{make([]byte, CommandLength)}, nil},
		{"nine byte echo", 5, [][]byte{seq(9)}, ErrEchoMismatch},
		{"long echo", 5, [][]byte{seq(CommandLength + 1)}, ErrEchoMismatch},
		{"no echo", 5, nil, ErrEchoMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newFakePort(tc.echo...)
			config := DefaultConfiguration()
			config.OwnChannel = tc.channel

			err := ApplyConfig(newTestChannel(p), &config)
			if tc.err == nil {
				require.NoError(t, err)
			} else {
				require.Equal(t, tc.err, errors.Cause(err))
			}

			cmd := EncodeCommand(&config)
			require.Len(t, p.writtenBytes(), 11)
			require.Equal(t, cmd[:], p.writtenBytes())
			require.Equal(t, 1, p.flushes)
			require.Equal(t, []time.Duration{SettleDelay}, p.sleepLog())
			require.Zero(t, p.Available())
		})
	}
}

func TestApplyConfigInvalidChannel(t *testing.T) {
	for _, channel := range []uint8{31, 100, 255} {
		p := newFakePort(seq(CommandLength))
		config := DefaultConfiguration()
		config.OwnChannel = channel

		err := ApplyConfig(newTestChannel(p), &config)
		require.Equal(t, ErrInvalidConfig, errors.Cause(err))
		require.Empty(t, p.writtenBytes())
		require.Empty(t, p.sleepLog())
	}
}

func TestApplyConfigBusy(t *testing.T) {
	p := newFakePort(seq(CommandLength))
	ch := newTestChannel(p)
	ch.AcquireTimeout = 10 * time.Millisecond

	lease, err := ch.Acquire(0)
	require.NoError(t, err)
	defer lease.Release()

	config := DefaultConfiguration()
	err = ApplyConfig(ch, &config)
	require.Equal(t, ErrChannelBusy, errors.Cause(err))
	require.Empty(t, p.writtenBytes())
}
