package ke220

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type pipeStream struct {
	r       *io.PipeReader
	w       bytes.Buffer
	drained int
}

func (s *pipeStream) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *pipeStream) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *pipeStream) Close() error                { return s.r.Close() }
func (s *pipeStream) Drain() error {
	s.drained++
	return nil
}

func TestStreamTransport(t *testing.T) {
	r, w := io.Pipe()
	stream := &pipeStream{r: r}
	tr := NewStreamTransport(stream)

	require.Zero(t, tr.Available())
	_, err := tr.ReadByte()
	require.Equal(t, io.EOF, err)

	_, err = w.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tr.Available() == 3 }, time.Second, time.Millisecond)

	for _, want := range []byte{1, 2, 3} {
		b, err := tr.ReadByte()
		require.NoError(t, err)
		require.Equal(t, want, b)
	}
	require.Zero(t, tr.Available())

	_, err = tr.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, tr.Flush())
	require.Equal(t, "abc", stream.w.String())
	require.Equal(t, 1, stream.drained)

	w.Close()
	require.Eventually(t, func() bool {
		_, err := tr.ReadByte()
		return err == io.EOF
	}, time.Second, time.Millisecond)
	require.NoError(t, tr.Close())
}

func TestStreamTransportReadError(t *testing.T) {
	r, w := io.Pipe()
	tr := NewStreamTransport(&pipeStream{r: r})

	_, err := w.Write([]byte{0x42})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tr.Available() == 1 }, time.Second, time.Millisecond)
	w.CloseWithError(io.ErrUnexpectedEOF)

	// buffered bytes are still delivered before the error
	b, err := tr.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x42), b)

	require.Eventually(t, func() bool {
		_, err := tr.ReadByte()
		return err == io.ErrUnexpectedEOF
	}, time.Second, time.Millisecond)
}
