package ke220

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNames(t *testing.T) {
	b, err := ParseBaudRate(115200)
	require.NoError(t, err)
	require.Equal(t, Baud115200, b)
	require.Equal(t, 115200, b.BPS())
	require.Equal(t, "115200bps", b.String())

	a, err := ParseAirDataRate("bw125k_sf9")
	require.NoError(t, err)
	require.Equal(t, BW125KSF9, a)
	require.Equal(t, "BW125K_SF9", a.String())

	s, err := ParseSubpacketSize(64)
	require.NoError(t, err)
	require.Equal(t, Subpacket64, s)
	require.Equal(t, "64 bytes", s.String())

	p, err := ParseTransmittingPower(7)
	require.NoError(t, err)
	require.Equal(t, TxPower7dBm, p)
	require.Equal(t, "7dBm", p.String())

	m, err := ParseTransmissionMethod("P2P")
	require.NoError(t, err)
	require.Equal(t, TransmissionP2P, m)

	w, err := ParseWORCycle(1500)
	require.NoError(t, err)
	require.Equal(t, WOR1500ms, w)
	require.Equal(t, "1500ms", w.String())

	require.Equal(t, Enabled, FlagFrom(true))
	require.Equal(t, "disabled", FlagFrom(false).String())
}

func TestParseNamesUnknown(t *testing.T) {
	_, err := ParseBaudRate(300)
	require.EqualError(t, err, "unsupported baud rate 300")
	_, err = ParseAirDataRate("BW125K_SF12")
	require.Error(t, err)
	_, err = ParseSubpacketSize(100)
	require.Error(t, err)
	_, err = ParseTransmittingPower(22)
	require.Error(t, err)
	_, err = ParseTransmissionMethod("broadcast")
	require.Error(t, err)
	_, err = ParseWORCycle(4000)
	require.Error(t, err)

	require.Equal(t, "BaudRate(9)", BaudRate(9).String())
	require.Equal(t, "AirDataRate(0x1f)", AirDataRate(0x1f).String())
}
