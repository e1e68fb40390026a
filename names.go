package ke220

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var baudRates = map[BaudRate]int{
	Baud1200:   1200,
	Baud2400:   2400,
	Baud4800:   4800,
	Baud9600:   9600,
	Baud19200:  19200,
	Baud38400:  38400,
	Baud57600:  57600,
	Baud115200: 115200,
}

var airDataRates = map[AirDataRate]string{
	BW125KSF5:  "BW125K_SF5",
	BW125KSF6:  "BW125K_SF6",
	BW125KSF7:  "BW125K_SF7",
	BW125KSF8:  "BW125K_SF8",
	BW125KSF9:  "BW125K_SF9",
	BW250KSF5:  "BW250K_SF5",
	BW250KSF6:  "BW250K_SF6",
	BW250KSF7:  "BW250K_SF7",
	BW250KSF8:  "BW250K_SF8",
	BW250KSF9:  "BW250K_SF9",
	BW250KSF10: "BW250K_SF10",
	BW500KSF5:  "BW500K_SF5",
	BW500KSF6:  "BW500K_SF6",
	BW500KSF7:  "BW500K_SF7",
	BW500KSF8:  "BW500K_SF8",
	BW500KSF9:  "BW500K_SF9",
	BW500KSF10: "BW500K_SF10",
	BW500KSF11: "BW500K_SF11",
}

var transmittingPowers = map[TransmittingPower]int{
	TxPower13dBm: 13,
	TxPower12dBm: 12,
	TxPower7dBm:  7,
	TxPower0dBm:  0,
}

var worCycles = map[WORCycle]int{
	WOR500ms:  500,
	WOR1000ms: 1000,
	WOR1500ms: 1500,
	WOR2000ms: 2000,
}

// BPS returns the UART speed in bits per second, 0 if unknown.
func (b BaudRate) BPS() int {
	return baudRates[b]
}

func (b BaudRate) String() string {
	if bps, ok := baudRates[b]; ok {
		return fmt.Sprintf("%dbps", bps)
	}
	return fmt.Sprintf("BaudRate(%d)", uint8(b))
}

// ParseBaudRate maps a speed in bps to its register value.
func ParseBaudRate(bps int) (BaudRate, error) {
	for k, v := range baudRates {
		if v == bps {
			return k, nil
		}
	}
	return 0, errors.Errorf("unsupported baud rate %d", bps)
}

func (a AirDataRate) String() string {
	if name, ok := airDataRates[a]; ok {
		return name
	}
	return fmt.Sprintf("AirDataRate(%#02x)", uint8(a))
}

// ParseAirDataRate maps a name like "BW125K_SF9" to its register value.
func ParseAirDataRate(name string) (AirDataRate, error) {
	for k, v := range airDataRates {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown air data rate %q", name)
}

func (s SubpacketSize) String() string {
	switch s {
	case Subpacket200, Subpacket128, Subpacket64, Subpacket32:
		return fmt.Sprintf("%d bytes", MaxPayloadSize(s))
	}
	return fmt.Sprintf("SubpacketSize(%d)", uint8(s))
}

// ParseSubpacketSize maps a size in bytes to its register value.
func ParseSubpacketSize(bytes int) (SubpacketSize, error) {
	switch bytes {
	case 200:
		return Subpacket200, nil
	case 128:
		return Subpacket128, nil
	case 64:
		return Subpacket64, nil
	case 32:
		return Subpacket32, nil
	}
	return 0, errors.Errorf("unsupported subpacket size %d", bytes)
}

func (p TransmittingPower) String() string {
	if dbm, ok := transmittingPowers[p]; ok {
		return fmt.Sprintf("%ddBm", dbm)
	}
	return fmt.Sprintf("TransmittingPower(%d)", uint8(p))
}

// ParseTransmittingPower maps an output power in dBm to its register value.
func ParseTransmittingPower(dbm int) (TransmittingPower, error) {
	for k, v := range transmittingPowers {
		if v == dbm {
			return k, nil
		}
	}
	return 0, errors.Errorf("unsupported transmitting power %ddBm", dbm)
}

func (m TransmissionMethod) String() string {
	switch m {
	case TransmissionTransparent:
		return "transparent"
	case TransmissionP2P:
		return "p2p"
	}
	return fmt.Sprintf("TransmissionMethod(%d)", uint8(m))
}

// ParseTransmissionMethod accepts "transparent" or "p2p".
func ParseTransmissionMethod(name string) (TransmissionMethod, error) {
	switch strings.ToLower(name) {
	case "transparent":
		return TransmissionTransparent, nil
	case "p2p":
		return TransmissionP2P, nil
	}
	return 0, errors.Errorf("unknown transmission method %q", name)
}

func (w WORCycle) String() string {
	if ms, ok := worCycles[w]; ok {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("WORCycle(%d)", uint8(w))
}

// ParseWORCycle maps a wake on radio interval in milliseconds to its register value.
func ParseWORCycle(ms int) (WORCycle, error) {
	for k, v := range worCycles {
		if v == ms {
			return k, nil
		}
	}
	return 0, errors.Errorf("unsupported wor cycle %dms", ms)
}

// FlagFrom converts a bool to a register flag.
func FlagFrom(b bool) Flag {
	if b {
		return Enabled
	}
	return Disabled
}

func (f Flag) String() string {
	if f == Disabled {
		return "disabled"
	}
	return "enabled"
}
