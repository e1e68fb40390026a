package ke220

// data schema and type definitions for the radio

import "time"

//
// register field types
//

type BaudRate uint8           // UART speed, 3 bits
type AirDataRate uint8        // spreading factor and bandwidth, 5 bits
type SubpacketSize uint8      // maximum payload per radio burst, 2 bits
type TransmittingPower uint8  // output power, 2 bits
type TransmissionMethod uint8 // transparent or fixed point-to-point, 1 bit
type WORCycle uint8           // wake on radio interval, 3 bits
type Flag uint8               // enable/disable bit

//
// radio setup information
//

// Configuration is the complete register set of the module plus the local addressing used by SendFrame.
// Fields are written as-is, only OwnChannel is checked.
type Configuration struct {
	OwnAddress         uint16             // ADDH/ADDL,	0-65535,	ident of the transceiver
	BaudRate           BaudRate           // REG0 7-5,	UART speed in normal mode
	AirDataRate        AirDataRate        // REG0 4-0,	SF/BW combination
	SubpacketSize      SubpacketSize      // REG1 7-6,	200/128/64/32 bytes
	RSSIAmbientNoise   Flag               // REG1 5,	ambient noise RSSI readout
	TransmittingPower  TransmittingPower  // REG1 1-0,	13/12/7/0 dBm
	OwnChannel         uint8              // REG2,		0-30
	RSSIByte           Flag               // REG3 7,	append RSSI byte to received frames
	TransmissionMethod TransmissionMethod // REG3 6,	transparent or p2p
	LBT                Flag               // REG3 4,	listen before talk
	WORCycle           WORCycle           // REG3 2-0,	wake on radio interval
	EncryptionKey      uint16             // CRYPT_H/CRYPT_L

	// local config for the send API, not written to the module
	TargetAddress uint16
	TargetChannel uint8
}

// DefaultConfiguration returns the factory settings used by the M5Stack unit.
func DefaultConfiguration() Configuration {
	return Configuration{
		OwnAddress:         0x0000,
		BaudRate:           Baud9600,
		AirDataRate:        BW125KSF9,
		SubpacketSize:      Subpacket200,
		RSSIAmbientNoise:   Enabled,
		TransmittingPower:  TxPower12dBm,
		OwnChannel:         0,
		RSSIByte:           Enabled,
		TransmissionMethod: TransmissionP2P,
		LBT:                Disabled,
		WORCycle:           WOR2000ms,
		EncryptionKey:      0x0000,
		TargetAddress:      0x0000,
		TargetChannel:      0,
	}
}

//
// Response Structures
//

// ReceivedFrame is filled in place by ReceiveFrame.
type ReceivedFrame struct {
	Data   [MaxFrameSize + 1]byte // payload followed by the RSSI byte
	Length int                    // payload length, RSSI byte excluded
	RSSI   int                    // RSSI(dBm), last byte - 256
}

// Payload returns the received payload.
func (f *ReceivedFrame) Payload() []byte {
	return f.Data[:f.Length]
}

func (f *ReceivedFrame) reset() {
	*f = ReceivedFrame{}
}

// Message is a received frame as delivered by the listener.
type Message struct {
	Payload    []byte
	RSSI       int
	ReceivedAt time.Time
}

//
// Error structures
//

type ErrorEvent struct {
	Code *int  // module error code, always nil for the E220 which has none
	Err  error // Go error
}
