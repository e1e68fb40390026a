package ke220

import "time"

// UART baud rate constants, REG0 bits 7-5
const (
	Baud1200   BaudRate = 0b000
	Baud2400   BaudRate = 0b001
	Baud4800   BaudRate = 0b010
	Baud9600   BaudRate = 0b011 // default
	Baud19200  BaudRate = 0b100
	Baud38400  BaudRate = 0b101
	Baud57600  BaudRate = 0b110
	Baud115200 BaudRate = 0b111
)

// air data rate constants, REG0 bits 4-0
const (
	// BW125
	BW125KSF5 AirDataRate = 0b00000 // 15,625bps
	BW125KSF6 AirDataRate = 0b00100 // 9,375bps
	BW125KSF7 AirDataRate = 0b01000 // 5,469bps
	BW125KSF8 AirDataRate = 0b01100 // 3,125bps
	BW125KSF9 AirDataRate = 0b10000 // 1,758bps
	// BW250
	BW250KSF5  AirDataRate = 0b00001 // 31,250bps
	BW250KSF6  AirDataRate = 0b00101 // 18,750bps
	BW250KSF7  AirDataRate = 0b01001 // 10,938bps
	BW250KSF8  AirDataRate = 0b01101 // 6,250bps
	BW250KSF9  AirDataRate = 0b10001 // 3,516bps
	BW250KSF10 AirDataRate = 0b10101 // 1,953bps
	// BW500
	BW500KSF5  AirDataRate = 0b00010 // 62,500bps
	BW500KSF6  AirDataRate = 0b00110 // 37,500bps
	BW500KSF7  AirDataRate = 0b01010 // 21,875bps
	BW500KSF8  AirDataRate = 0b01110 // 12,500bps
	BW500KSF9  AirDataRate = 0b10010 // 7,031bps
	BW500KSF10 AirDataRate = 0b10110 // 3,906bps
	BW500KSF11 AirDataRate = 0b11010 // 2,148bps
)

// subpacket size constants, REG1 bits 7-6
const (
	Subpacket200 SubpacketSize = 0b00
	Subpacket128 SubpacketSize = 0b01
	Subpacket64  SubpacketSize = 0b10
	Subpacket32  SubpacketSize = 0b11
)

// transmitting power constants, REG1 bits 1-0
const (
	TxPower13dBm TransmittingPower = 0b00
	TxPower12dBm TransmittingPower = 0b01
	TxPower7dBm  TransmittingPower = 0b10
	TxPower0dBm  TransmittingPower = 0b11
)

// transmission method constants, REG3 bit 6
const (
	TransmissionTransparent TransmissionMethod = 0b0
	TransmissionP2P         TransmissionMethod = 0b1
)

// wake on radio cycle constants, REG3 bits 2-0
const (
	WOR500ms  WORCycle = 0b000
	WOR1000ms WORCycle = 0b001
	WOR1500ms WORCycle = 0b010
	WOR2000ms WORCycle = 0b011
)

// single bit register flags
const (
	Disabled Flag = 0b0
	Enabled  Flag = 0b1
)

// wire constants
const (
	CommandLength    = 11  // register write command: 3 byte header + 8 registers
	HeaderLength     = 3   // target address + target channel
	MaxFrameSize     = 200 // inbound bytes accepted before overflow, RSSI byte included
	MaxChannel       = 30
	ConfigModeBaud   = 9600 // UART speed while the module is in configuration mode
	writeRegisterCmd = 0xc0
	startRegister    = 0x00
	registerCount    = 0x08
)

// timing constants
const (
	DefaultAcquireTimeout = 100 * time.Millisecond
	SettleDelay           = 100 * time.Millisecond // wait for the module to answer a command or transmit
	PollDelay             = 100 * time.Millisecond // idle poll while waiting for a frame
	FrameSettleDelay      = 10 * time.Millisecond  // quiet period that ends a frame
)
