package ke220

// EncodeCommand packs the configuration into the register write command
// for registers 00H-07H. Field values are shifted into place as-is, without
// masking.
func EncodeCommand(config *Configuration) [CommandLength]byte {
	return [CommandLength]byte{
		// write 8 registers starting at 00H
		writeRegisterCmd,
		startRegister,
		registerCount,

		// 00H, 01H
		byte(config.OwnAddress >> 8),
		byte(config.OwnAddress & 0xff),

		// 02H
		byte(config.BaudRate)<<5 | byte(config.AirDataRate),

		// 03H
		byte(config.SubpacketSize)<<6 | byte(config.RSSIAmbientNoise)<<5 | byte(config.TransmittingPower),

		// 04H
		config.OwnChannel,

		// 05H
		byte(config.RSSIByte)<<7 | byte(config.TransmissionMethod)<<6 | byte(config.LBT)<<4 | byte(config.WORCycle),

		// 06H, 07H
		byte(config.EncryptionKey >> 8),
		byte(config.EncryptionKey & 0xff),
	}
}
