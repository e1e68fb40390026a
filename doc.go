// Package ke220 drives an E220-900T22S(JP) LoRa module attached to a UART. It writes the
// module registers, sends frames to a target address and channel, and receives frames
// delimited by a quiet serial line. All port access goes through a SharedChannel so that
// a background listener and senders can share one module.
package ke220
