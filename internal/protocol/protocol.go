// Package protocol builds the 9-byte command packets understood by Lotus
// Lamp RGB LED strips (MELK-OA10 and similar models speaking the Lotus Lamp X
// app protocol).
//
// Every packet has the shape
//
//	[0x7E, length, command, p0, p1, p2, p3, pad, 0xEF]
//
// Encoding never fails: out-of-range parameters are clamped to the range the
// lamp accepts.
package protocol

import "time"

// Packet is a single immutable lamp command. One packet per write, no
// batching.
type Packet [9]byte

const (
	packetHead = 0x7E
	packetTail = 0xEF

	cmdBrightness = 0x01
	cmdSpeed      = 0x02
	cmdAnimation  = 0x03
	cmdPower      = 0x04
	cmdColor      = 0x05
	cmdTimer      = 0x82
	cmdTimeSync   = 0x83

	// Timer slot selectors (byte 6 of a timer packet).
	timerOn  = 0x00
	timerOff = 0x01

	// Timer mask: bit 7 set means the slot is armed (one-shot). The repeat
	// weekday bits are left alone; their assignment is unconfirmed against
	// real hardware.
	timerEnabled  = 0x80
	timerDisabled = 0x00
)

// Bytes returns the packet as a slice suitable for a characteristic write.
func (p Packet) Bytes() []byte {
	return p[:]
}

// SetColor encodes a static RGB color. Channels are clamped to [0, 255].
func SetColor(r, g, b int) Packet {
	return Packet{packetHead, 0x07, cmdColor, 0x03, clamp(r, 0, 255), clamp(g, 0, 255), clamp(b, 0, 255), 0x10, packetTail}
}

// SetBrightness encodes a brightness level, clamped to [0, 100].
func SetBrightness(level int) Packet {
	return Packet{packetHead, 0x07, cmdBrightness, clamp(level, 0, 100), 0xFF, 0xFF, 0xFF, 0x00, packetTail}
}

// SetSpeed encodes an animation speed, clamped to [0, 100]. Speed only
// affects running animations; a static color ignores it.
func SetSpeed(level int) Packet {
	return Packet{packetHead, 0x04, cmdSpeed, clamp(level, 0, 100), 0xFF, 0xFF, 0xFF, 0x00, packetTail}
}

// SetAnimation encodes an animation mode selection, clamped to [1, 233].
func SetAnimation(mode int) Packet {
	return Packet{packetHead, 0x07, cmdAnimation, clamp(mode, 1, 233), 0xFF, 0xFF, 0xFF, 0x00, packetTail}
}

// PowerOn encodes the power-on command.
func PowerOn() Packet {
	return Packet{packetHead, 0x07, cmdPower, 0x01, 0x00, 0xFF, 0xFF, 0x00, packetTail}
}

// PowerOff encodes the power-off command.
func PowerOff() Packet {
	return Packet{packetHead, 0x07, cmdPower, 0x00, 0x00, 0xFF, 0xFF, 0x00, packetTail}
}

// SyncTime encodes the lamp's wall-clock sync. The lamp has no RTC, so timers
// only fire correctly after a sync. The weekday byte is Monday=1 through
// Sunday=7, converted from Go's Sunday-origin time.Weekday.
func SyncTime(now time.Time) Packet {
	return Packet{
		packetHead, 0x06, cmdTimeSync,
		byte(now.Hour()), byte(now.Minute()), byte(now.Second()),
		isoWeekday(now.Weekday()),
		0x00, packetTail,
	}
}

// SetTimerOn arms the turn-on timer slot. Hour is clamped to [0, 23], minute
// to [0, 59]. The slot is armed as one-shot.
func SetTimerOn(hour, minute int) Packet {
	return timerPacket(hour, minute, timerOn, timerEnabled)
}

// SetTimerOff arms the turn-off timer slot with the same clamping as
// SetTimerOn.
func SetTimerOff(hour, minute int) Packet {
	return timerPacket(hour, minute, timerOff, timerEnabled)
}

// DisableTimerOn clears the turn-on timer slot.
func DisableTimerOn() Packet {
	return timerPacket(0, 0, timerOn, timerDisabled)
}

// DisableTimerOff clears the turn-off timer slot.
func DisableTimerOff() Packet {
	return timerPacket(0, 0, timerOff, timerDisabled)
}

func timerPacket(hour, minute int, slot, mask byte) Packet {
	return Packet{
		packetHead, 0x07, cmdTimer,
		clamp(hour, 0, 23), clamp(minute, 0, 59),
		0x00, slot, mask, packetTail,
	}
}

// isoWeekday maps Go's Sunday=0 weekday to the lamp's Monday=1..Sunday=7
// numbering.
func isoWeekday(d time.Weekday) byte {
	return byte((int(d)+6)%7 + 1)
}

func clamp(v, lo, hi int) byte {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return byte(v)
}
