// Package crc implements the 16-bit CRC accumulator used by the benchmark.
//
// The accumulator folds values one byte at a time, least significant bit
// first, with the reflected polynomial 0xA001 (applied as 0x4002 before the
// shift). Every checksum in the benchmark, from the per-algorithm results to
// the seed fingerprint, is built from these four helpers.
package crc

// U8 folds one byte into crc.
func U8(data uint8, crc uint16) uint16 {
	for i := 0; i < 8; i++ {
		x16 := (data & 1) ^ uint8(crc&1)
		data >>= 1

		if x16 == 1 {
			crc ^= 0x4002
			crc >>= 1
			crc |= 0x8000
		} else {
			crc >>= 1
			crc &= 0x7fff
		}
	}

	return crc
}

// U16 folds a 16-bit value into crc, low byte first.
func U16(v uint16, crc uint16) uint16 {
	crc = U8(uint8(v), crc)
	crc = U8(uint8(v>>8), crc)
	return crc
}

// S16 folds a signed 16-bit value into crc.
func S16(v int16, crc uint16) uint16 {
	return U16(uint16(v), crc)
}

// U32 folds a 32-bit value into crc, low half first.
func U32(v uint32, crc uint16) uint16 {
	crc = S16(int16(v), crc)
	crc = S16(int16(v>>16), crc)
	return crc
}
