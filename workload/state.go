package workload

import "github.com/sarchlab/markbench/crc"

type coreState int

const (
	stateStart coreState = iota
	stateInvalid
	stateS1
	stateS2
	stateInt
	stateFloat
	stateExponent
	stateScientific
	numStates
)

var (
	intPatterns   = [4]string{"5012", "1234", "-874", "+122"}
	floatPatterns = [4]string{"35.54400", ".1234500", "-110.700", "+0.64400"}
	sciPatterns   = [4]string{"5.500e+3", "-.123e-2", "-87e+832", "+0.6e-12"}
	errPatterns   = [4]string{"T0.3e-1F", "-T.T++Tq", "1T3.4e4z", "34.0e-T^"}
)

// initState fills p with comma-separated numbers chosen by seed and pads the
// rest with zeros.
func initState(p []byte, seed int16) {
	if len(p) == 0 {
		return
	}

	size := uint32(len(p)) - 1

	var total, next uint32
	var buf string
	for total+next+1 < size {
		if next > 0 {
			copy(p[total:total+next], buf[:next])
			p[total+next] = ','
			total += next + 1
		}

		seed++
		switch seed & 0x7 {
		case 0, 1, 2:
			buf = intPatterns[(seed>>3)&0x3]
			next = 4
		case 3, 4:
			buf = floatPatterns[(seed>>3)&0x3]
			next = 8
		case 5, 6:
			buf = sciPatterns[(seed>>3)&0x3]
			next = 8
		default:
			buf = errPatterns[(seed>>3)&0x3]
			next = 8
		}
	}

	for ; total < uint32(len(p)); total++ {
		p[total] = 0
	}
}

// byteAt reads p[i], treating everything past the region as a terminator.
func byteAt(p []byte, i int) byte {
	if i >= len(p) {
		return 0
	}
	return p[i]
}

// benchState scans the input, corrupts every step-th byte with seed1, scans
// again and undoes the corruption with seed2. The final states and the
// transition counts of both scans are folded into the checksum.
func benchState(p []byte, seed1, seed2, step int16, c uint16) uint16 {
	var finalCounts, trackCounts [numStates]uint32

	pos := 0
	for byteAt(p, pos) != 0 {
		var s coreState
		s, pos = stateTransition(p, pos, &trackCounts)
		finalCounts[s]++
	}

	for pos = 0; pos < len(p); pos += int(step) {
		if p[pos] != ',' {
			p[pos] ^= uint8(seed1)
		}
	}

	pos = 0
	for byteAt(p, pos) != 0 {
		var s coreState
		s, pos = stateTransition(p, pos, &trackCounts)
		finalCounts[s]++
	}

	for pos = 0; pos < len(p); pos += int(step) {
		if p[pos] != ',' {
			p[pos] ^= uint8(seed2)
		}
	}

	for i := range finalCounts {
		c = crc.U32(finalCounts[i], c)
		c = crc.U32(trackCounts[i], c)
	}

	return c
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// stateTransition classifies the token starting at pos as an integer,
// float, scientific number or invalid input. It returns the final state and
// the position after the token's comma, or where scanning stopped.
func stateTransition(p []byte, pos int, counts *[numStates]uint32) (coreState, int) {
	state := stateStart

	for ; byteAt(p, pos) != 0 && state != stateInvalid; pos++ {
		c := p[pos]
		if c == ',' {
			pos++
			break
		}

		switch state {
		case stateStart:
			switch {
			case isDigit(c):
				state = stateInt
			case c == '+' || c == '-':
				state = stateS1
			case c == '.':
				state = stateFloat
			default:
				state = stateInvalid
				counts[stateInvalid]++
			}
			counts[stateStart]++
		case stateS1:
			switch {
			case isDigit(c):
				state = stateInt
			case c == '.':
				state = stateFloat
			default:
				state = stateInvalid
			}
			counts[stateS1]++
		case stateInt:
			if c == '.' {
				state = stateFloat
				counts[stateInt]++
			} else if !isDigit(c) {
				state = stateInvalid
				counts[stateInt]++
			}
		case stateFloat:
			if c == 'E' || c == 'e' {
				state = stateS2
				counts[stateFloat]++
			} else if !isDigit(c) {
				state = stateInvalid
				counts[stateFloat]++
			}
		case stateS2:
			if c == '+' || c == '-' {
				state = stateExponent
			} else {
				state = stateInvalid
			}
			counts[stateS2]++
		case stateExponent:
			if isDigit(c) {
				state = stateScientific
			} else {
				state = stateInvalid
			}
			counts[stateExponent]++
		case stateScientific:
			if !isDigit(c) {
				state = stateInvalid
				counts[stateInvalid]++
			}
		}
	}

	return state, pos
}
