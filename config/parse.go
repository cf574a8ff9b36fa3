package config

// ParseValue parses a numeric run argument. It accepts an optional leading
// minus, a 0x prefix for hexadecimal digits and a trailing K (x1024) or M
// (x1024*1024) multiplier. Parsing stops at the first character that does
// not fit, so malformed input yields the value of its valid prefix.
func ParseValue(s string) int32 {
	var retval int32
	neg := int32(1)

	if len(s) > 0 && s[0] == '-' {
		neg = -1
		s = s[1:]
	}

	hex := len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
	if hex {
		s = s[2:]
	}

	i := 0
	for ; i < len(s); i++ {
		digit, ok := digitValue(s[i], hex)
		if !ok {
			break
		}
		if hex {
			retval = retval*16 + digit
		} else {
			retval = retval*10 + digit
		}
	}

	if i < len(s) {
		switch s[i] {
		case 'K':
			retval *= 1024
		case 'M':
			retval *= 1024 * 1024
		}
	}

	return retval * neg
}

func digitValue(c byte, hex bool) (int32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int32(c - '0'), true
	case hex && c >= 'a' && c <= 'f':
		return int32(c-'a') + 10, true
	case hex && c >= 'A' && c <= 'F':
		return int32(c-'A') + 10, true
	default:
		return 0, false
	}
}
