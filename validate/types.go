package validate

import "unsafe"

// CheckDataTypes verifies the widths of the integer types the kernels rely
// on. It returns the number of failures and a message per failure.
func CheckDataTypes() (int, []string) {
	var msgs []string

	check := func(ok bool, msg string) {
		if !ok {
			msgs = append(msgs, msg)
		}
	}

	check(unsafe.Sizeof(uint8(0)) == 1, "ERROR: uint8 is not an 8b datatype!")
	check(unsafe.Sizeof(uint16(0)) == 2, "ERROR: uint16 is not a 16b datatype!")
	check(unsafe.Sizeof(int16(0)) == 2, "ERROR: int16 is not a 16b datatype!")
	check(unsafe.Sizeof(int32(0)) == 4, "ERROR: int32 is not a 32b datatype!")
	check(unsafe.Sizeof(uint32(0)) == 4, "ERROR: uint32 is not a 32b datatype!")
	check(unsafe.Sizeof(uintptr(0)) == unsafe.Sizeof(unsafe.Pointer(nil)),
		"ERROR: uintptr is not a datatype that holds an int pointer!")
	check(unsafe.Sizeof(uintptr(0)) >= 4, "ERROR: uintptr must be at least 32b!")

	return len(msgs), msgs
}
