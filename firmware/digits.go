package firmware

// Split returns the decimal digits of n. There is no leading-zero
// suppression: Split(7) is (0, 0, 7).
func Split(n uint8) (hundreds, tens, units uint8) {
	hundreds = n / 100
	rest := n % 100
	tens = rest / 10
	units = rest % 10
	return hundreds, tens, units
}

// segments holds the common-cathode patterns for 0..9.
// Bit 0 is segment a, bit 6 is segment g; the decimal point (bit 7) is unused.
var segments = [10]uint8{
	0b00111111, // 0
	0b00000110, // 1
	0b01011011, // 2
	0b01001111, // 3
	0b01100110, // 4
	0b01101101, // 5
	0b01111101, // 6
	0b00000111, // 7
	0b01111111, // 8
	0b01101111, // 9
}

// Encode returns the 7-segment pattern for digit d. Anything outside 0..9
// shows as 0.
func Encode(d uint8) uint8 {
	if d > 9 {
		return segments[0]
	}
	return segments[d]
}

// Decode maps a pattern produced by Encode back to its digit.
func Decode(pattern uint8) (uint8, bool) {
	for d, p := range segments {
		if p == pattern {
			return uint8(d), true
		}
	}
	return 0, false
}
