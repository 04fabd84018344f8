package mapper

// Fixture ROM images shared across mapper tests, each filled with a ramp
// of every offset's low byte, so a read can be checked against its own
// offset modulo 256.
var (
	testPRGROM16KB = rampBytes(16 * 1024)
	testPRGROM32KB = rampBytes(32 * 1024)
	testCHRROM8KB  = rampBytes(8 * 1024)
	testCHRROM32KB = rampBytes(32 * 1024)
)

func rampBytes(n int) []uint8 {
	b := make([]uint8, n)
	for i := range b {
		b[i] = uint8(i & 0xFF)
	}
	return b
}
