package hexutil

// ReadUint reconstructs an unsigned little-endian integer from b: the first
// byte is the least significant. Fields longer than eight bytes overflow.
func ReadUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
