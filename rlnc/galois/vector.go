package galois

// MulAdd accumulates c * src into dst element-wise: dst[i] += c * src[i]
// over the field. With c == 0 it is a no-op, with c == 1 a plain XOR.
// dst and src must have equal length.
func MulAdd(dst, src []byte, c byte) {
	switch c {
	case 0:
		return
	case 1:
		for i := range dst {
			dst[i] ^= src[i]
		}
	default:
		logC := int(logTable[c])
		for i := range dst {
			if src[i] != 0 {
				dst[i] ^= expTable[logC+int(logTable[src[i]])]
			}
		}
	}
}

// Scale multiplies every element of v by c in place.
func Scale(v []byte, c byte) {
	switch c {
	case 0:
		for i := range v {
			v[i] = 0
		}
	case 1:
		return
	default:
		logC := int(logTable[c])
		for i := range v {
			if v[i] != 0 {
				v[i] = expTable[logC+int(logTable[v[i]])]
			}
		}
	}
}
