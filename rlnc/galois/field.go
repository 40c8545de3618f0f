package galois

// Polynomial is the primitive polynomial defining the field:
// x^8 + x^4 + x^3 + x^2 + 1.
const Polynomial = 0x11d

var (
	expTable [512]byte
	logTable [256]byte
)

func init() {
	// Generator 2 cycles through all 255 nonzero elements.
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[byte(x)] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= Polynomial
		}
	}
	// Mirror the exp table so Mul and Div never need a modular reduction
	// of the summed logarithms.
	for i := 255; i < 512; i++ {
		expTable[i] = expTable[i-255]
	}
}

// Add returns a + b in GF(256).
func Add(a, b byte) byte { return a ^ b }

// Sub returns a - b in GF(256). Identical to Add: the field has
// characteristic 2, so every element is its own additive inverse.
func Sub(a, b byte) byte { return a ^ b }

// Mul returns a * b in GF(256).
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Inv returns the multiplicative inverse of a. Inv(0) is undefined;
// callers must guarantee a != 0 (pivot elements are checked before any
// division in the coding layers).
func Inv(a byte) byte {
	return expTable[255-int(logTable[a])]
}

// Div returns a / b in GF(256). Division by zero is undefined and must
// not be reached by callers.
func Div(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return expTable[int(logTable[a])+255-int(logTable[b])]
}

// mulSlow multiplies a and b by carry-less polynomial multiplication
// followed by reduction modulo Polynomial. It is the reference the
// log/exp tables are verified against in tests; production code paths
// use Mul.
func mulSlow(a, b byte) byte {
	var product int
	for i := 0; a>>i > 0; i++ {
		if a&(1<<i) != 0 {
			product ^= int(b) << i
		}
	}

	for i := bitLen(product) - 9; i >= 0; i-- {
		if product&(1<<(i+8)) != 0 {
			product ^= Polynomial << i
		}
	}
	return byte(product)
}

func bitLen(v int) int {
	n := 0
	for v>>n > 0 {
		n++
	}
	return n
}
