package workload

import "github.com/sarchlab/markbench/crc"

// matrix holds two N x N 16-bit operands and a 32-bit result matrix.
type matrix struct {
	n int
	a []int16
	b []int16
	c []int32
}

// newMatrix sizes N so that the three matrices fit in blksize bytes and
// fills A and B from seed.
func newMatrix(blksize uint32, seed int32) *matrix {
	var i, j uint32
	for j < blksize {
		i++
		j = i * i * 2 * 4
	}

	n := 0
	if i > 0 {
		n = int(i - 1)
	}

	m := &matrix{
		n: n,
		a: make([]int16, n*n),
		b: make([]int16, n*n),
		c: make([]int32, n*n),
	}

	if seed == 0 {
		seed = 1
	}

	order := int32(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			seed = (order * seed) % 65536
			val := int16(seed + order)
			m.b[i*n+j] = val
			val = int16(int32(val)+order) & 0xff
			m.a[i*n+j] = val
			order++
		}
	}

	return m
}

func (m *matrix) bench(seed int16, c uint16) uint16 {
	return crc.S16(m.test(seed), c)
}

// test runs the four matrix operations with val and folds the summary of
// each result into a checksum. A is restored before returning.
func (m *matrix) test(val int16) int16 {
	var c uint16
	clipval := int16(0xf000 | uint16(val))

	m.addConst(val)
	m.mulConst(val)
	c = crc.S16(m.sum(clipval), c)
	m.mulVect()
	c = crc.S16(m.sum(clipval), c)
	m.mulMatrix()
	c = crc.S16(m.sum(clipval), c)
	m.mulMatrixBitExtract()
	c = crc.S16(m.sum(clipval), c)

	m.addConst(-val)

	return int16(c)
}

// sum walks C accumulating values. Every time the running total exceeds
// clipval it scores 10 and restarts, otherwise it scores increases.
func (m *matrix) sum(clipval int16) int16 {
	var tmp, prev int32
	var ret int16

	for _, cur := range m.c {
		tmp += cur
		if tmp > int32(clipval) {
			ret += 10
			tmp = 0
		} else if cur > prev {
			ret++
		}
		prev = cur
	}

	return ret
}

func (m *matrix) addConst(val int16) {
	for i := range m.a {
		m.a[i] += val
	}
}

func (m *matrix) mulConst(val int16) {
	for i := range m.a {
		m.c[i] = int32(m.a[i]) * int32(val)
	}
}

// mulVect multiplies A by the first row of B, writing only the first N
// entries of C.
func (m *matrix) mulVect() {
	n := m.n
	for i := 0; i < n; i++ {
		m.c[i] = 0
		for j := 0; j < n; j++ {
			m.c[i] += int32(m.a[i*n+j]) * int32(m.b[j])
		}
	}
}

func (m *matrix) mulMatrix() {
	n := m.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var acc int32
			for k := 0; k < n; k++ {
				acc += int32(m.a[i*n+k]) * int32(m.b[k*n+j])
			}
			m.c[i*n+j] = acc
		}
	}
}

// mulMatrixBitExtract accumulates the product of two bit fields of every
// partial product instead of the product itself.
func (m *matrix) mulMatrixBitExtract() {
	n := m.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var acc int32
			for k := 0; k < n; k++ {
				tmp := int32(m.a[i*n+k]) * int32(m.b[k*n+j])
				acc += int32(bitExtract(tmp, 2, 4) * bitExtract(tmp, 5, 7))
			}
			m.c[i*n+j] = acc
		}
	}
}

func bitExtract(x int32, from, width uint) uint32 {
	return uint32(x>>from) & ^(uint32(0xffffffff) << width)
}
