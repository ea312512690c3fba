// Package murmur implements the legacy members of Austin Appleby's
// MurmurHash family: MurmurHash1, MurmurHash2, MurmurHash2A, MurmurHash64A,
// MurmurHash64B and the x86 flavour of MurmurHash3 128. Blocks are read
// little-endian, matching the reference implementation on x86.
package murmur

import (
	"encoding/binary"
	"math/bits"
)

// Sum1 returns the MurmurHash1 digest of data.
func Sum1(data []byte, seed uint32) uint32 {
	const (
		m = 0xc6a4a793
		r = 16
	)

	h := seed ^ (uint32(len(data)) * m)

	for len(data) >= 4 {
		h += binary.LittleEndian.Uint32(data)
		h *= m
		h ^= h >> r
		data = data[4:]
	}

	switch len(data) {
	case 3:
		h += uint32(data[2]) << 16
		fallthrough
	case 2:
		h += uint32(data[1]) << 8
		fallthrough
	case 1:
		h += uint32(data[0])
		h *= m
		h ^= h >> r
	}

	h *= m
	h ^= h >> 10
	h *= m
	h ^= h >> 17

	return h
}

// Sum2 returns the MurmurHash2 digest of data.
func Sum2(data []byte, seed uint32) uint32 {
	const (
		m = 0x5bd1e995
		r = 24
	)

	h := seed ^ uint32(len(data))

	for len(data) >= 4 {
		k := binary.LittleEndian.Uint32(data)
		k *= m
		k ^= k >> r
		k *= m

		h *= m
		h ^= k
		data = data[4:]
	}

	switch len(data) {
	case 3:
		h ^= uint32(data[2]) << 16
		fallthrough
	case 2:
		h ^= uint32(data[1]) << 8
		fallthrough
	case 1:
		h ^= uint32(data[0])
		h *= m
	}

	h ^= h >> 13
	h *= m
	h ^= h >> 15

	return h
}

// Sum2A returns the MurmurHash2A digest of data. It is the incremental
// (Merkle-Damgard) variant of MurmurHash2 and mixes the length in last.
func Sum2A(data []byte, seed uint32) uint32 {
	const (
		m = 0x5bd1e995
		r = 24
	)

	mix := func(h, k uint32) uint32 {
		k *= m
		k ^= k >> r
		k *= m
		h *= m
		return h ^ k
	}

	l := uint32(len(data))
	h := seed

	for len(data) >= 4 {
		h = mix(h, binary.LittleEndian.Uint32(data))
		data = data[4:]
	}

	var t uint32
	switch len(data) {
	case 3:
		t ^= uint32(data[2]) << 16
		fallthrough
	case 2:
		t ^= uint32(data[1]) << 8
		fallthrough
	case 1:
		t ^= uint32(data[0])
	}

	h = mix(h, t)
	h = mix(h, l)

	h ^= h >> 13
	h *= m
	h ^= h >> 15

	return h
}

// Sum64A returns the MurmurHash64A digest of data, the variant tuned for
// 64-bit platforms.
func Sum64A(data []byte, seed uint64) uint64 {
	const (
		m = 0xc6a4a7935bd1e995
		r = 47
	)

	h := seed ^ (uint64(len(data)) * m)

	for len(data) >= 8 {
		k := binary.LittleEndian.Uint64(data)
		k *= m
		k ^= k >> r
		k *= m

		h ^= k
		h *= m
		data = data[8:]
	}

	switch len(data) {
	case 7:
		h ^= uint64(data[6]) << 48
		fallthrough
	case 6:
		h ^= uint64(data[5]) << 40
		fallthrough
	case 5:
		h ^= uint64(data[4]) << 32
		fallthrough
	case 4:
		h ^= uint64(data[3]) << 24
		fallthrough
	case 3:
		h ^= uint64(data[2]) << 16
		fallthrough
	case 2:
		h ^= uint64(data[1]) << 8
		fallthrough
	case 1:
		h ^= uint64(data[0])
		h *= m
	}

	h ^= h >> r
	h *= m
	h ^= h >> r

	return h
}

// Sum64B returns the MurmurHash64B digest of data, the 64-bit variant built
// from two interleaved 32-bit lanes for 32-bit platforms.
func Sum64B(data []byte, seed uint64) uint64 {
	const (
		m = 0x5bd1e995
		r = 24
	)

	h1 := uint32(seed) ^ uint32(len(data))
	h2 := uint32(seed >> 32)

	for len(data) >= 8 {
		k1 := binary.LittleEndian.Uint32(data)
		k1 *= m
		k1 ^= k1 >> r
		k1 *= m
		h1 *= m
		h1 ^= k1

		k2 := binary.LittleEndian.Uint32(data[4:])
		k2 *= m
		k2 ^= k2 >> r
		k2 *= m
		h2 *= m
		h2 ^= k2

		data = data[8:]
	}

	if len(data) >= 4 {
		k1 := binary.LittleEndian.Uint32(data)
		k1 *= m
		k1 ^= k1 >> r
		k1 *= m
		h1 *= m
		h1 ^= k1
		data = data[4:]
	}

	switch len(data) {
	case 3:
		h2 ^= uint32(data[2]) << 16
		fallthrough
	case 2:
		h2 ^= uint32(data[1]) << 8
		fallthrough
	case 1:
		h2 ^= uint32(data[0])
		h2 *= m
	}

	h1 ^= h2 >> 18
	h1 *= m
	h2 ^= h1 >> 22
	h2 *= m
	h1 ^= h2 >> 17
	h1 *= m
	h2 ^= h1 >> 19
	h2 *= m

	return uint64(h1)<<32 | uint64(h2)
}

// Sum128x86 returns the four 32-bit lanes of the MurmurHash3 x86_128 digest.
func Sum128x86(data []byte, seed uint32) (h1, h2, h3, h4 uint32) {
	const (
		c1 = 0x239b961b
		c2 = 0xab0e9789
		c3 = 0x38b34ae5
		c4 = 0xa1e38b93
	)

	length := uint32(len(data))
	h1, h2, h3, h4 = seed, seed, seed, seed

	for len(data) >= 16 {
		k1 := binary.LittleEndian.Uint32(data)
		k2 := binary.LittleEndian.Uint32(data[4:])
		k3 := binary.LittleEndian.Uint32(data[8:])
		k4 := binary.LittleEndian.Uint32(data[12:])

		k1 *= c1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= c2
		h1 ^= k1
		h1 = bits.RotateLeft32(h1, 19)
		h1 += h2
		h1 = h1*5 + 0x561ccd1b

		k2 *= c2
		k2 = bits.RotateLeft32(k2, 16)
		k2 *= c3
		h2 ^= k2
		h2 = bits.RotateLeft32(h2, 17)
		h2 += h3
		h2 = h2*5 + 0x0bcaa747

		k3 *= c3
		k3 = bits.RotateLeft32(k3, 17)
		k3 *= c4
		h3 ^= k3
		h3 = bits.RotateLeft32(h3, 15)
		h3 += h4
		h3 = h3*5 + 0x96cd1c35

		k4 *= c4
		k4 = bits.RotateLeft32(k4, 18)
		k4 *= c1
		h4 ^= k4
		h4 = bits.RotateLeft32(h4, 13)
		h4 += h1
		h4 = h4*5 + 0x32ac3b17

		data = data[16:]
	}

	var k1, k2, k3, k4 uint32
	switch len(data) {
	case 15:
		k4 ^= uint32(data[14]) << 16
		fallthrough
	case 14:
		k4 ^= uint32(data[13]) << 8
		fallthrough
	case 13:
		k4 ^= uint32(data[12])
		k4 *= c4
		k4 = bits.RotateLeft32(k4, 18)
		k4 *= c1
		h4 ^= k4
		fallthrough
	case 12:
		k3 ^= uint32(data[11]) << 24
		fallthrough
	case 11:
		k3 ^= uint32(data[10]) << 16
		fallthrough
	case 10:
		k3 ^= uint32(data[9]) << 8
		fallthrough
	case 9:
		k3 ^= uint32(data[8])
		k3 *= c3
		k3 = bits.RotateLeft32(k3, 17)
		k3 *= c4
		h3 ^= k3
		fallthrough
	case 8:
		k2 ^= uint32(data[7]) << 24
		fallthrough
	case 7:
		k2 ^= uint32(data[6]) << 16
		fallthrough
	case 6:
		k2 ^= uint32(data[5]) << 8
		fallthrough
	case 5:
		k2 ^= uint32(data[4])
		k2 *= c2
		k2 = bits.RotateLeft32(k2, 16)
		k2 *= c3
		h2 ^= k2
		fallthrough
	case 4:
		k1 ^= uint32(data[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint32(data[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(data[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(data[0])
		k1 *= c1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= c2
		h1 ^= k1
	}

	h1 ^= length
	h2 ^= length
	h3 ^= length
	h4 ^= length

	h1 += h2
	h1 += h3
	h1 += h4
	h2 += h1
	h3 += h1
	h4 += h1

	h1 = fmix32(h1)
	h2 = fmix32(h2)
	h3 = fmix32(h3)
	h4 = fmix32(h4)

	h1 += h2
	h1 += h3
	h1 += h4
	h2 += h1
	h3 += h1
	h4 += h1

	return h1, h2, h3, h4
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
