// Package byteorder converts fixed-size integers between host and network byte order.
//
// The host order is probed once when the package is initialized.
// Only little and big endian hosts are supported,
// any other memory layout aborts the program during initialization.
package byteorder

import (
	"encoding/binary"
	"unsafe"
)

// Integer is the set of fixed-size integer types whose bytes can be reversed.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Native is the byte order of the host.
var Native binary.ByteOrder

var bigEndian bool

func init() {
	probe := uint32(0x01020304)
	switch *(*[4]byte)(unsafe.Pointer(&probe)) {
	case [4]byte{0x04, 0x03, 0x02, 0x01}:
		Native = binary.LittleEndian
	case [4]byte{0x01, 0x02, 0x03, 0x04}:
		Native = binary.BigEndian
		bigEndian = true
	default:
		panic("byteorder: mixed-endian hosts are not supported")
	}
}

// IsBigEndian reports whether the host stores integers most significant byte first.
func IsBigEndian() bool {
	return bigEndian
}

// Reverse reverses the order of the bytes that make up v.
func Reverse[T Integer](v T) T {
	size := int(unsafe.Sizeof(v))
	u := uint64(v)
	var r uint64
	for i := 0; i < size; i++ {
		r = r<<8 | u&0xff
		u >>= 8
	}
	return T(r)
}

// HostToNet converts v from host to network (big endian) byte order.
func HostToNet[T Integer](v T) T {
	if bigEndian {
		return v
	}
	return Reverse(v)
}

// NetToHost converts v from network (big endian) to host byte order.
func NetToHost[T Integer](v T) T {
	if bigEndian {
		return v
	}
	return Reverse(v)
}
