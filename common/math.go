package common

import (
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// PadTo returns data extended with zero bytes so its length is a multiple of alignment.
// WebGPU requires buffer writes to be sized in multiples of 4 bytes.
// The input is returned unchanged when it is already aligned.
//
// Parameters:
//   - data: the bytes to pad
//   - alignment: the required length multiple (values <= 1 disable padding)
//
// Returns:
//   - []byte: the aligned byte slice
func PadTo(data []byte, alignment int) []byte {
	if alignment <= 1 {
		return data
	}
	rem := len(data) % alignment
	if rem == 0 {
		return data
	}
	out := make([]byte, len(data)+alignment-rem)
	copy(out, data)
	return out
}
