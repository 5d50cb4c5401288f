package convert

import (
	"unsafe"
)

// StringToBytes returns the bytes of a string without copying them.
//
// The returned slice is read-only.
func StringToBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// BytesToString returns a string sharing the memory of a slice of bytes.
//
// The slice must not be modified afterwards.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
