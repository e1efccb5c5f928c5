// Package bounds provides index-checked containers used as storage by the vector,
// matrix and kernel-argument layers.
//
// Every container carries a Checker. The checker's Policy decides what happens on an
// out-of-range index: PolicyAssert treats it as a programming error and panics,
// PolicyZeroIndex reports it and remaps the index to 0 so that code running where
// trapping is not available keeps going.
package bounds

import "fmt"

// Policy selects how out-of-range accesses are handled.
type Policy uint8

// Supported bound-check policies.
const (
	// PolicyAssert panics with an *IndexError on any violation.
	PolicyAssert Policy = iota
	// PolicyZeroIndex reports the violation and continues with index 0.
	PolicyZeroIndex
)

// String returns a human-readable policy name.
func (p Policy) String() string {
	switch p {
	case PolicyAssert:
		return "assert"
	case PolicyZeroIndex:
		return "zero-index"
	default:
		return "unknown"
	}
}

// IndexError describes a rejected container access.
type IndexError struct {
	Index     int
	Count     int
	ElemSize  int  // non-zero for byte-addressed access
	Unaligned bool // byte-addressed access not on a 4-byte boundary
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.ElemSize > 0 {
		if e.Unaligned {
			return fmt.Sprintf("bounds: byte index %d is not 4-byte aligned", e.Index)
		}
		return fmt.Sprintf("bounds: byte index %d + element size %d exceeds buffer size %d",
			e.Index, e.ElemSize, e.Count)
	}
	return fmt.Sprintf("bounds: index %d out of range [0, %d)", e.Index, e.Count)
}

// Checker applies a Policy. The zero value asserts.
type Checker struct {
	Policy Policy

	// Report, if set, is called for every violation before the policy is applied.
	// Under PolicyZeroIndex this is the only visible trace of a bad access.
	Report func(*IndexError)
}

// Assert is the checker for diagnostic builds.
var Assert = Checker{Policy: PolicyAssert}

// ZeroIndex is the checker for device-style code where trapping is unavailable.
var ZeroIndex = Checker{Policy: PolicyZeroIndex}

// Check validates index against count and returns the index to use.
// The index is treated as unsigned: negative values are out of range.
func (c Checker) Check(index, count int) int {
	if uint(index) < uint(count) {
		return index
	}
	c.violate(&IndexError{Index: index, Count: count})
	if count == 0 {
		// nothing to remap onto
		panic(&IndexError{Index: index, Count: count})
	}
	return 0
}

// CheckByteAddress validates a byte offset for an element of elemSize bytes inside a
// buffer of sizeInBytes. Offsets must be 4-byte aligned.
func (c Checker) CheckByteAddress(index, elemSize, sizeInBytes int) int {
	inRange := index >= 0 && sizeInBytes >= elemSize && index <= sizeInBytes-elemSize
	aligned := index&3 == 0
	if inRange && aligned {
		return index
	}
	c.violate(&IndexError{Index: index, Count: sizeInBytes, ElemSize: elemSize, Unaligned: inRange && !aligned})
	if sizeInBytes < elemSize {
		panic(&IndexError{Index: index, Count: sizeInBytes, ElemSize: elemSize})
	}
	if !inRange {
		return 0
	}
	// Misaligned but in range: the zero-index fix only covers the range check.
	return index
}

func (c Checker) violate(err *IndexError) {
	if c.Report != nil {
		c.Report(err)
	}
	if c.Policy != PolicyZeroIndex {
		panic(err)
	}
}
