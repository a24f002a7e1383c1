// SPDX-License-Identifier: MPL-2.0

package mwapi

import "errors"

// ErrEndOfList signals that a Stream has produced its final item.
var ErrEndOfList = errors.New("end of list")

type (
	// Kind discriminates the shape of a Result.
	Kind int

	// Result is the tagged outcome of an API operation. Exactly one of the
	// shape fields is meaningful, selected by Kind. Operations never return
	// untagged values; callers switch on Kind instead of inspecting types.
	Result struct {
		Kind Kind

		// Scalar holds a string, bool, number, or nil when Kind is KindScalar.
		Scalar any
		// Structure holds a decoded JSON object when Kind is KindStructure.
		Structure map[string]any
		// Sequence holds a finite, ordered item list when Kind is KindSequence.
		Sequence []any
		// Bytes holds a binary payload when Kind is KindBytes.
		Bytes []byte
		// Stream produces items on demand when Kind is KindStream.
		Stream Stream
	}

	// Stream is a forward-only, non-restartable source of items. Next blocks
	// until an item is available and returns ErrEndOfList once exhausted.
	Stream interface {
		Next() (any, error)
	}
)

const (
	// KindScalar is a single string, bool, number, or null value.
	KindScalar Kind = iota
	// KindStructure is a JSON object.
	KindStructure
	// KindSequence is a finite ordered list, fully materialized.
	KindSequence
	// KindBytes is a raw binary payload.
	KindBytes
	// KindStream is a lazy item source backed by API continuation.
	KindStream
)

// NewScalar wraps a scalar value in a Result.
func NewScalar(v any) Result { return Result{Kind: KindScalar, Scalar: v} }

// NewStructure wraps a decoded JSON object in a Result.
func NewStructure(m map[string]any) Result { return Result{Kind: KindStructure, Structure: m} }

// NewSequence wraps a finite item list in a Result.
func NewSequence(items []any) Result { return Result{Kind: KindSequence, Sequence: items} }

// NewBytes wraps a binary payload in a Result.
func NewBytes(b []byte) Result { return Result{Kind: KindBytes, Bytes: b} }

// NewStream wraps a lazy item source in a Result.
func NewStream(s Stream) Result { return Result{Kind: KindStream, Stream: s} }

// Value returns the untagged shape of the Result. Streams are returned as-is;
// they must be consumed through Next.
func (r Result) Value() any {
	switch r.Kind {
	case KindStructure:
		return r.Structure
	case KindSequence:
		return r.Sequence
	case KindBytes:
		return r.Bytes
	case KindStream:
		return r.Stream
	default:
		return r.Scalar
	}
}
