// SPDX-License-Identifier: MPL-2.0

package call

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"mwcli/internal/mwapi"
)

// EmitOptions selects the output mode for one result.
type EmitOptions struct {
	// Stream emits finite sequences as one JSON line per item.
	Stream bool
	// MaxItems caps emitted items for streams and sequences. Negative
	// means no cap.
	MaxItems int
	// Indent pretty-prints single-document JSON with this many spaces.
	// Zero emits compact JSON.
	Indent int
	// Markdown emits string results as plain text instead of JSON.
	Markdown bool
}

// Emit renders a result to w:
//
//   - a lazy stream is consumed item by item and emitted as JSON lines,
//     stopping after MaxItems without triggering a further production step;
//     it is never materialized first;
//   - a finite sequence with Stream set is truncated to MaxItems and
//     emitted as JSON lines;
//   - a string with Markdown set is emitted as plain text with exactly one
//     trailing newline;
//   - anything else is one JSON document, pretty or compact per Indent.
func Emit(w io.Writer, result mwapi.Result, opts EmitOptions) error {
	switch {
	case result.Kind == mwapi.KindStream:
		return emitStream(w, result.Stream, opts)

	case opts.Stream && result.Kind == mwapi.KindSequence:
		items := result.Sequence
		if opts.MaxItems >= 0 && len(items) > opts.MaxItems {
			items = items[:opts.MaxItems]
		}
		for _, item := range items {
			if err := writeJSON(w, Normalize(item), opts.Indent); err != nil {
				return err
			}
		}
		return nil

	case opts.Markdown && result.Kind == mwapi.KindScalar:
		if text, ok := result.Scalar.(string); ok {
			_, err := io.WriteString(w, strings.TrimRight(text, "\n")+"\n")
			return err
		}
		return writeJSON(w, Normalize(result.Scalar), opts.Indent)

	default:
		return writeJSON(w, Normalize(result.Value()), opts.Indent)
	}
}

// emitStream consumes a lazy stream one item at a time. With a cap of n it
// emits exactly n items and performs no further Next call.
func emitStream(w io.Writer, stream mwapi.Stream, opts EmitOptions) error {
	count := 0
	for opts.MaxItems < 0 || count < opts.MaxItems {
		item, err := stream.Next()
		if errors.Is(err, mwapi.ErrEndOfList) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := writeJSON(w, Normalize(item), opts.Indent); err != nil {
			return err
		}
		count++
	}
	return nil
}

// writeJSON emits one newline-terminated JSON document. HTML characters are
// not escaped, keeping wiki content readable.
func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(v)
}
