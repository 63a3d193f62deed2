// Package decoders turns raw wire variants into domain objects.
//
// Every known (family, tag) pair maps to a Decoder in a Registry. Default
// returns the process-wide registry, built once and read-only afterwards.
// Decoding walks nested variants recursively, resolving bare user, chat and
// message IDs against the envelope's entity table:
//
//   - a zero or absent ID decodes to "no value" (a nil pointer)
//   - an ID missing from the table decodes to an identifier-only placeholder
//   - an unknown tag in a list is dropped and its siblings still decode
//   - an unknown tag in a required field fails with ErrUnsupportedVariant
//   - a missing required field fails with ErrMalformedVariant
//
// Context.Unsupported makes the unknown-tag behaviour explicit per call.
// Decoding never mutates its inputs and has no side effects, so the same
// (variant, table, context) always yields an equal result.
package decoders
