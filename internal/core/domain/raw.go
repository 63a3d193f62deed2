package domain

// RawVariant is one wire-level object as produced by the transport.
// Tag is the constructor name (for example "storyView") and Fields holds
// its values keyed by schema field name.
//
// Field values are one of int64, float64, string, bool, []byte, RawVariant
// or []any whose elements are any of the same. A flag that is not set is
// simply absent. RawVariant is treated as immutable once built.
type RawVariant struct {
	// Tag is the discriminant selecting the active variant of a family.
	Tag string

	// Fields holds the variant's field values.
	Fields map[string]any
}

// NewVariant creates a RawVariant with the given tag and fields.
func NewVariant(tag string, fields map[string]any) RawVariant {
	if fields == nil {
		fields = map[string]any{}
	}
	return RawVariant{Tag: tag, Fields: fields}
}

// IsZero returns true if the variant carries no tag.
func (v RawVariant) IsZero() bool {
	return v.Tag == ""
}

// Get returns the named field and whether it is present.
func (v RawVariant) Get(name string) (any, bool) {
	val, ok := v.Fields[name]
	return val, ok
}

// Entities holds the flat auxiliary collections that accompany a payload.
// Elements elsewhere in the payload refer to these by numeric ID.
type Entities struct {
	Users    []RawVariant
	Chats    []RawVariant
	Messages []RawVariant
}

// Len returns the total number of auxiliary entities.
func (e Entities) Len() int {
	return len(e.Users) + len(e.Chats) + len(e.Messages)
}

// RawEnvelope is one full response: the primary payload plus the
// auxiliary entity collections referenced from within it.
type RawEnvelope struct {
	Payload  RawVariant
	Entities Entities
}

// NewEnvelope builds an envelope from a response payload, collecting the
// payload's "users", "chats" and "messages" lists as auxiliary entities.
// The payload itself is left untouched.
func NewEnvelope(payload RawVariant) *RawEnvelope {
	return &RawEnvelope{
		Payload: payload,
		Entities: Entities{
			Users:    variantList(payload.Fields["users"]),
			Chats:    variantList(payload.Fields["chats"]),
			Messages: variantList(payload.Fields["messages"]),
		},
	}
}

// variantList extracts the RawVariant elements of a list field.
func variantList(val any) []RawVariant {
	items, ok := val.([]any)
	if !ok {
		return nil
	}
	out := make([]RawVariant, 0, len(items))
	for _, item := range items {
		if v, ok := item.(RawVariant); ok {
			out = append(out, v)
		}
	}
	return out
}

// EntityKind identifies one auxiliary entity collection.
type EntityKind string

// Entity kinds carried by envelopes.
const (
	// KindUser covers user objects keyed by user ID.
	KindUser EntityKind = "user"

	// KindChat covers basic groups and channels keyed by their bare ID.
	KindChat EntityKind = "chat"

	// KindMessage covers messages keyed by message ID.
	KindMessage EntityKind = "message"
)

// String returns the string representation.
func (k EntityKind) String() string {
	return string(k)
}

// Request is a single remote call handed to the transport.
type Request struct {
	// ID correlates the request across log lines.
	ID string

	// Method is the remote function name (for example "premium.getBoostsList").
	Method string

	// Params holds the call parameters using the same value types as RawVariant.
	Params map[string]any
}
