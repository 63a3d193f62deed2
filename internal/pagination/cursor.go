package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// CursorVersion is the current cursor schema version.
const CursorVersion = 1

// Cursor is a composite offset for list methods that continue from the
// last item's date, message ID and peer rather than a server token.
type Cursor struct {
	// Version is the schema version for future migrations.
	Version int `json:"v"`

	// OffsetDate is the date of the last item, in epoch seconds.
	OffsetDate int64 `json:"date,omitempty"`

	// OffsetID is the message ID of the last item.
	OffsetID int64 `json:"id,omitempty"`

	// OffsetPeer is the peer ID of the last item.
	OffsetPeer int64 `json:"peer,omitempty"`
}

// NewCursor creates a cursor continuing after the given item.
func NewCursor(date, id, peer int64) *Cursor {
	return &Cursor{
		Version:    CursorVersion,
		OffsetDate: date,
		OffsetID:   id,
		OffsetPeer: peer,
	}
}

// IsZero reports whether the cursor points at the first page.
func (c *Cursor) IsZero() bool {
	return c == nil || (c.OffsetDate == 0 && c.OffsetID == 0 && c.OffsetPeer == 0)
}

// Encode serializes the cursor to a base64-encoded JSON string.
// The zero cursor encodes to the empty string.
func (c *Cursor) Encode() string {
	if c.IsZero() {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor deserializes a cursor from a base64-encoded JSON string.
// The empty string decodes to the zero cursor.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return &Cursor{Version: CursorVersion}, nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", domain.ErrInvalidCursor)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", domain.ErrInvalidCursor)
	}
	if c.Version != CursorVersion {
		return nil, fmt.Errorf("cursor version %d: %w", c.Version, domain.ErrInvalidCursor)
	}
	return &c, nil
}
