package domain

const unknownDescription = "Unknown"

// UnsupportedPolicy decides what happens to a variant whose tag the
// decoder does not know.
type UnsupportedPolicy string

// Unsupported variant policies.
const (
	// PolicyDrop drops unsupported list elements and optional fields.
	// A required single field still fails with ErrUnsupportedVariant.
	PolicyDrop UnsupportedPolicy = "drop"

	// PolicySurface keeps unsupported values as Unsupported where the
	// field's type allows it and drops them otherwise.
	PolicySurface UnsupportedPolicy = "surface"

	// PolicyEscalate fails the decode on any unsupported variant.
	PolicyEscalate UnsupportedPolicy = "escalate"
)

// IsValid returns true if the policy is recognised.
func (p UnsupportedPolicy) IsValid() bool {
	switch p {
	case PolicyDrop, PolicySurface, PolicyEscalate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p UnsupportedPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p UnsupportedPolicy) Description() string {
	switch p {
	case PolicyDrop:
		return "Drop (skip unknown list items)"
	case PolicySurface:
		return "Surface (keep unknown items as placeholders)"
	case PolicyEscalate:
		return "Escalate (fail on any unknown item)"
	default:
		return unknownDescription
	}
}

// ResolutionMode decides whether optional nested message references are
// materialised from the envelope or left as identifiers.
type ResolutionMode string

// Resolution modes.
const (
	ResolveEager ResolutionMode = "eager"
	ResolveLazy  ResolutionMode = "lazy"
)

// IsValid returns true if the mode is recognised.
func (m ResolutionMode) IsValid() bool {
	return m == ResolveEager || m == ResolveLazy
}

// String returns the string representation.
func (m ResolutionMode) String() string {
	return string(m)
}

// StorageBackend selects where peer records are kept.
type StorageBackend string

// Storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// TransportSettings configures the transport.
type TransportSettings struct {
	// Cassette is the path of the replay cassette.
	Cassette string

	// Rate is the maximum number of requests per second. Zero disables throttling.
	Rate float64

	// Burst is the number of requests allowed above Rate.
	Burst int

	// Watch reloads the cassette when the file changes.
	Watch bool
}

// DecodeSettings configures the decoder.
type DecodeSettings struct {
	Policy     UnsupportedPolicy
	Resolution ResolutionMode

	// SelfID is the current account's user ID, used as the decode viewpoint.
	SelfID int64
}

// PaginationSettings configures list operations.
type PaginationSettings struct {
	// PageSize is the preferred page size; it is capped at the server maximum.
	PageSize int
}

// StorageSettings configures the peer store.
type StorageSettings struct {
	Backend StorageBackend
	DataDir string
}

// LogSettings configures logging.
type LogSettings struct {
	Level string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Transport  TransportSettings
	Decode     DecodeSettings
	Pagination PaginationSettings
	Storage    StorageSettings
	Log        LogSettings
}

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Transport: TransportSettings{
			Burst: 1,
		},
		Decode: DecodeSettings{
			Policy:     PolicyDrop,
			Resolution: ResolveEager,
		},
		Pagination: PaginationSettings{
			PageSize: 100,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Log: LogSettings{
			Level: "warn",
		},
	}
}

// AllPolicies returns all unsupported variant policies.
func AllPolicies() []UnsupportedPolicy {
	return []UnsupportedPolicy{
		PolicyDrop,
		PolicySurface,
		PolicyEscalate,
	}
}
