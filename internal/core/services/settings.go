package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/tgcore/internal/core/domain"
	"github.com/custodia-labs/tgcore/internal/core/ports/driven"
	"github.com/custodia-labs/tgcore/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTransportCassette = "transport.cassette"
	keyTransportRate     = "transport.rate"
	keyTransportBurst    = "transport.burst"
	keyTransportWatch    = "transport.watch"
	keyDecodePolicy      = "decode.policy"
	keyDecodeResolution  = "decode.resolution"
	keyDecodeSelfID      = "decode.self_id"
	keyPageSize          = "pagination.page_size"
	keyStorageBackend    = "storage.backend"
	keyStorageDataDir    = "storage.data_dir"
	keyLogLevel          = "log.level"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Transport: domain.TransportSettings{
			Cassette: s.configStore.GetString(keyTransportCassette),
			Rate:     s.configStore.GetFloat(keyTransportRate),
			Burst:    s.getInt(keyTransportBurst, defaults.Transport.Burst),
			Watch:    s.getBool(keyTransportWatch, defaults.Transport.Watch),
		},
		Decode: domain.DecodeSettings{
			Policy:     s.getPolicy(defaults.Decode.Policy),
			Resolution: s.getResolution(defaults.Decode.Resolution),
			SelfID:     int64(s.configStore.GetInt(keyDecodeSelfID)),
		},
		Pagination: domain.PaginationSettings{
			PageSize: s.getInt(keyPageSize, defaults.Pagination.PageSize),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Log: domain.LogSettings{
			Level: s.getString(keyLogLevel, defaults.Log.Level),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyTransportCassette, settings.Transport.Cassette},
		{keyTransportRate, settings.Transport.Rate},
		{keyTransportBurst, settings.Transport.Burst},
		{keyTransportWatch, settings.Transport.Watch},
		{keyDecodePolicy, settings.Decode.Policy.String()},
		{keyDecodeResolution, settings.Decode.Resolution.String()},
		{keyDecodeSelfID, settings.Decode.SelfID},
		{keyPageSize, settings.Pagination.PageSize},
		{keyStorageBackend, string(settings.Storage.Backend)},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyLogLevel, settings.Log.Level},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// Set updates one setting by key, parsing value for the key's type.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyTransportCassette:
		settings.Transport.Cassette = value
	case keyTransportRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate < 0 {
			return fmt.Errorf("%s: %w: %q", key, domain.ErrInvalidInput, value)
		}
		settings.Transport.Rate = rate
	case keyTransportBurst:
		burst, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		settings.Transport.Burst = burst
	case keyTransportWatch:
		watch, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w: %q", key, domain.ErrInvalidInput, value)
		}
		settings.Transport.Watch = watch
	case keyDecodePolicy:
		return s.SetPolicy(domain.UnsupportedPolicy(value))
	case keyDecodeResolution:
		mode := domain.ResolutionMode(value)
		if !mode.IsValid() {
			return fmt.Errorf("invalid resolution mode: %s", value)
		}
		settings.Decode.Resolution = mode
	case keyDecodeSelfID:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id < 0 {
			return fmt.Errorf("%s: %w: %q", key, domain.ErrInvalidInput, value)
		}
		settings.Decode.SelfID = id
	case keyPageSize:
		size, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		settings.Pagination.PageSize = size
	case keyStorageBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("invalid storage backend: %s", value)
		}
		settings.Storage.Backend = backend
	case keyStorageDataDir:
		settings.Storage.DataDir = value
	case keyLogLevel:
		settings.Log.Level = value
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// SetPolicy updates the unsupported variant policy.
func (s *SettingsService) SetPolicy(policy domain.UnsupportedPolicy) error {
	if !policy.IsValid() {
		return fmt.Errorf("invalid unsupported policy: %s", policy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Decode.Policy = policy
	return s.Save(settings)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Decode.Policy.IsValid() {
		return fmt.Errorf("invalid unsupported policy: %s", settings.Decode.Policy)
	}
	if settings.Transport.Rate > 0 && settings.Transport.Burst < 1 {
		return fmt.Errorf("transport burst must be at least 1 when rate is set")
	}
	if settings.Transport.Cassette == "" {
		return fmt.Errorf("no cassette configured: %w", domain.ErrTransportUnavailable)
	}
	return nil
}

// Keys returns the settable keys.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyTransportCassette, keyTransportRate, keyTransportBurst, keyTransportWatch,
		keyDecodePolicy, keyDecodeResolution, keyDecodeSelfID,
		keyPageSize, keyStorageBackend, keyStorageDataDir, keyLogLevel,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s: %w: %q", key, domain.ErrInvalidInput, value)
	}
	return n, nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPolicy(defaultVal domain.UnsupportedPolicy) domain.UnsupportedPolicy {
	policy := domain.UnsupportedPolicy(s.configStore.GetString(keyDecodePolicy))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getResolution(defaultVal domain.ResolutionMode) domain.ResolutionMode {
	mode := domain.ResolutionMode(s.configStore.GetString(keyDecodeResolution))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
