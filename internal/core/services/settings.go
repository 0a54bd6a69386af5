package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyTransformSchemes   = "transform.schemes"
	KeyTransformOrdering  = "transform.ordering"
	KeyMessagesDataDir    = "messages.data_dir"
	KeyMessagesPageSize   = "messages.page_size"
	KeyMessagesRate       = "messages.pages_per_second"
	KeyCutWordsStopWords  = "cutwords.stop_words"
	KeyCutWordsUserDict   = "cutwords.user_dict"
	KeyCutWordsMaxWordLen = "cutwords.max_word_bytes"
)

var settingKeys = []string{
	KeyTransformSchemes,
	KeyTransformOrdering,
	KeyMessagesDataDir,
	KeyMessagesPageSize,
	KeyMessagesRate,
	KeyCutWordsStopWords,
	KeyCutWordsUserDict,
	KeyCutWordsMaxWordLen,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Invalid stored values fall
// back to their defaults, except unknown schemes which are an error since
// silently dropping one changes which spellings match.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	schemes := defaults.Transform.Schemes
	if names := s.configStore.GetStringSlice(KeyTransformSchemes); names != nil {
		parsed, err := domain.ParseSchemes(names)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyTransformSchemes, err)
		}
		schemes = parsed
	}

	settings := &domain.Settings{
		Transform: domain.TransformSettings{
			Schemes:  schemes,
			Ordering: s.getOrdering(defaults.Transform.Ordering),
		},
		Messages: domain.MessageSettings{
			DataDir:        s.getString(KeyMessagesDataDir, s.defaultDataDir()),
			PageSize:       s.getInt(KeyMessagesPageSize, defaults.Messages.PageSize),
			PagesPerSecond: s.getFloat(KeyMessagesRate, defaults.Messages.PagesPerSecond),
		},
		CutWords: domain.CutWordsSettings{
			StopWordsPath: s.getString(KeyCutWordsStopWords, defaults.CutWords.StopWordsPath),
			UserDictPath:  s.getString(KeyCutWordsUserDict, defaults.CutWords.UserDictPath),
			MaxWordBytes:  s.getInt(KeyCutWordsMaxWordLen, defaults.CutWords.MaxWordBytes),
		},
	}

	return settings, nil
}

// SetTransform updates the transform settings.
func (s *SettingsService) SetTransform(settings domain.TransformSettings) error {
	for _, scheme := range settings.Schemes {
		if !scheme.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownScheme, scheme)
		}
	}
	if !settings.Ordering.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownOrdering, settings.Ordering)
	}

	names := make([]string, len(settings.Schemes))
	for i, scheme := range settings.Schemes {
		names[i] = scheme.String()
	}
	if err := s.configStore.Set(KeyTransformSchemes, names); err != nil {
		return fmt.Errorf("save transform schemes: %w", err)
	}
	if err := s.configStore.Set(KeyTransformOrdering, settings.Ordering.String()); err != nil {
		return fmt.Errorf("save transform ordering: %w", err)
	}
	return nil
}

// SetValue parses a command-line value for key and persists it.
func (s *SettingsService) SetValue(key, value string) error {
	var stored any

	switch key {
	case KeyTransformSchemes:
		schemes, err := domain.ParseSchemes(splitList(value))
		if err != nil {
			return err
		}
		names := make([]string, len(schemes))
		for i, scheme := range schemes {
			names[i] = scheme.String()
		}
		stored = names
	case KeyTransformOrdering:
		ordering := domain.Ordering(value)
		if !ordering.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownOrdering, value)
		}
		stored = value
	case KeyMessagesPageSize, KeyCutWordsMaxWordLen:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = int64(n)
	case KeyMessagesRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = f
	case KeyMessagesDataDir, KeyCutWordsStopWords, KeyCutWordsUserDict:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetValue returns the effective value of key with defaults applied.
func (s *SettingsService) GetValue(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case KeyTransformSchemes:
		names := make([]string, len(settings.Transform.Schemes))
		for i, scheme := range settings.Transform.Schemes {
			names[i] = scheme.String()
		}
		return strings.Join(names, ","), nil
	case KeyTransformOrdering:
		return settings.Transform.Ordering.String(), nil
	case KeyMessagesDataDir:
		return settings.Messages.DataDir, nil
	case KeyMessagesPageSize:
		return strconv.Itoa(settings.Messages.PageSize), nil
	case KeyMessagesRate:
		return strconv.FormatFloat(settings.Messages.PagesPerSecond, 'g', -1, 64), nil
	case KeyCutWordsStopWords:
		return settings.CutWords.StopWordsPath, nil
	case KeyCutWordsUserDict:
		return settings.CutWords.UserDictPath, nil
	case KeyCutWordsMaxWordLen:
		return strconv.Itoa(settings.CutWords.MaxWordBytes), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Path returns the configuration file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Keys returns every known setting key.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// splitList splits "a, b,c" into its non-empty trimmed elements.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// defaultDataDir places data next to the config file.
func (s *SettingsService) defaultDataDir() string {
	path := s.configStore.Path()
	if path == "" || path == ":memory:" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "data")
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getOrdering(defaultVal domain.Ordering) domain.Ordering {
	val := s.configStore.GetString(KeyTransformOrdering)
	if val == "" {
		return defaultVal
	}
	ordering := domain.Ordering(val)
	if !ordering.IsValid() {
		return defaultVal
	}
	return ordering
}
