package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/example/neurosync/internal/persistence"
)

// ThemeService tracks the light/dark preference. It starts from the platform
// color scheme and is overridden by the persisted choice once loaded.
type ThemeService struct {
	storage *StorageService
	logger  *slog.Logger

	mu      sync.RWMutex
	current Theme
}

// NewThemeService constructs a theme store. colorScheme reports the platform
// preference; nil, empty or unknown values mean light.
func NewThemeService(storage *StorageService, colorScheme func() string, logger *slog.Logger) *ThemeService {
	initial := ThemeLight
	if colorScheme != nil {
		if t := Theme(strings.ToLower(strings.TrimSpace(colorScheme()))); t.Valid() {
			initial = t
		}
	}
	return &ThemeService{storage: storage, logger: defaultLogger(logger), current: initial}
}

func (s *ThemeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ThemeService", operation, attrs...)
}

// Current returns the active theme.
func (s *ThemeService) Current() Theme {
	if s == nil {
		return ThemeLight
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load applies the persisted theme when one is stored and valid.
func (s *ThemeService) Load(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("ThemeService is nil")
	}

	var stored string
	found, err := s.storage.Get(ctx, persistence.KeyTheme, &stored)
	if err != nil || !found {
		return err
	}
	theme := Theme(stored)
	if !theme.Valid() {
		s.loggerWith(ctx, "Load").WarnContext(ctx, "ignoring unknown stored theme", "theme", stored)
		return nil
	}

	s.mu.Lock()
	s.current = theme
	s.mu.Unlock()
	return nil
}

// Toggle flips the theme and persists the new value. The in-memory theme
// flips even when persistence fails.
func (s *ThemeService) Toggle(ctx context.Context) (Theme, error) {
	if s == nil {
		return ThemeLight, fmt.Errorf("ThemeService is nil")
	}

	s.mu.Lock()
	s.current = s.current.Opposite()
	next := s.current
	err := s.storage.Save(ctx, persistence.KeyTheme, string(next))
	s.mu.Unlock()

	s.loggerWith(ctx, "Toggle").InfoContext(ctx, "theme toggled", "theme", string(next))
	return next, err
}
