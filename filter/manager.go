package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/ziclient/contacts"
)

// DefaultCacheSize is the number of compiled expressions kept by a Manager
const DefaultCacheSize = 64

// Manager resolves named presets and caches compiled expressions
type Manager struct {
	presets map[string]string
	cache   *lruCache
	logger  zerolog.Logger
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCacheSize sets how many compiled expressions are kept
func WithCacheSize(size int) ManagerOption {
	return func(m *Manager) {
		m.cache = newLRUCache(size)
	}
}

// NewManager creates a filter manager over the configured presets.
// Preset names are case-insensitive.
func NewManager(presets map[string]string, logger zerolog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		presets: make(map[string]string, len(presets)),
		cache:   newLRUCache(DefaultCacheSize),
		logger:  logger,
	}
	for name, expression := range presets {
		m.presets[strings.ToLower(name)] = expression
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Resolve picks the expression to use: an explicit expression wins, then a
// named preset. An empty result means no filtering.
func (m *Manager) Resolve(expression, preset string) (string, error) {
	if strings.TrimSpace(expression) != "" {
		return expression, nil
	}
	if preset == "" {
		return "", nil
	}

	expr, ok := m.presets[strings.ToLower(preset)]
	if !ok {
		return "", fmt.Errorf("%w '%s' (available: %s)", ErrUnknownPreset, preset, strings.Join(m.Presets(), ", "))
	}
	return expr, nil
}

// Presets returns the configured preset names, lowercased and sorted
func (m *Manager) Presets() []string {
	return slices.Sorted(maps.Keys(m.presets))
}

// Compile returns a compiled filter, reusing a cached program when possible
func (m *Manager) Compile(expression string) (*ExprFilter, error) {
	if f, ok := m.cache.Get(expression); ok {
		return f, nil
	}

	f, err := CompileExprFilter(expression)
	if err != nil {
		return nil, err
	}

	m.cache.Put(expression, f)
	return f, nil
}

// Apply keeps the contacts the filter matches. Contacts that fail to
// evaluate are logged and dropped.
func (m *Manager) Apply(f *ExprFilter, list []contacts.Contact) []contacts.Contact {
	if f == nil {
		return list
	}

	kept := make([]contacts.Contact, 0, len(list))
	for _, c := range list {
		ok, err := f.Match(c)
		if err != nil {
			m.logger.Warn().Err(err).Str("contact_id", c.ID.String()).Msg("Filter evaluation failed")
			continue
		}
		if ok {
			kept = append(kept, c)
		}
	}

	m.logger.Debug().
		Str("filter", f.String()).
		Int("input", len(list)).
		Int("kept", len(kept)).
		Msg("Applied contact filter")

	return kept
}
