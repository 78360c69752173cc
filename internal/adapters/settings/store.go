package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"route-schedule-service/internal/domain"
	"route-schedule-service/internal/services"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings is the user-editable configuration file. Every field has a
// working default so a missing or partial file still yields a usable
// configuration.
type Settings struct {
	DefaultAddress      string             `yaml:"default_address" json:"default_address" validate:"required"`
	DefaultLocationName string             `yaml:"default_location_name" json:"default_location_name"`
	BreakNames          string             `yaml:"break_names" json:"break_names"`
	LunchWindow         string             `yaml:"lunch_window" json:"lunch_window" validate:"required"`
	EveningWindow       string             `yaml:"evening_window" json:"evening_window" validate:"required"`
	RouteSortOrder      string             `yaml:"route_sort_order" json:"route_sort_order" validate:"oneof=name time"`
	ColorRules          []domain.ColorRule `yaml:"color_rules" json:"color_rules" validate:"dive"`
	RouteRules          []domain.RouteRule `yaml:"route_rules" json:"route_rules"`
}

// Defaults returns the settings used when no file exists yet. The depot
// address must never be empty: the grouper substitutes it for missing
// visit addresses, and an empty depot would let address-less visits
// through and make every blank address classify as "at the depot".
func Defaults() Settings {
	return Settings{
		DefaultAddress:      "Angereds Torg 5, 42465 Angered",
		DefaultLocationName: "Depot",
		BreakNames:          "lunch;break;pause",
		LunchWindow:         "10:00-14:00",
		EveningWindow:       "15:00-19:00",
		RouteSortOrder:      services.SortByName,
		ColorRules:          nil,
		RouteRules:          nil,
	}
}

// BreakNameList splits the semicolon-separated break names, trimming
// blanks.
func (s Settings) BreakNameList() []string {
	parts := strings.Split(s.BreakNames, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Windows parses the lunch and evening clock windows. Validate has
// already checked they parse, so errors here mean the settings were
// mutated without validation.
func (s Settings) Windows() (lunch, evening domain.ClockWindow, err error) {
	lunch, err = domain.ParseClockWindow(s.LunchWindow)
	if err != nil {
		return lunch, evening, fmt.Errorf("settings: lunch window: %w", err)
	}
	evening, err = domain.ParseClockWindow(s.EveningWindow)
	if err != nil {
		return lunch, evening, fmt.Errorf("settings: evening window: %w", err)
	}
	return lunch, evening, nil
}

// Validate checks field constraints plus the parts the validator tags
// cannot express: clock windows must parse and route rules must be
// well-formed tagged unions.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	// "required" only rejects the zero value; whitespace or a literal
	// "none" would still slip an empty depot into the grouper.
	if domain.IsEmptyValue(s.DefaultAddress) {
		return fmt.Errorf("settings: default_address must not be empty")
	}

	if _, _, err := s.Windows(); err != nil {
		return err
	}

	if err := services.ValidateRouteRules(s.RouteRules); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Store holds the current settings and persists them to a YAML file.
// Reads vastly outnumber writes, so it is guarded by a RWMutex.
type Store struct {
	path string

	mu      sync.RWMutex
	current Settings
}

// NewStore loads settings from path, falling back to defaults when the
// file does not exist. A file that exists but fails to parse or
// validate is an error; silently discarding a user's edits would be
// worse than refusing to start.
func NewStore(path string) (*Store, error) {
	st := &Store{path: path, current: Defaults()}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, fmt.Errorf("load settings: read %q: %w", path, err)
	}

	loaded, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	st.current = loaded
	return st, nil
}

func parse(raw []byte) (Settings, error) {
	s := Defaults()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("parse yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Current returns a snapshot of the settings.
func (st *Store) Current() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Replace validates, persists and swaps in new settings.
func (st *Store) Replace(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("save settings: marshal: %w", err)
	}

	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save settings: create dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(st.path, raw, 0o644); err != nil {
		return fmt.Errorf("save settings: write %q: %w", st.path, err)
	}

	st.mu.Lock()
	st.current = s
	st.mu.Unlock()
	return nil
}

// Reload re-reads the file on disk, used by the watcher when an outside
// edit lands. Invalid content keeps the previous settings.
func (st *Store) Reload() error {
	raw, err := os.ReadFile(st.path)
	if err != nil {
		return fmt.Errorf("reload settings: read %q: %w", st.path, err)
	}

	loaded, err := parse(raw)
	if err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}

	st.mu.Lock()
	st.current = loaded
	st.mu.Unlock()
	return nil
}

// Path returns the backing file path.
func (st *Store) Path() string { return st.path }
