package cmd

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

// Settings is the user configuration consumed by the CLI shell. It carries
// no processing logic; the analytics engine never reads it.
type Settings struct {
	Locale                string   `json:"locale"`                // UI language (en, de-ch, fr, it)
	Autosave              bool     `json:"autosave"`              // Enable autosave
	DefaultBaseCurrency   string   `json:"defaultBaseCurrency"`   // ISO code (e.g., "CHF")
	DefaultCurrencies     []string `json:"defaultCurrencies"`     // List of ISO codes
	TaxReportHiddenFields []string `json:"taxReportHiddenFields"` // Fields to hide in tax view
}

func defaultSettings() Settings {
	return Settings{
		Locale:              "en",
		DefaultBaseCurrency: "CHF",
		DefaultCurrencies:   []string{"CHF", "EUR", "USD"},
	}
}

// LoadSettings reads the settings document from the user config directory,
// falling back to defaults when none exists yet.
func LoadSettings() (Settings, error) {
	path, err := xdg.ConfigFile("holdings/settings.json")
	if err != nil {
		return defaultSettings(), err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultSettings(), nil
	}
	if err != nil {
		return defaultSettings(), err
	}
	s := defaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return defaultSettings(), err
	}
	return s, nil
}
