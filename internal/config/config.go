// Package config defines the JSON-serializable configuration model for the
// warehouse ETL. It is intentionally small and explicit so runs can be loaded
// from disk and passed through the program without extra glue code; decoding
// is performed by the standard library, with a light Options helper for typed
// access to free-form option bags.
package config

import "encoding/json"

// Pipeline describes one full ETL run. It is the top-level object decoded
// from a pipeline file (e.g., configs/ecobottle.json).
type Pipeline struct {
	// Job labels the run for logging and metrics.
	Job string `json:"job"`

	// Extract locates the raw CSV area.
	Extract Extract `json:"extract"`

	// Parser configures how the raw CSV files are read.
	Parser Parser `json:"parser"`

	// Load locates the warehouse output directory.
	Load Load `json:"load"`
}

// Extract holds the raw input settings.
type Extract struct {
	// Dir is the directory containing one <table>.csv per raw table.
	Dir string `json:"dir"`
}

// Load holds the output settings.
type Load struct {
	// Dir is the directory the produced tables are written into. It is
	// created if absent.
	Dir string `json:"dir"`
}

// Parser carries free-form CSV reader options. Typical keys:
// comma (string), trim_space (bool), header_map (object).
type Parser struct {
	Options Options `json:"options"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps.
// It performs only minimal type coercion and returns the provided default
// when a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character settings such as the CSV
// delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map, removing the need
// for nil checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
