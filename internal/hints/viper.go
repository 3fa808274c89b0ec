package hints

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment prefix viper uses for sdktable settings.
const EnvPrefix = "SDKTABLE"

// ConfigureEnv makes v resolve keys from SDKTABLE_* environment variables,
// mapping "." and "-" to "_".
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
}

// Viper reads hints from the "hints" section of the config file, then from
// SDKTABLE_-prefixed environment variables when v has AutomaticEnv enabled.
// Viper lower-cases keys, so lookups are case-insensitive.
//
//	hints:
//	  jdk:
//	    corretto-17: /opt/corretto-17
//	  "jdk.temurin-21": /opt/temurin-21
type Viper struct {
	v       *viper.Viper
	section string
}

// NewViper returns a Viper source reading the "hints" section of v.
func NewViper(v *viper.Viper) *Viper {
	return &Viper{v: v, section: "hints"}
}

// Lookup implements Source.
func (s *Viper) Lookup(key string) (string, bool) {
	key = strings.ToLower(key)

	if v, ok := s.flattened()[key]; ok && v != "" {
		return v, true
	}

	// AutomaticEnv only consults the environment for keys viper is asked for directly.
	if v := s.v.GetString(key); v != "" {
		return v, true
	}
	return "", false
}

// All returns every hint from the config section, flattened to dot keys.
func (s *Viper) All() map[string]string {
	return s.flattened()
}

func (s *Viper) flattened() map[string]string {
	out := make(map[string]string)
	raw, ok := s.v.Get(s.section).(map[string]any)
	if !ok {
		return out
	}
	flatten("", raw, out)
	return out
}

// flatten recursively flattens a nested map into dot-notation keys.
func flatten(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := strings.ToLower(k)
		if prefix != "" {
			key = prefix + "." + key
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flatten(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flatten(key, converted, result)
		}
	}
}
