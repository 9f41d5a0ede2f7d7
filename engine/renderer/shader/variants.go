package shader

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrVariantNotFound is returned when no shader source is registered for the device's shading language.
	ErrVariantNotFound = errors.New("no shader variant for shading language")
	// ErrNoEntryPoint is returned when a shader source has no entry point for its stage.
	ErrNoEntryPoint = errors.New("no entry point")
)

// Language identifies a shading language and version a device accepts.
type Language string

const (
	LanguageWGSL Language = "wgsl"
)

// Variants holds the sources of one shader written for several shading languages.
type Variants map[Language]string

// Pick returns the source written for lang.
//
// Parameters:
//   - lang: the shading language the device accepts
//
// Returns:
//   - string: the source for lang
//   - error: ErrVariantNotFound (wrapped with the available languages) when lang has no source
func (v Variants) Pick(lang Language) (string, error) {
	if src, ok := v[lang]; ok && src != "" {
		return src, nil
	}
	available := make([]string, 0, len(v))
	for l := range v {
		available = append(available, string(l))
	}
	sort.Strings(available)
	return "", fmt.Errorf("%w %q (have %s)", ErrVariantNotFound, lang, strings.Join(available, ", "))
}
