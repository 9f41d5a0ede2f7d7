package shader

import (
	"fmt"
	"strings"
)

// includeDirective marks a line to be replaced by a registered WGSL snippet, e.g. "//#include camera_uniform".
const includeDirective = "//#include"

type preProcessor struct {
	includes map[string]string
}

// PreProcessor expands include directives in WGSL source. Go types that are uploaded to the GPU keep their
// WGSL struct definition next to them and shaders include it by name, so the two cannot drift apart.
type PreProcessor interface {
	// Process replaces every include directive with the registered snippet.
	//
	// Parameters:
	//   - source: raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: if a directive names no registered snippet
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor resolving include names against includes.
//
// Parameters:
//   - includes: WGSL snippets keyed by include name
//
// Returns:
//   - PreProcessor: the pre-processor
func NewPreProcessor(includes map[string]string) PreProcessor {
	return &preProcessor{includes: includes}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		name, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
		if !ok {
			out = append(out, line)
			continue
		}
		name = strings.TrimSpace(name)
		snippet, found := p.includes[name]
		if !found {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		out = append(out, strings.TrimRight(snippet, "\n"))
	}
	return strings.Join(out, "\n"), nil
}
