package gemini

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/procrastilist/procrastilist/internal/generation"
)

//go:embed prompts/distractions.tmpl
var promptFS embed.FS

const defaultPromptPath = "prompts/distractions.tmpl"

// loadPromptTemplate parses the template at path, or the embedded default
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	var (
		content []byte
		err     error
	)
	if path == "" {
		content, err = promptFS.ReadFile(defaultPromptPath)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	tmpl, err := template.New("distractions").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
