package answer

import (
	"os"

	"gopkg.in/yaml.v3"
)

// PromptSpec is the YAML prompt shared by the LLM backends.
type PromptSpec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

func LoadPromptSpec(path string) (PromptSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return PromptSpec{}, err
	}
	var spec PromptSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return PromptSpec{}, err
	}
	return spec, nil
}

func (p PromptSpec) temperature() float32 {
	if p.Style.Temperature <= 0 {
		return 0.2
	}
	return p.Style.Temperature
}

func (p PromptSpec) maxTokens() int {
	if p.Style.MaxTokens <= 0 {
		return 400
	}
	return p.Style.MaxTokens
}
