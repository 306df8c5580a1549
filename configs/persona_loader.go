package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AdvisorPersona describes the advisor's role, language and guardrails as
// loaded from advisor_persona.yaml.
type AdvisorPersona struct {
	Persona struct {
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
		Language string `yaml:"language"`
		Task     string `yaml:"task"`
	} `yaml:"persona"`

	Tone struct {
		Style       string `yaml:"style"`
		Personality string `yaml:"personality"`
	} `yaml:"tone"`

	Constraints []string `yaml:"constraints"`
}

var cachedPersona *AdvisorPersona

// LoadAdvisorPersona reads the persona configuration from YAML. The result is
// cached for the lifetime of the process.
func LoadAdvisorPersona(path string) (*AdvisorPersona, error) {
	if cachedPersona != nil {
		return cachedPersona, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read advisor persona file: %w", err)
	}

	var persona AdvisorPersona
	if err := yaml.Unmarshal(data, &persona); err != nil {
		return nil, fmt.Errorf("failed to parse advisor persona YAML: %w", err)
	}

	cachedPersona = &persona
	return cachedPersona, nil
}

// DefaultAdvisorPersona returns the built-in persona used when no YAML file
// is present. It matches the shipped advisor_persona.yaml.
func DefaultAdvisorPersona() *AdvisorPersona {
	p := &AdvisorPersona{}
	p.Persona.Name = "ChainMind"
	p.Persona.Role = "a senior supply chain strategist"
	p.Persona.Language = "Hinglish (Hindi + English)"
	p.Persona.Task = "Help the manager with tactical decisions."
	p.Tone.Style = "direct and practical"
	p.Tone.Personality = "confident, numbers-first"
	p.Constraints = []string{
		"Ground every recommendation in the provided data.",
		"Keep answers short enough to read on a dashboard panel.",
	}
	return p
}

// BuildSystemPrompt renders the persona as the instruction block that
// prefixes every narrative analysis request.
func (p *AdvisorPersona) BuildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Role: You are '%s', %s.\n", p.Persona.Name, p.Persona.Role))
	sb.WriteString(fmt.Sprintf("Language: %s.\n", p.Persona.Language))
	sb.WriteString(fmt.Sprintf("Task: %s\n", p.Persona.Task))

	if p.Tone.Style != "" || p.Tone.Personality != "" {
		sb.WriteString(fmt.Sprintf("Tone: %s, %s.\n", p.Tone.Style, p.Tone.Personality))
	}

	if len(p.Constraints) > 0 {
		sb.WriteString("Constraints:\n")
		for _, c := range p.Constraints {
			sb.WriteString(fmt.Sprintf("- %s\n", c))
		}
	}

	return sb.String()
}
