package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultAssistantName  = "Real estate Analyzer"
	defaultAssistantModel = "gpt-4-turbo-preview"
	defaultInstructions   = "You are a helpful and highly skilled AI assistant trained in language comprehension and summarization. " +
		"Be sure not to mention if there is any issues with reading the file. Answer questions about the json file provided:"
)

// Profile describes the remote assistant created for the session.
type Profile struct {
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"`
	Model        string `yaml:"model"`
}

// DefaultProfile returns the built-in real estate assistant.
func DefaultProfile() Profile {
	return Profile{
		Name:         defaultAssistantName,
		Instructions: defaultInstructions,
		Model:        defaultAssistantModel,
	}
}

func (p Profile) withDefaults(def Profile) Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Instructions = strings.TrimSpace(p.Instructions)
	p.Model = strings.TrimSpace(p.Model)
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Instructions == "" {
		p.Instructions = def.Instructions
	}
	if p.Model == "" {
		p.Model = def.Model
	}
	return p
}

// LoadProfile reads an assistant profile. Two layouts are accepted: a plain
// YAML document, or Markdown with YAML front matter whose body becomes the
// instructions. Fields left empty keep their built-in defaults.
func LoadProfile(path string) (Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}

	p, err := parseProfile(content)
	if err != nil {
		return Profile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p.withDefaults(DefaultProfile()), nil
}

func parseProfile(content []byte) (Profile, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		var p Profile
		if err := yaml.Unmarshal(content, &p); err != nil {
			return Profile{}, err
		}
		return p, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return Profile{}, fmt.Errorf("unterminated YAML front matter")
	}

	var p Profile
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &p); err != nil {
		return Profile{}, err
	}
	if body := strings.TrimSpace(strings.Join(lines[end+1:], "\n")); body != "" {
		p.Instructions = body
	}
	return p, nil
}
