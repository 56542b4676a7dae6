package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrEmptyScript = errors.New("script has no steps")

// Script is a sequence of snapshots of a list.
type Script struct {
	// Key names the field identifying items that are mappings. Scalars are their own key.
	Key   string  `yaml:"key"`
	Steps [][]any `yaml:"steps"`
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	if len(s.Steps) == 0 {
		return nil, ErrEmptyScript
	}

	return &s, nil
}

// KeyOf returns the identity of item within a step.
func (s *Script) KeyOf(item any) string {
	if m, ok := item.(map[string]any); ok && s.Key != "" {
		if k, ok := m[s.Key]; ok {
			return fmt.Sprint(k)
		}
	}

	return fmt.Sprint(item)
}
