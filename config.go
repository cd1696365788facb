// (c) Copyright secureai's authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secureai

import (
	"errors"
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// GlobalSection is the config key holding scanner-wide options.
const GlobalSection = "global"

// ErrGlobalOptionNotFound is returned when a requested global option is not
// set.
var ErrGlobalOptionNotFound = errors.New("global option not found")

// Config holds scanner-wide and per-rule options. Rule sections are keyed
// by rule ID; their shape is rule-defined.
type Config map[string]any

// NewConfig initializes a configuration with an empty global section.
func NewConfig() Config {
	return Config{GlobalSection: map[string]any{}}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := NewConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// Get returns the raw section stored under a key.
func (c Config) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// Set stores a section under a key.
func (c Config) Set(key string, value any) {
	c[key] = value
}

// GetGlobal returns a global option as a string.
func (c Config) GetGlobal(option string) (string, error) {
	section, ok := c[GlobalSection]
	if !ok {
		return "", ErrGlobalOptionNotFound
	}
	m, ok := section.(map[string]any)
	if !ok {
		return "", ErrGlobalOptionNotFound
	}
	v, ok := m[option]
	if !ok {
		return "", ErrGlobalOptionNotFound
	}
	return fmt.Sprintf("%v", v), nil
}

// SetGlobal stores a global option.
func (c Config) SetGlobal(option string, value any) {
	section, ok := c[GlobalSection].(map[string]any)
	if !ok {
		section = map[string]any{}
		c[GlobalSection] = section
	}
	section[option] = value
}

// RuleOption looks up a per-rule option, e.g. a custom pattern for AI005.
func (c Config) RuleOption(ruleID, option string) (any, bool) {
	section, ok := c[ruleID]
	if !ok {
		return nil, false
	}
	m, ok := section.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[option]
	return v, ok
}
