package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"summer/internal/humantime"
	"summer/internal/style"
)

// When controls when the output is styled.
type When int

const (
	WhenAuto When = iota
	WhenAlways
	WhenNever
)

var whenNames = [...]string{WhenAuto: "auto", WhenAlways: "always", WhenNever: "never"}

func (w When) String() string {
	if w < 0 || int(w) >= len(whenNames) {
		return fmt.Sprintf("When(%d)", int(w))
	}
	return whenNames[w]
}

// ParseWhen parses "auto", "always" or "never".
func ParseWhen(s string) (When, error) {
	for i, name := range whenNames {
		if name == s {
			return When(i), nil
		}
	}
	return 0, fmt.Errorf("invalid value %q: expected auto, always or never", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *When) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	v, err := ParseWhen(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*w = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (w When) MarshalYAML() (any, error) {
	return w.String(), nil
}

// DefaultLsColorsVar is the environment variable read for the color
// scheme of file names.
const DefaultLsColorsVar = "LS_COLORS"

// LsColors selects the environment variable with the color scheme for
// file names. In YAML it is a boolean or the name of the variable. The
// zero value reads LS_COLORS.
type LsColors struct {
	Disabled bool
	VarName  string
}

// Variable returns the name of the environment variable to read. The
// boolean is false when the color scheme is disabled.
func (l LsColors) Variable() (string, bool) {
	if l.Disabled {
		return "", false
	}
	if l.VarName == "" {
		return DefaultLsColorsVar, true
	}
	return l.VarName, true
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *LsColors) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: use_lscolors must be a boolean or a variable name", node.Line)
	}

	var enabled bool
	if node.Tag == "!!bool" && node.Decode(&enabled) == nil {
		*l = LsColors{Disabled: !enabled}
		return nil
	}

	*l = LsColors{VarName: node.Value}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l LsColors) MarshalYAML() (any, error) {
	switch {
	case l.Disabled:
		return false, nil
	case l.VarName != "":
		return l.VarName, nil
	}
	return true, nil
}

// IsZero is used by the YAML encoder to omit the default value.
func (l LsColors) IsZero() bool {
	return !l.Disabled && l.VarName == ""
}

// Content is a text with an optional color. In YAML it is either a plain
// string or a mapping with the keys text and color.
type Content struct {
	Text  string
	Color *style.Color
}

type contentFields struct {
	Text  string       `yaml:"text"`
	Color *style.Color `yaml:"color,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Content) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = Content{Text: node.Value}
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a string or a mapping with text and color", node.Line)
	}

	for i := 0; i < len(node.Content); i += 2 {
		switch key := node.Content[i]; key.Value {
		case "text", "color":
		default:
			return fmt.Errorf("line %d: field %s not found in type config.Content", key.Line, key.Value)
		}
	}

	var f contentFields
	if err := node.Decode(&f); err != nil {
		return err
	}

	*c = Content(f)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Content) MarshalYAML() (any, error) {
	if c.Color == nil {
		return c.Text, nil
	}
	return contentFields(c), nil
}

// Timeout is the time the collectors can use. In YAML it is a duration,
// or "none" to wait until the collectors finish.
type Timeout struct {
	humantime.Duration
	None bool
}

// Value returns the timeout, or nil if there is none.
func (t Timeout) Value() *time.Duration {
	if t.None {
		return nil
	}
	d := t.Duration.Duration
	return &d
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Timeout) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Value == "none" {
		*t = Timeout{None: true}
		return nil
	}

	var d humantime.Duration
	if err := node.Decode(&d); err != nil {
		return err
	}

	*t = Timeout{Duration: d}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Timeout) MarshalYAML() (any, error) {
	if t.None {
		return "none", nil
	}
	return t.Duration.MarshalYAML()
}
