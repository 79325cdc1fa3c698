package matcher

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"summer/internal/humantime"
	"summer/internal/mimetype"
)

func nodeError(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", node.Line, fmt.Sprintf(format, args...))
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
// A matcher is either the string "any", or a mapping with a single key
// naming its kind:
//
//	- any
//	- all: [ ... ]
//	- changes: git | <duration>
//	- glob: <pattern> | [ <pattern>, ... ]
//	- mime: <type>
//	- not: <matcher>
//	- regex: <expression>
//	- type: <file type>
func (m *Matcher) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "any" {
			*m = Any()
			return nil
		}
		return nodeError(node, "unknown matcher %q", node.Value)

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nodeError(node, "a matcher must have exactly one key")
		}

	default:
		return nodeError(node, "invalid matcher")
	}

	key, value := node.Content[0].Value, node.Content[1]

	switch key {
	case "any":
		*m = Any()

	case "all":
		var all []Matcher
		if err := value.Decode(&all); err != nil {
			return err
		}
		*m = All(all...)

	case "changes":
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}

		if s == "git" {
			*m = ChangedInGit()
			return nil
		}

		var d humantime.Duration
		if err := value.Decode(&d); err != nil {
			return err
		}
		*m = Matcher{Kind: KindChanges, Changes: Changes{Within: d}}

	case "glob":
		var patterns []string
		if value.Kind == yaml.ScalarNode {
			patterns = []string{value.Value}
		} else if err := value.Decode(&patterns); err != nil {
			return err
		}

		g, err := Glob(patterns...)
		if err != nil {
			return nodeError(value, "%v", err)
		}
		*m = g

	case "mime":
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}

		t := mimetype.Type(s)
		if !mimetype.Known(t) {
			return nodeError(value, "unknown MIME type %q", s)
		}
		*m = Mime(t)

	case "not":
		var inner Matcher
		if err := value.Decode(&inner); err != nil {
			return err
		}
		*m = Not(inner)

	case "regex":
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}

		r, err := Regex(s)
		if err != nil {
			return nodeError(value, "%v", err)
		}
		*m = r

	case "type":
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}

		t, err := ParseFileType(s)
		if err != nil {
			return nodeError(value, "%v", err)
		}
		*m = Type(t)

	default:
		return nodeError(node, "unknown matcher %q", key)
	}

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Matcher) MarshalYAML() (any, error) {
	switch m.Kind {
	case KindAny:
		return "any", nil

	case KindAll:
		return map[string][]Matcher{"all": m.All}, nil

	case KindChanges:
		if m.Changes.Git {
			return map[string]string{"changes": "git"}, nil
		}
		return map[string]humantime.Duration{"changes": m.Changes.Within}, nil

	case KindGlob:
		if len(m.Globs) == 1 {
			return map[string]string{"glob": m.Globs[0]}, nil
		}
		return map[string][]string{"glob": m.Globs}, nil

	case KindMime:
		return map[string]mimetype.Type{"mime": m.Mime}, nil

	case KindNot:
		if m.Not == nil {
			return nil, fmt.Errorf("not: missing matcher")
		}
		return map[string]Matcher{"not": *m.Not}, nil

	case KindRegex:
		if m.Regex == nil {
			return nil, fmt.Errorf("regex: missing expression")
		}
		return map[string]string{"regex": m.Regex.String()}, nil

	case KindType:
		return map[string]string{"type": m.Type.String()}, nil
	}

	return nil, fmt.Errorf("unknown matcher kind %v", m.Kind)
}
