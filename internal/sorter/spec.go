package sorter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Key is the property used to sort the entries of a group.
type Key int

const (
	ByName Key = iota
	ByModificationTime
	ByDeepModificationTime
	BySize
	ByVersion
)

var keyNames = map[Key]string{
	ByName:                 "name",
	ByModificationTime:     "modification_time",
	ByDeepModificationTime: "deep_modification_time",
	BySize:                 "size",
	ByVersion:              "version",
}

var keyAliases = map[string]Key{
	"mtime":      ByModificationTime,
	"deep_mtime": ByDeepModificationTime,
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey parses the name of a sort key.
func ParseKey(s string) (Key, error) {
	if k, ok := keyAliases[s]; ok {
		return k, nil
	}

	for k, name := range keyNames {
		if name == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown sort key %q", s)
}

// Order is the direction of a sort.
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// Spec is a sort key with its direction. The zero Spec sorts by name in
// ascending order.
type Spec struct {
	Key   Key
	Order Order
}

// ParseSpec parses a "<key> [asc|desc]" string.
func ParseSpec(s string) (Spec, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Spec{}, fmt.Errorf("invalid sort %q: expected \"<key> [asc|desc]\"", s)
	}

	key, err := ParseKey(fields[0])
	if err != nil {
		return Spec{}, err
	}

	spec := Spec{Key: key}
	if len(fields) == 2 {
		switch fields[1] {
		case "asc":
		case "desc":
			spec.Order = Desc
		default:
			return Spec{}, fmt.Errorf("invalid sort order %q", fields[1])
		}
	}

	return spec, nil
}

func (s Spec) String() string {
	return s.Key.String() + " " + s.Order.String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return err
	}

	spec, err := ParseSpec(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*s = spec
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Spec) MarshalYAML() (any, error) {
	return s.String(), nil
}
