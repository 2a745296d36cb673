package config

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Specification of output file naming mode.
type NamingMode int

const (
	NamingModeTitle NamingMode = iota
	NamingModeURL
	NamingModeFixed
)

var namingModeNames = map[NamingMode]string{
	NamingModeTitle: "title",
	NamingModeURL:   "url",
	NamingModeFixed: "fixed",
}

func (m NamingMode) String() string {
	if s, ok := namingModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("NamingMode(%d)", int(m))
}

func (m NamingMode) MarshalText() ([]byte, error) {
	s, ok := namingModeNames[m]
	if !ok {
		return nil, fmt.Errorf("%d is not a valid NamingMode", int(m))
	}
	return []byte(s), nil
}

func (m *NamingMode) UnmarshalText(text []byte) error {
	for v, s := range namingModeNames {
		if s == string(text) {
			*m = v
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid NamingMode", string(text))
}

func (m NamingMode) MarshalYAML() (interface{}, error) {
	text, err := m.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func (m *NamingMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(s))
}
