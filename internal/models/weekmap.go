package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// WeekMap is a week label -> items mapping that keeps the order in which weeks
// appear on the wire. Plan payloads encode weeks as object keys and their order
// is the study order, so a plain Go map cannot carry them.
type WeekMap[T any] struct {
	Weeks   []string
	Entries map[string][]T
}

// Get returns the items stored for a week
func (m WeekMap[T]) Get(week string) []T {
	return m.Entries[week]
}

// Len returns the number of weeks
func (m WeekMap[T]) Len() int {
	return len(m.Weeks)
}

// Add appends a new week. Repeated labels are rejected.
func (m *WeekMap[T]) Add(week string, items []T) error {
	if m.Entries == nil {
		m.Entries = make(map[string][]T)
	}
	if _, exists := m.Entries[week]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateWeek, week)
	}
	if items == nil {
		items = []T{}
	}
	m.Weeks = append(m.Weeks, week)
	m.Entries[week] = items
	return nil
}

func (m WeekMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, week := range m.Weeks {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(week)
		if err != nil {
			return nil, err
		}
		items := m.Entries[week]
		if items == nil {
			items = []T{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("encoding week %q: %w", week, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *WeekMap[T]) UnmarshalJSON(data []byte) error {
	*m = WeekMap[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("week map: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		week, ok := tok.(string)
		if !ok {
			return fmt.Errorf("week map: expected string key, got %v", tok)
		}
		var items []T
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("decoding week %q: %w", week, err)
		}
		if err := m.Add(week, items); err != nil {
			return err
		}
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (m WeekMap[T]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, week := range m.Weeks {
		items := m.Entries[week]
		if items == nil {
			items = []T{}
		}
		val := &yaml.Node{}
		if err := val.Encode(items); err != nil {
			return nil, fmt.Errorf("encoding week %q: %w", week, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: week}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func (m *WeekMap[T]) UnmarshalYAML(value *yaml.Node) error {
	*m = WeekMap[T]{}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("week map: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var items []T
		if err := valNode.Decode(&items); err != nil {
			return fmt.Errorf("decoding week %q: %w", keyNode.Value, err)
		}
		if err := m.Add(keyNode.Value, items); err != nil {
			return err
		}
	}
	return nil
}
