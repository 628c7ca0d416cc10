package layers

import "fmt"

// MarshalYAML writes a spec as a [material, thickness] pair.
func (s Spec) MarshalYAML() (interface{}, error) {
	return []interface{}{s.Material, s.Thickness}, nil
}

// UnmarshalYAML reads a [material, thickness] pair.
func (s *Spec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var pair []interface{}
	if err := unmarshal(&pair); err != nil {
		return fmt.Errorf("layer must be a [material, thickness] pair: %v", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("layer must be a [material, thickness] pair, got %d elements", len(pair))
	}

	name, ok := pair[0].(string)
	if !ok {
		return fmt.Errorf("layer material must be a string, got %T", pair[0])
	}

	var thickness float64
	switch v := pair[1].(type) {
	case int:
		thickness = float64(v)
	case int64:
		thickness = float64(v)
	case uint64:
		thickness = float64(v)
	case float64:
		thickness = v
	default:
		return fmt.Errorf("layer %q thickness must be a number, got %T", name, pair[1])
	}

	s.Material = name
	s.Thickness = thickness
	return nil
}
