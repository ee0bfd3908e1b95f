package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Extensions lists the document formats Unmarshal understands, in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml", ".json"}

// Unmarshal decodes a YAML, TOML or JSON document into a generic map.
// The format is picked from the file extension ext (e.g. ".yaml").
func Unmarshal(ext string, data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", ext)
	}
	return raw, nil
}
