package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/taskvoice/models"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	yaml "gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

//go:embed tasks.schema.json
var taskListSchemaJSON string

var taskListSchema = jsonschema.MustCompileString("tasks.schema.json", taskListSchemaJSON)

// ParseFormat normalizes a data format name. An empty name means JSON.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported data format %q (supported: json, yaml, toml)", format)
	}
}

// encodeDocument serializes the task list in the given format.
// JSON output uses 2-space indentation and a trailing newline.
func encodeDocument(format string, list models.TaskList) ([]byte, error) {
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(list)
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(list); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", format)
	}
}

// decodeDocument parses data, checks it against the task file schema, and
// returns the typed document. Any failure here means the content is not a
// valid task document.
func decodeDocument(format string, data []byte) (models.TaskList, error) {
	var list models.TaskList

	generic, err := decodeGeneric(format, data)
	if err != nil {
		return list, err
	}
	if err := taskListSchema.Validate(generic); err != nil {
		return list, fmt.Errorf("invalid document shape: %w", err)
	}

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &list)
	case FormatYAML:
		err = yaml.Unmarshal(data, &list)
	case FormatTOML:
		err = toml.Unmarshal(data, &list)
	}
	if err != nil {
		return list, err
	}
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	return list, nil
}

// decodeGeneric decodes data into plain JSON values (maps, slices,
// json.Number) so the same schema applies to every format.
func decodeGeneric(format string, data []byte) (interface{}, error) {
	jsonData := data
	switch format {
	case FormatJSON:
	case FormatYAML:
		var v interface{}
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize YAML: %w", err)
		}
		jsonData = b
	case FormatTOML:
		var v map[string]interface{}
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("unmarshal TOML: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("normalize TOML: %w", err)
		}
		jsonData = b
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", format)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return v, nil
}
