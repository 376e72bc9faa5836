//go:build generate

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	iyaml "github.com/invopop/yaml"
	"github.com/mcuadros/go-defaults"

	"github.com/theopenlane/utils/envparse"

	"github.com/pagelens/pagelens/config"
)

const (
	// tagName is the struct tag the schema reflector keys field names on
	tagName = "koanf"
	// skipper marks a field as excluded from generation
	skipper = "-"
	// defaultTag carries the default value rendered into examples
	defaultTag = "default"
	// sensitiveTag marks credentials that must not get a default in examples
	sensitiveTag = "sensitive"
	// varPrefix is the environment variable prefix
	varPrefix = "PAGELENS"

	schemaPath      = "./jsonschema/pagelens.config.json"
	exampleYAMLPath = "./config/config.example.yaml"
	exampleEnvPath  = "./config/.env.example"

	ownerReadWrite = 0600
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run regenerates the config JSON schema and the example YAML/env files
// from the config struct tags and doc comments.
func run() error {
	cfg := &config.Config{}
	defaults.SetDefaults(cfg)

	comments, err := collectComments("./config")
	if err != nil {
		return err
	}

	if err := writeSchema(cfg, comments); err != nil {
		return err
	}

	if err := writeExampleYAML(cfg); err != nil {
		return err
	}

	return writeExampleEnv(cfg)
}

// collectComments parses Go doc comments from the given packages so they can
// serve as schema descriptions.
func collectComments(packages ...string) (map[string]string, error) {
	r := &jsonschema.Reflector{}

	for _, pkg := range packages {
		if err := r.AddGoComments("github.com/pagelens/pagelens/", pkg); err != nil {
			return nil, fmt.Errorf("parsing comments in %s: %w", pkg, err)
		}
	}

	if r.CommentMap == nil {
		return map[string]string{}, nil
	}

	return r.CommentMap, nil
}

func writeSchema(cfg *config.Config, comments map[string]string) error {
	r := jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               tagName,
		CommentMap:                 comments,
	}

	data, err := json.MarshalIndent(r.Reflect(cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}

	return writeOut(schemaPath, data)
}

func writeExampleYAML(cfg *config.Config) error {
	data, err := iyaml.Marshal(flatten(reflect.ValueOf(cfg).Elem()))
	if err != nil {
		return fmt.Errorf("marshaling example yaml: %w", err)
	}

	return writeOut(exampleYAMLPath, data)
}

// flatten converts a config struct into a map keyed by koanf tags, rendering
// durations as strings so the example file stays human readable.
func flatten(v reflect.Value) map[string]any {
	v = reflect.Indirect(v)
	t := v.Type()
	out := make(map[string]any)

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key := field.Tag.Get(tagName)
		if key == "" || key == skipper {
			continue
		}

		out[key] = yamlValue(v.Field(i))
	}

	return out
}

func yamlValue(v reflect.Value) any {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return nil
	}

	if isDuration(v.Type()) {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.Struct:
		return flatten(v)
	case reflect.Slice, reflect.Array:
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, yamlValue(v.Index(i)))
		}

		return items
	default:
		return v.Interface()
	}
}

func writeExampleEnv(cfg *config.Config) error {
	parser := envparse.Config{
		FieldTagName: tagName,
		Skipper:      skipper,
	}

	vars, err := parser.GatherEnvInfo(varPrefix, cfg)
	if err != nil {
		return fmt.Errorf("gathering env info: %w", err)
	}

	var b strings.Builder

	for _, v := range vars {
		if v.Tags.Get(sensitiveTag) == "true" {
			b.WriteString(fmt.Sprintf("# %s is sensitive and should be set securely\n", v.Key))
			b.WriteString(fmt.Sprintf("%s=\"\"\n", v.Key))

			continue
		}

		val := v.Tags.Get(defaultTag)

		// normalize durations so 90s renders as 1m30s, matching what the
		// service logs at startup
		if isDuration(v.Type) && val != "" {
			if d, parseErr := time.ParseDuration(val); parseErr == nil {
				val = d.String()
			}
		}

		b.WriteString(fmt.Sprintf("%s=\"%s\"\n", v.Key, val))
	}

	return writeOut(exampleEnvPath, []byte(b.String()))
}

func writeOut(path string, data []byte) error {
	if err := os.WriteFile(path, data, ownerReadWrite); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("wrote %s\n", path)

	return nil
}

func isDuration(t reflect.Type) bool {
	return t == reflect.TypeOf(time.Duration(0))
}
