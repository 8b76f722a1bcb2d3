package entity

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Load reads an entity definition from path and validates it.
//
// The format follows the extension: ".cue" files are evaluated with CUE and
// must define an `entity` struct (or be the struct itself); ".yaml", ".yml"
// and ".json" files hold the definition at the top level.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entity file: %w", err)
	}

	var def *Definition
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		def, err = ParseCUE(path, data)
	case ".yaml", ".yml", ".json":
		def, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported entity file extension %q (want .cue, .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// ParseCUE evaluates CUE source and decodes its `entity` value.
// filename is used only in error positions.
func ParseCUE(filename string, data []byte) (*Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile CUE: %w", err)
	}

	if ev := v.LookupPath(cue.ParsePath("entity")); ev.Exists() {
		v = ev
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("entity must be concrete: %w", err)
	}

	var def Definition
	if err := v.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return &def, nil
}

// ParseYAML decodes a YAML (or JSON) definition. Unknown keys are rejected.
func ParseYAML(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}
	return &def, nil
}
