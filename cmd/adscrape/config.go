package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAMLResolver loads flag defaults from a YAML document. Top-level keys
// apply to every command; a mapping named after a command overrides them
// for that command:
//
//	rps: 0.5
//	scrape:
//	  retries: 5
//	list:
//	  limit: 50
func YAMLResolver(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if section, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := section[flag.Name]; ok {
					return v, nil
				}
			}
		}
		v, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		if _, isSection := v.(map[string]any); isSection {
			return nil, nil
		}
		return v, nil
	}
	return f, nil
}
