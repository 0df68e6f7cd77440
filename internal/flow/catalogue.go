package flow

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptCatalogue map[string]*template.Template

var catalogue = mustLoadCatalogue(promptsYAML)

var templateFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	},
	"join": func(items []string, sep string) string {
		return strings.Join(items, sep)
	},
}

func loadCatalogue(data []byte) (promptCatalogue, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse prompt catalogue: %w", err)
	}

	c := make(promptCatalogue, len(raw))
	for name, text := range raw {
		tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %q: %w", name, err)
		}
		c[name] = tmpl
	}
	return c, nil
}

func mustLoadCatalogue(data []byte) promptCatalogue {
	c, err := loadCatalogue(data)
	if err != nil {
		panic(err)
	}
	return c
}

func (c promptCatalogue) template(name string) *template.Template {
	t, ok := c[name]
	if !ok {
		panic(fmt.Sprintf("prompt %q missing from catalogue", name))
	}
	return t
}
