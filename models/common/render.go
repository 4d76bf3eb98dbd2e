package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/envfile"
	"github.com/roastproject/roast-env/schema"
	"gopkg.in/yaml.v3"
)

const redactedMask = "****"

// RenderOptions controls how Render prints the effective settings.
type RenderOptions struct {
	Format      string
	ShowSecrets bool
	Origin      bool
}

// keyOrigin is one key's entry in the json and yaml formats when
// origins are requested.
type keyOrigin struct {
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

// Render writes every recognized key's effective value to w in the
// requested format. Secrets are masked unless ShowSecrets is set;
// Origin annotates each key with the layer its value came from.
func (s *Settings) Render(w io.Writer, opts RenderOptions) error {
	switch opts.Format {
	case constants.FormatEnv, "":
		return s.renderEnv(w, opts)
	case constants.FormatJSON:
		return s.renderJSON(w, opts)
	case constants.FormatYAML:
		return s.renderYAML(w, opts)
	}
	return fmt.Errorf("unknown format %q; use env, json or yaml", opts.Format)
}

// DisplayValue returns a key's effective value, masked when the key
// is secret and showSecrets is false.
func (s *Settings) DisplayValue(key string, showSecrets bool) string {
	value := s.raw[key]
	if showSecrets || value == "" {
		return value
	}
	def, ok := schema.Lookup(key)
	if !ok || !def.Secret {
		return value
	}
	switch key {
	case constants.EnvAWSAccessKeyID:
		// Keep a short prefix so operators can tell keys apart.
		if len(value) > 4 {
			return value[:4] + redactedMask
		}
		return redactedMask
	case constants.EnvDatabaseURL:
		return RedactURL(value)
	}
	return redactedMask
}

func (s *Settings) renderEnv(w io.Writer, opts RenderOptions) error {
	doc := &envfile.Document{}
	for _, def := range schema.Registry() {
		doc.Set(def.Name, s.DisplayValue(def.Name, opts.ShowSecrets))
	}
	if opts.Origin {
		for _, line := range doc.Pairs() {
			line.Raw = fmt.Sprintf("%s # %s", line.Raw, s.Source(line.Key))
		}
	}
	return doc.Write(w)
}

func (s *Settings) renderJSON(w io.Writer, opts RenderOptions) error {
	data, err := json.MarshalIndent(s.displayMap(opts), "", "  ")
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func (s *Settings) renderYAML(w io.Writer, opts RenderOptions) error {
	data, err := yaml.Marshal(s.displayMap(opts))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// displayMap builds the flat key map the json and yaml formats
// share. Map keys marshal in sorted order in both encoders.
func (s *Settings) displayMap(opts RenderOptions) interface{} {
	if opts.Origin {
		entries := make(map[string]keyOrigin, len(constants.EnvKeys))
		for _, def := range schema.Registry() {
			entries[def.Name] = keyOrigin{
				Value:  s.DisplayValue(def.Name, opts.ShowSecrets),
				Source: string(s.Source(def.Name)),
			}
		}
		return entries
	}
	values := make(map[string]string, len(constants.EnvKeys))
	for _, def := range schema.Registry() {
		values[def.Name] = s.DisplayValue(def.Name, opts.ShowSecrets)
	}
	return values
}
