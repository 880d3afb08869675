package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/depgen"
	"github.com/wippyai/depgen/codegen"
	"github.com/wippyai/depgen/dependency"
	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/runtime"
)

// manifest is the YAML build description read by the CLI.
type manifest struct {
	Resolve map[string]string `yaml:"resolve"`
	IDs     map[string]string `yaml:"ids"`
	Modules []moduleSpec      `yaml:"modules"`
}

type moduleSpec struct {
	ID           string           `yaml:"id"`
	Source       string           `yaml:"source"`
	Dependencies []dependencySpec `yaml:"dependencies"`
}

type dependencySpec struct {
	Kind         string   `yaml:"kind"`
	Request      string   `yaml:"request"`
	Identifier   string   `yaml:"identifier"`
	Expression   string   `yaml:"expression"`
	Path         []string `yaml:"path"`
	Range        []int    `yaml:"range"`
	Requirements []string `yaml:"requirements"`
}

func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseManifest, errors.KindNotFound, err, "open manifest")
	}
	defer f.Close()
	return parseManifest(f)
}

func parseManifest(r io.Reader) (*manifest, error) {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.PhaseManifest, errors.KindInvalidData, err, "decode manifest")
	}
	return &m, nil
}

type module string

func (m module) Identifier() string { return string(m) }

// graph resolves requests through the manifest's resolve table.
type graph map[string]string

func (g graph) Module(dep dependency.Dependency) depgen.Module {
	id, ok := g[dep.Request()]
	if !ok {
		return nil
	}
	return module(id)
}

// chunks maps module ids to runtime ids; unmapped modules use their own id.
type chunks map[string]string

func (c chunks) ModuleID(m depgen.Module) (string, bool) {
	if id, ok := c[m.Identifier()]; ok {
		return id, true
	}
	return m.Identifier(), true
}

// inputs converts the manifest modules into codegen inputs.
func (m *manifest) inputs() ([]codegen.Input, error) {
	out := make([]codegen.Input, 0, len(m.Modules))
	for _, ms := range m.Modules {
		if ms.ID == "" {
			return nil, errors.InvalidInput(errors.PhaseManifest, "module without id")
		}
		deps := make([]dependency.Dependency, 0, len(ms.Dependencies))
		for i, ds := range ms.Dependencies {
			d, err := ds.build()
			if err != nil {
				return nil, errors.New(errors.PhaseManifest, errors.KindInvalidInput).
					Module(ms.ID).
					Detail("dependency %d", i).
					Cause(err).
					Build()
			}
			deps = append(deps, d)
		}
		out = append(out, codegen.Input{
			Module:       module(ms.ID),
			Source:       ms.Source,
			Dependencies: deps,
		})
	}
	return out, nil
}

func (ds dependencySpec) rng() (*dependency.Range, error) {
	switch len(ds.Range) {
	case 0:
		return nil, nil
	case 2:
		return &dependency.Range{Start: ds.Range[0], End: ds.Range[1]}, nil
	default:
		return nil, fmt.Errorf("range needs 2 bounds, got %d", len(ds.Range))
	}
}

func (ds dependencySpec) build() (dependency.Dependency, error) {
	rng, err := ds.rng()
	if err != nil {
		return nil, err
	}
	switch ds.Kind {
	case "module":
		return dependency.NewModule(ds.Request, rng), nil
	case "provided":
		if rng == nil || ds.Identifier == "" {
			return nil, fmt.Errorf("provided dependency needs identifier and range")
		}
		return dependency.NewProvided(ds.Request, ds.Identifier, ds.Path, *rng), nil
	case "require":
		if rng == nil {
			return nil, fmt.Errorf("require dependency needs a range")
		}
		return dependency.NewRequire(ds.Request, *rng), nil
	case "const":
		reqs := make([]runtime.Requirement, len(ds.Requirements))
		for i, r := range ds.Requirements {
			reqs[i] = runtime.Requirement(r)
		}
		return dependency.NewConst(ds.Expression, rng, reqs...), nil
	default:
		return nil, fmt.Errorf("unknown dependency kind %q", ds.Kind)
	}
}
