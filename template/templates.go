package template

import (
	"fmt"
	"strings"

	"github.com/wippyai/depgen/dependency"
	"github.com/wippyai/depgen/errors"
	"github.com/wippyai/depgen/initfragment"
	"github.com/wippyai/depgen/runtime"
	"github.com/wippyai/depgen/source"
)

// ProvidedPriority orders provided declarations within StageProvides.
const ProvidedPriority = 1

// RenderPath renders path as bracketed property accesses with each segment
// as a JSON string literal: ["a","b"] becomes ["a"]["b"]. Nil or empty
// paths render as "".
func RenderPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range path {
		sb.WriteByte('[')
		sb.WriteString(runtime.Quote(p))
		sb.WriteByte(']')
	}
	return sb.String()
}

// ProvidedKey is the fragment key that collapses repeated declarations of
// identifier within one module.
func ProvidedKey(identifier string) string {
	return "provided " + identifier
}

func applyProvided(dep dependency.Dependency, src *source.ReplaceSource, ctx *Context) error {
	d, ok := dep.(*dependency.ProvidedDependency)
	if !ok {
		return wrongVariant(ctx, dep, dependency.KindProvided)
	}
	expr := ctx.moduleExports(d) + RenderPath(d.Path)
	ctx.Fragments.Add(initfragment.Fragment{
		Content:  fmt.Sprintf("/* provided dependency */ var %s = %s;\n", d.Identifier, expr),
		Stage:    initfragment.StageProvides,
		Priority: ProvidedPriority,
		Key:      ProvidedKey(d.Identifier),
	})
	if r := d.Range(); r != nil {
		src.Replace(r.Start, r.End, d.Identifier)
	}
	return nil
}

func applyRequire(dep dependency.Dependency, src *source.ReplaceSource, ctx *Context) error {
	d, ok := dep.(*dependency.RequireDependency)
	if !ok {
		return wrongVariant(ctx, dep, dependency.KindRequire)
	}
	expr := ctx.moduleExports(d)
	if r := d.Range(); r != nil {
		src.Replace(r.Start, r.End, expr)
	}
	return nil
}

func applyConst(dep dependency.Dependency, src *source.ReplaceSource, ctx *Context) error {
	d, ok := dep.(*dependency.ConstDependency)
	if !ok {
		return wrongVariant(ctx, dep, dependency.KindConst)
	}
	ctx.Requirements.Add(d.Requirements...)
	if r := d.Range(); r != nil {
		src.Replace(r.Start, r.End, d.Expression)
	}
	return nil
}

// applyModule emits nothing; plain module edges only affect hashing.
func applyModule(dependency.Dependency, *source.ReplaceSource, *Context) error {
	return nil
}

func wrongVariant(ctx *Context, dep dependency.Dependency, want dependency.Kind) error {
	return errors.New(errors.PhaseCodegen, errors.KindInvalidInput).
		Module(ctx.ModuleID()).
		Request(dep.Request()).
		Detail("%s template applied to %T", want, dep).
		Build()
}
