// Package template turns recorded dependencies into source edits.
//
// Each dependency variant has one stateless Template, looked up by the
// variant's Kind in a Registry. A template may:
//
//   - replace the dependency's range in the module source
//   - add init fragments to the module prologue
//   - record runtime requirements the emitted code needs
//
// All mutable state flows through Context, so one Template instance serves
// every dependency of its variant across concurrently generated modules.
//
// # Usage
//
//	reg := template.DefaultRegistry()
//	tmpl := reg.Get(dep.Kind())
//	if tmpl == nil {
//	    return errors.MissingTemplate(mod.Identifier(), dep.Kind().String())
//	}
//	if err := tmpl.Apply(dep, src, ctx); err != nil {
//	    return err
//	}
package template
