package depgen

// Module is a handle to a module in the module graph.
type Module interface {
	// Identifier returns the module's unique, stable identifier.
	Identifier() string
}

// ChunkGraph maps modules to their ids in emitted output.
// depgen passes it through to access-expression helpers without inspecting it.
type ChunkGraph interface {
	// ModuleID returns the runtime id of m, or false when m has none yet.
	ModuleID(m Module) (string, bool)
}
