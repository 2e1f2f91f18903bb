package domain

// CompileRequest is the input of one transform step.
type CompileRequest struct {
	Input string
	// Output is where the tool writes the result. Empty means the
	// transformed source is returned inline.
	Output  string
	Minify  bool
	Defines map[string]Value
}

// NewCompileRequest derives the transform input from a resolved config.
func NewCompileRequest(c ResolvedConfig) CompileRequest {
	return CompileRequest{
		Input:   c.EntryFile,
		Output:  c.BuildOutput(),
		Minify:  c.Minify,
		Defines: c.Defines,
	}
}
