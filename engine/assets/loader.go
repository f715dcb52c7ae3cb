package assets

// SourceLoader returns the text of a shader source file.
type SourceLoader interface {
	LoadSource(path string) (string, error)
}
