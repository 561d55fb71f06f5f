package driver

import (
	"klarlint/internal/lexer"
	"klarlint/internal/parser"
	"klarlint/internal/source"
)

// ParsePath loads one file and runs the structural parser over it.
func ParsePath(path string) (*source.FileSet, *source.File, parser.Result, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, parser.Result{}, err
	}
	file := fileSet.Get(id)
	tokens := lexer.Tokenize(file)
	return fileSet, file, parser.ParseFile(fileSet, file, tokens), nil
}
