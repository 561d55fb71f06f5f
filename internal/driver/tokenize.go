package driver

import (
	"klarlint/internal/lexer"
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// TokenizeFile loads one file and returns its full token stream,
// comments and EOF included.
func TokenizeFile(path string) (*source.FileSet, *source.File, []token.Token, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	file := fileSet.Get(id)
	return fileSet, file, lexer.Tokenize(file), nil
}
