package driver

import (
	"monoforce/internal/diag"
	"monoforce/internal/lexer"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file from disk.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(fs, fileID, maxDiagnostics), nil
}

// TokenizeFile lexes a file already in fs.
func TokenizeFile(fs *source.FileSet, id source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
