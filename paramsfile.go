// FILE: lixenwraith/options/paramsfile.go
package options

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/afero"
)

// maxParamsFileDepth bounds nested @file references. Params files may
// reference further params files; a chain deeper than this is treated as a
// read error rather than followed indefinitely.
const maxParamsFileDepth = 16

// expandParamsFiles splices the shell-quoted contents of every "@path" token
// in place of the marker, rescanning spliced tokens so params files may nest.
// "@@" escapes a literal leading "@". The relative order of non-marker tokens
// is preserved exactly.
func expandParamsFiles(fsys afero.Fs, tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	if err := expandInto(fsys, tokens, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func expandInto(fsys afero.Fs, tokens []string, depth int, out *[]string) error {
	for _, tok := range tokens {
		if !strings.HasPrefix(tok, "@") || len(tok) == 1 {
			*out = append(*out, tok)
			continue
		}
		if strings.HasPrefix(tok, "@@") {
			*out = append(*out, tok[1:])
			continue
		}

		path := tok[1:]
		if depth >= maxParamsFileDepth {
			return &ParamsFileReadError{Path: path,
				Err: fmt.Errorf("params files nested more than %d levels deep", maxParamsFileDepth)}
		}

		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return &ParamsFileReadError{Path: path, Err: err}
		}

		words, err := shellquote.Split(string(data))
		if err != nil {
			return &ParamsFileReadError{Path: path, Err: err}
		}

		if err := expandInto(fsys, words, depth+1, out); err != nil {
			return err
		}
	}
	return nil
}

// WriteParamsFile writes the parser's canonical token list to a params file,
// one shell-quoted token per line, atomically (temp file then rename). The
// written file round-trips through @file expansion and a re-parse to the
// same effective values.
func (p *Parser) WriteParamsFile(fsys afero.Fs, path string) error {
	var b strings.Builder
	for _, tok := range p.Canonicalize() {
		b.WriteString(shellquote.Join(tok))
		b.WriteString("\n")
	}
	return atomicWriteFile(fsys, path, []byte(b.String()))
}

// atomicWriteFile writes data to a temporary file in the target directory,
// syncs it, then renames it over the destination.
func atomicWriteFile(fsys afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := afero.TempFile(fsys, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer fsys.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := fsys.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	if err := fsys.Chmod(path, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	return nil
}
