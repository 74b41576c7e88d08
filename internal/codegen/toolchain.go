package codegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultCompiler is used when Options.Compiler is empty.
const DefaultCompiler = "cc"

type Options struct {
	Compiler string   // C compiler executable
	Output   string   // path of the produced binary
	Flags    []string // extra compiler flags, passed before libraries
	KeepC    bool     // keep the generated source next to Output
}

// Result describes a successful compilation.
type Result struct {
	Binary string
	CFile  string // empty unless Options.KeepC
	Log    string // compiler output, usually warnings
}

// ToolchainError reports a compiler that ran and failed, or could not run.
type ToolchainError struct {
	Compiler string
	Output   string
	Err      error
}

func (e *ToolchainError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Compiler, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Compiler, e.Err, e.Output)
}

func (e *ToolchainError) Unwrap() error {
	return e.Err
}

// Compile writes unit to disk and invokes the C compiler on it. The
// compiler process is killed when ctx is cancelled.
func Compile(ctx context.Context, unit *Unit, opts Options) (*Result, error) {
	if opts.Output == "" {
		return nil, fmt.Errorf("codegen: no output path")
	}
	compiler := opts.Compiler
	if compiler == "" {
		compiler = DefaultCompiler
	}

	cFile, cleanup, err := writeSource(unit, opts)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{cFile, "-o", opts.Output}
	args = append(args, opts.Flags...)
	for _, lib := range unit.Libraries {
		args = append(args, "-l"+lib)
	}

	log.Infof("compiling %s with %s", opts.Output, compiler)
	log.Debugf("%s %v", compiler, args)

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, compiler, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return nil, &ToolchainError{Compiler: compiler, Output: output.String(), Err: err}
	}

	result := &Result{Binary: opts.Output, Log: output.String()}
	if opts.KeepC {
		result.CFile = cFile
	}
	return result, nil
}

// writeSource stores the unit either beside the output binary or in a
// temporary directory that cleanup removes.
func writeSource(unit *Unit, opts Options) (string, func(), error) {
	if opts.KeepC {
		path := opts.Output + ".c"
		if err := os.WriteFile(path, []byte(unit.Source), 0o644); err != nil {
			return "", nil, fmt.Errorf("codegen: write C source: %w", err)
		}
		return path, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "uma-build-")
	if err != nil {
		return "", nil, fmt.Errorf("codegen: create build directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warningf("removing %s: %s", dir, err)
		}
	}

	path := filepath.Join(dir, "output.c")
	if err := os.WriteFile(path, []byte(unit.Source), 0o644); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("codegen: write C source: %w", err)
	}
	return path, cleanup, nil
}
