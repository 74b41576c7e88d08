// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"uma/internal/ast"
	"uma/internal/errors"
	"uma/internal/parser"
)

const PROMPT = ">> "

// Start reads one line at a time from in, parses it and writes the AST or
// the rendered diagnostic to out. It returns when in is exhausted.
func Start(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		stmts, err := parser.ParseSource(line)
		if err != nil {
			fmt.Fprint(out, errors.NewErrorReporter("<repl>", line).Format(err))
			continue
		}

		fmt.Fprintf(out, "AST:\n%s", ast.Format(stmts))
	}
}
