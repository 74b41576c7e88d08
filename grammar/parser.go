package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var programParser = participle.MustBuild[Program](
	participle.Lexer(UmaLexer),
	keywordMapper,
	participle.Elide("Whitespace"),
	participle.UseLookahead(participle.MaxLookahead),
)

// Parse reads source with the declarative grammar. filename only labels
// positions.
func Parse(filename, source string) (*Program, error) {
	program, err := programParser.ParseString(filename, source)
	if err != nil {
		return nil, err
	}
	if err := checkParams(program.Statements); err != nil {
		return nil, err
	}
	return program, nil
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// checkParams rejects a function that names the same parameter twice,
// including functions nested in bodies.
func checkParams(stmts []*Statement) error {
	for _, s := range stmts {
		if s.Function == nil {
			continue
		}
		seen := make(map[string]bool, len(s.Function.Params))
		for _, param := range s.Function.Params {
			if seen[param.Name.Value] {
				return participle.Errorf(param.Name.Pos, "duplicate argument `%s`", param.Name.Value)
			}
			seen[param.Name.Value] = true
		}
		if block := s.Function.Body.Block; block != nil {
			if err := checkParams(block.Statements); err != nil {
				return err
			}
		}
	}
	return nil
}
