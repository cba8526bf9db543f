package buffer

import (
	"path/filepath"
	"regexp"
	"strings"
)

type Syntax uint8

const (
	Default Syntax = iota
	Keyword
	Builtin
	String
	Comment
	Definition
)

func (s Syntax) String() string {
	switch s {
	case Keyword:
		return "keyword"
	case Builtin:
		return "builtin"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Definition:
		return "definition"
	default:
		return "default"
	}
}

// A Rule colors every match of Pattern as Syntax. When the Pattern has a
// capture group, only the first group is colored and the rest of the match
// is left to other rules.
type Rule struct {
	Pattern *regexp.Regexp
	Syntax  Syntax
}

type Language struct {
	Name      string
	Filetypes []string // .go, .py, etc.
	Rules     []Rule   // Earlier rules win when two matches start at the same column
}

func words(list ...string) string {
	return `\b(?:` + strings.Join(list, "|") + `)\b`
}

var Python = &Language{
	Name:      "Python",
	Filetypes: []string{".py", ".pyw"},
	Rules: []Rule{
		{regexp.MustCompile(`#.*`), Comment},
		{regexp.MustCompile(`[rRbBuUfF]{0,2}("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')`), String},
		{regexp.MustCompile(`\b(?:def|class)\s+([A-Za-z_]\w*)`), Definition},
		{regexp.MustCompile(words("False", "None", "True", "and", "as", "assert", "async", "await",
			"break", "class", "continue", "def", "del", "elif", "else", "except", "finally", "for",
			"from", "global", "if", "import", "in", "is", "lambda", "nonlocal", "not", "or", "pass",
			"raise", "return", "try", "while", "with", "yield")), Keyword},
		{regexp.MustCompile(words("abs", "all", "any", "bool", "bytes", "dict", "dir", "enumerate",
			"filter", "float", "format", "getattr", "hasattr", "input", "int", "isinstance", "iter",
			"len", "list", "map", "max", "min", "next", "object", "open", "print", "range", "repr",
			"reversed", "round", "set", "setattr", "sorted", "str", "sum", "super", "tuple", "type",
			"zip")), Builtin},
	},
}

var Go = &Language{
	Name:      "Go",
	Filetypes: []string{".go"},
	Rules: []Rule{
		{regexp.MustCompile(`//.*`), Comment},
		{regexp.MustCompile("\"(?:[^\"\\\\]|\\\\.)*\"|`[^`]*`|'(?:[^'\\\\]|\\\\.)*'"), String},
		{regexp.MustCompile(`\b(?:func|type)\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)`), Definition},
		{regexp.MustCompile(words("var", "const", "if", "else", "range", "for", "switch",
			"fallthrough", "case", "default", "break", "continue", "go", "func", "return", "defer",
			"import", "type", "package", "struct", "interface", "map", "chan", "select", "goto",
			"nil", "true", "false")), Keyword},
		{regexp.MustCompile(words("len", "cap", "panic", "recover", "make", "new", "copy", "append",
			"delete", "close", "print", "println", "min", "max", "clear")), Builtin},
	},
}

var Languages = []*Language{Python, Go}

// LanguageForPath picks a Language by the file extension of `path`. Returns
// nil when no Language claims the extension.
func LanguageForPath(path string) *Language {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, lang := range Languages {
		for _, ft := range lang.Filetypes {
			if ft == ext {
				return lang
			}
		}
	}
	return nil
}
