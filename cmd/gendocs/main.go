package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// strSlice collects repeated string flags.
type strSlice []string

func (s *strSlice) String() string { return strings.Join(*s, ",") }

func (s *strSlice) Set(val string) error {
	*s = append(*s, val)
	return nil
}

// gendocs renders a Markdown table of environment variables for every struct
// in the given files that has envconfig tagged fields.
//
// Usage (via go:generate in config.go):
//
//	go run ./cmd/gendocs -file config.go -file cmd/zaim/main.go -o CONFIGURATION.md
func main() {
	var (
		filePatterns strSlice
		title        string
		outPath      string
	)
	flag.Var(&filePatterns, "file", "path or glob pattern for source files, in section order")
	flag.StringVar(&title, "title", "Configuration", "title for markdown output")
	flag.StringVar(&outPath, "o", "", "write output to file (optional)")
	flag.Parse()

	var files []string
	for _, pattern := range filePatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fatal(err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		fatal(fmt.Errorf("no files matched given -file patterns"))
	}

	fset := token.NewFileSet()
	var sections []section
	for _, path := range files {
		found, err := collect(fset, path)
		if err != nil {
			fatal(err)
		}
		sections = append(sections, found...)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "# %s\n\n", title)
	fmt.Fprintf(&out, "This document is generated from configuration structs in the source code using `go generate`. **Do not edit manually.**\n\n")
	for _, s := range sections {
		s.write(&out)
	}

	if outPath == "" {
		_, _ = os.Stdout.Write(out.Bytes())
		return
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "gendocs:", err)
	os.Exit(1)
}

type row struct {
	env, typ, def, desc string
}

type section struct {
	name string
	doc  []string
	rows []row
}

// collect returns one section per struct in path with at least one
// environment variable, in source order.
func collect(fset *token.FileSet, path string) ([]section, error) {
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var sections []section
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}
			s := section{name: typeSpec.Name.Name, doc: commentLines(doc)}
			for _, field := range structType.Fields.List {
				if len(field.Names) == 0 {
					continue
				}
				env, def, ok := parseTags(field.Tag)
				if !ok {
					continue
				}
				desc := strings.Join(append(commentLines(field.Doc), commentLines(field.Comment)...), "<br>")
				s.rows = append(s.rows, row{
					env:  env,
					typ:  exprString(fset, field.Type),
					def:  def,
					desc: strings.ReplaceAll(desc, "|", "\\|"),
				})
			}
			if len(s.rows) > 0 {
				sections = append(sections, s)
			}
		}
	}
	return sections, nil
}

func (s section) write(out *bytes.Buffer) {
	fmt.Fprintf(out, "## %s\n\n", s.name)
	if len(s.doc) > 0 {
		fmt.Fprintln(out, strings.Join(s.doc, "\n"))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "| Environment variable | Type | Default | Description |")
	fmt.Fprintln(out, "|:---------------------|:-----|:--------|:------------|")
	for _, r := range s.rows {
		fmt.Fprintf(out, "| %s | `%s` | %s | %s |\n", r.env, r.typ, r.def, r.desc)
	}
	fmt.Fprintln(out)
}

// exprString converts an ast.Expr back to its source representation.
func exprString(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	_ = printer.Fprint(&buf, fset, expr)
	return buf.String()
}

// parseTags reads the envconfig and default tags. ok is false for fields
// without an environment variable or marked ignored.
func parseTags(tagLit *ast.BasicLit) (env, def string, ok bool) {
	if tagLit == nil {
		return "", "", false
	}
	tagValue, err := strconv.Unquote(tagLit.Value)
	if err != nil {
		return "", "", false
	}
	tag := reflect.StructTag(tagValue)
	env = tag.Get("envconfig")
	if env == "" || tag.Get("ignored") == "true" {
		return "", "", false
	}

	def = tag.Get("default")
	if def == "" {
		def = "-"
	} else if !strings.Contains(def, "`") {
		def = "`" + def + "`"
	}
	return env, def, true
}

func commentLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}
	var lines []string
	for _, c := range cg.List {
		txt := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		lines = append(lines, strings.Trim(txt, "/"))
	}
	return lines
}
