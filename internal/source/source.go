// Package source recovers the literal text of call arguments from the Go
// source of a calling frame, so assertion failures can quote the expression
// that failed.
package source

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"runtime"
	"sync"
)

type parsedFile struct {
	fset *token.FileSet
	file *ast.File
	err  error
}

var cache sync.Map // path -> *parsedFile

func parse(path string) (*token.FileSet, *ast.File, error) {
	if v, ok := cache.Load(path); ok {
		pf := v.(*parsedFile)
		return pf.fset, pf.file, pf.err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	v, _ := cache.LoadOrStore(path, &parsedFile{fset: fset, file: file, err: err})
	pf := v.(*parsedFile)
	return pf.fset, pf.file, pf.err
}

// CallArgs returns the source text of the arguments of the call made from
// the frame skip levels above the caller of CallArgs. Only calls whose
// function name is one of names and that take at least minArgs arguments are
// considered. ok is false when the source is unavailable or no call matches.
func CallArgs(skip int, minArgs int, names ...string) (args []string, ok bool) {
	_, path, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil, false
	}
	fset, file, err := parse(path)
	if err != nil || file == nil {
		return nil, false
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var candidates []*ast.CallExpr
	ast.Inspect(file, func(n ast.Node) bool {
		call, isCall := n.(*ast.CallExpr)
		if !isCall {
			return true
		}
		start := fset.Position(call.Pos()).Line
		end := fset.Position(call.End()).Line
		if line < start || line > end {
			return false
		}
		if len(call.Args) >= minArgs && want[funcName(call.Fun)] {
			candidates = append(candidates, call)
		}
		return true
	})
	best := pick(fset, candidates, line)
	if best == nil {
		return nil, false
	}

	args = make([]string, 0, len(best.Args))
	for _, arg := range best.Args {
		var buf bytes.Buffer
		if err := printer.Fprint(&buf, fset, arg); err != nil {
			return nil, false
		}
		args = append(args, buf.String())
	}
	return args, true
}

// pick returns the single call that can have been made from line. A call
// spanning several lines loses to a nested candidate when line lies strictly
// inside it; any other tie is ambiguous, since the caller frame carries no
// column, and yields nil.
func pick(fset *token.FileSet, candidates []*ast.CallExpr, line int) *ast.CallExpr {
	var found *ast.CallExpr
	for _, c := range candidates {
		if enclosesOther(fset, c, candidates, line) {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

func enclosesOther(fset *token.FileSet, c *ast.CallExpr, candidates []*ast.CallExpr, line int) bool {
	if fset.Position(c.Pos()).Line == line || fset.Position(c.End()).Line == line {
		return false
	}
	for _, d := range candidates {
		if d != c && c.Pos() <= d.Pos() && d.End() <= c.End() {
			return true
		}
	}
	return false
}

func funcName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return funcName(f.X)
	case *ast.IndexListExpr:
		return funcName(f.X)
	}
	return ""
}
