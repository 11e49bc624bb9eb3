package fn

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"runtime"
	"slices"

	"github.com/on-the-ground/functools/memo"
)

// Arity reports how many arguments f declares.
//
// An explicit WithArity anywhere between f and its origin wins, nearest
// first. Otherwise a lifted origin reports its non-variadic parameter count,
// and a dynamic one the number of its parameter names.
func (f *Func) Arity() int {
	for cur := f; cur != nil; cur = cur.origin {
		if cur.hasArity {
			return cur.arity
		}
	}
	if impl := f.Origin().impl; impl != nil {
		return fixedArity(reflect.TypeOf(impl))
	}
	return len(f.Params())
}

// Params returns the formal parameter names of f's origin.
//
// Explicit WithParams names win, nearest first. Otherwise names are read from
// the Go source of the lifted origin function, once per origin. When the
// source is unavailable or cannot be parsed the list is empty. Unnamed
// parameters are reported as "_".
func (f *Func) Params() []string {
	for cur := f; cur != nil; cur = cur.origin {
		if cur.hasParams {
			return slices.Clone(cur.params)
		}
	}
	origin := f.Origin()
	if origin.impl == nil {
		return []string{}
	}
	names, _ := paramsByOrigin.LoadOrStore(nil, []any{origin}, func() (any, error) {
		return sourceParams(origin.impl), nil
	})
	return slices.Clone(names.([]string))
}

var paramsByOrigin = memo.NewTable()

type sourceFile struct {
	fset *token.FileSet
	file *ast.File
}

// parseSource parses each Go file at most once.
var parseSource = memo.MemoizeI1O2(func(path string) (sourceFile, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	return sourceFile{fset: fset, file: file}, err
})

func sourceParams(goFunc any) []string {
	rf := runtime.FuncForPC(reflect.ValueOf(goFunc).Pointer())
	if rf == nil {
		return []string{}
	}
	path, line := rf.FileLine(rf.Entry())
	names, ok := paramsAt(path, line)
	if !ok {
		return []string{}
	}
	return names
}

// paramsAt finds the function declaration or literal whose signature covers
// line and returns its parameter names.
func paramsAt(path string, line int) ([]string, bool) {
	src, err := parseSource(path)
	if err != nil || src.file == nil {
		return nil, false
	}

	var found *ast.FuncType
	ast.Inspect(src.file, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		var ft *ast.FuncType
		switch node := n.(type) {
		case *ast.FuncDecl:
			ft = node.Type
		case *ast.FuncLit:
			ft = node.Type
		default:
			return true
		}
		if src.fset.Position(ft.Pos()).Line <= line && line <= src.fset.Position(ft.End()).Line {
			found = ft
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return fieldNames(found.Params), true
}

func fieldNames(fields *ast.FieldList) []string {
	names := []string{}
	if fields == nil {
		return names
	}
	for _, field := range fields.List {
		if len(field.Names) == 0 {
			names = append(names, "_")
			continue
		}
		for _, ident := range field.Names {
			names = append(names, ident.Name)
		}
	}
	return names
}
