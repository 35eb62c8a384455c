package session

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
)

// bindings are the names a chunk introduces at session scope.
type bindings struct {
	names   []string
	imports map[string]string // alias -> import path
}

// parseBindings discovers the top-level names an accepted chunk introduced.
// The interpreter exposes no way to enumerate its unexported globals, so the
// chunk is parsed the same two ways the interpreter accepts it: first as a
// declaration list at file scope, then wrapped in a function body so REPL
// statements like `x := 5` parse. Only direct statements of the chunk are
// considered; names declared inside nested blocks do not outlive the run.
func parseBindings(src string) bindings {
	fset := token.NewFileSet()
	if file, err := parser.ParseFile(fset, "", "package main\n"+src, parser.SkipObjectResolution); err == nil {
		return fileBindings(file)
	}

	wrapped := "package main\nfunc _() {\n" + src + "\n}"
	file, err := parser.ParseFile(fset, "", wrapped, parser.SkipObjectResolution)
	if err != nil {
		return bindings{}
	}
	for _, d := range file.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Body != nil {
			return stmtBindings(fn.Body.List)
		}
	}
	return bindings{}
}

func fileBindings(file *ast.File) bindings {
	var b bindings
	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				b.names = append(b.names, d.Name.Name)
			}
		case *ast.GenDecl:
			b.collect(d)
		}
	}
	return b
}

func stmtBindings(stmts []ast.Stmt) bindings {
	var b bindings
	for _, st := range stmts {
		switch st := st.(type) {
		case *ast.AssignStmt:
			if st.Tok != token.DEFINE {
				continue
			}
			for _, lhs := range st.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && id.Name != "_" {
					b.names = append(b.names, id.Name)
				}
			}
		case *ast.DeclStmt:
			if gd, ok := st.Decl.(*ast.GenDecl); ok {
				b.collect(gd)
			}
		}
	}
	return b
}

// collect gathers names from a var, const, type, or import declaration.
func (b *bindings) collect(d *ast.GenDecl) {
	switch d.Tok {
	case token.VAR, token.CONST:
		for _, spec := range d.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, id := range vs.Names {
				if id.Name != "_" {
					b.names = append(b.names, id.Name)
				}
			}
		}
	case token.TYPE:
		for _, spec := range d.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok {
				b.names = append(b.names, ts.Name.Name)
			}
		}
	case token.IMPORT:
		for _, spec := range d.Specs {
			is, ok := spec.(*ast.ImportSpec)
			if !ok {
				continue
			}
			path, err := strconv.Unquote(is.Path.Value)
			if err != nil {
				continue
			}
			alias := baseName(path)
			if is.Name != nil {
				alias = is.Name.Name
			}
			if alias == "_" || alias == "." {
				continue
			}
			if b.imports == nil {
				b.imports = make(map[string]string)
			}
			b.imports[alias] = path
		}
	}
}
