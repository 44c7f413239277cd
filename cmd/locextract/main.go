// Copyright 2024 - 2026, the loctool contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command locextract scans a host application's Go sources for message
// keys and emits a skeleton catalog in the native resource format.
//
// It finds string-literal keys passed to Registry.Resolve and
// Registry.ResolveWithArgs, and conversions to locale.MsgKey, then writes a
// sorted .ftl file with "#:" source references so translators can see where
// each key is used.
//
// Usage (from the host module's root):
//
//	go run codeberg.org/loctool/loctool/cmd/locextract -o locales/keys.ftl
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

type ref struct {
	file string
	line int
}

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	refs        map[string][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	localePkgs  map[string]struct{}
}

func main() {
	outPath := flag.String("o", "locales/keys.ftl", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		log.Fatalf("failed to load packages: %v", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal("failed to load packages due to errors")
	}

	refs := extractRefs(pkgs, wd, findLocalePkgPaths(pkgs))

	keys := make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder

	fmt.Fprintln(&b, "## Generated by locextract; fill in the values and rename per locale.")
	fmt.Fprintln(&b)

	for _, k := range keys {
		rs := refs[k]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		// After sorting, duplicates are adjacent.
		fmt.Fprint(&b, "#:")

		lastFile := ""
		lastLine := 0

		for _, r := range rs {
			if r.file != lastFile || r.line != lastLine {
				fmt.Fprintf(&b, " %s:%d", r.file, r.line)

				lastFile = r.file
				lastLine = r.line
			}
		}

		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "%s = \n", k)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := os.WriteFile(*outPath, []byte(b.String()), 0o644); err != nil {
		log.Fatalf("failed to write output file %s: %v", *outPath, err)
	}
}

// extractRefs traverses all Go source files in the given packages, looking
// for registry lookups and MsgKey conversions.
func extractRefs(pkgs []*packages.Package, projectRoot string, localePkgPaths map[string]struct{}) map[string][]ref {
	refs := map[string][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			localePkgs:  localePkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				if call, ok := n.(*ast.CallExpr); ok {
					e.handleCallExpr(call)
				}

				return true
			})
		}
	}

	return refs
}

// findLocalePkgPaths returns the set of package paths in this build that
// define the locale package with a MsgKey type whose underlying type is
// string. This lets us match lookups regardless of how the package is
// imported or aliased. The whole import graph is visited, not just the
// loaded patterns: in a host module the locale package is a dependency and
// never appears in the top-level slice.
func findLocalePkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Name != "locale" || p.Types == nil {
			return
		}

		obj := p.Types.Scope().Lookup("MsgKey")

		tn, ok := obj.(*types.TypeName)
		if !ok {
			return
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			return
		}

		basic, ok := named.Underlying().(*types.Basic)
		if ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	})

	return out
}

// constString evaluates expr to a constant string if possible using types.Info.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKeyType reports whether t is the named type locale.MsgKey.
func isMsgKeyType(t types.Type, localePkgs map[string]struct{}) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := localePkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == "MsgKey"
}

// handleCallExpr inspects function calls and type conversions for message keys.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// Case 1: type conversion, e.g. locale.MsgKey("gen_loc_accept").
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && isMsgKeyType(tv.Type, e.localePkgs) {
			if key, ok := constString(e.info, x.Args[0]); ok {
				e.addRef(x.Args[0].Pos(), key)
			}
		}

		return
	}

	// Case 2: Registry.Resolve / Registry.ResolveWithArgs method calls.
	sel, ok := x.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}

	fn, ok := e.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return
	}

	if _, ok := e.localePkgs[fn.Pkg().Path()]; !ok {
		return
	}

	if fn.Name() != "Resolve" && fn.Name() != "ResolveWithArgs" {
		return
	}

	// MsgKey carries its key in the receiver, which case 1 already saw at
	// the conversion site; only Registry methods take the key as an argument.
	if !isRegistryMethod(fn) || len(x.Args) == 0 {
		return
	}

	if key, ok := constString(e.info, x.Args[0]); ok {
		e.addRef(x.Args[0].Pos(), key)
	}
}

// isRegistryMethod reports whether fn is declared on *locale.Registry.
func isRegistryMethod(fn *types.Func) bool {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return false
	}

	t := sig.Recv().Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	named, ok := t.(*types.Named)

	return ok && named.Obj().Name() == "Registry"
}

// addRef records one usage of key at pos, with the file path made relative
// to the project root.
func (e *extractor) addRef(pos token.Pos, key string) {
	position := e.fset.Position(pos)

	file := position.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil && !strings.HasPrefix(rel, "..") {
		file = filepath.ToSlash(rel)
	}

	e.refs[key] = append(e.refs[key], ref{file: file, line: position.Line})
}
