package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/transientgo/transient/errors"
)

// Field tags and doc markers understood by the go/ast front-end:
//
//	transient:"region=r"        field bounded by region r, read position
//	transient:"region=r,input"  region occurs in input position
//	transient:"region=r,write"  region occurs in writable position
//	//transient:erasable        marks a struct with no region parameters
//	//transient:covariant       asserts the region parameter's variance
const (
	tagKey       = "transient"
	docPrefix    = "//transient:"
	docErasable  = "erasable"
	docInvariant = "invariant"
	docCovariant = "covariant"
	docContra    = "contravariant"
)

// ParseFile reads a Go source file and returns a Declaration for every
// struct type that opts into erasure via field tags or a doc marker.
func ParseFile(path string) ([]Declaration, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidDecl).
			Cause(err).
			Detail("reading %s", path).
			Build()
	}
	return Parse(path, src)
}

// Parse is ParseFile over in-memory source.
func Parse(filename string, src []byte) ([]Declaration, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidDecl).
			Cause(err).
			Detail("parsing %s", filename).
			Build()
	}

	var decls []Declaration
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil {
				doc = gd.Doc
			}

			decl, ok, err := structDecl(file.Name.Name, ts, st, doc)
			if err != nil {
				return nil, err
			}
			if ok {
				decls = append(decls, decl)
			}
		}
	}

	return decls, nil
}

func structDecl(pkg string, ts *ast.TypeSpec, st *ast.StructType, doc *ast.CommentGroup) (Declaration, bool, error) {
	decl := Declaration{
		Pkg:  pkg,
		Name: ts.Name.Name,
	}

	marker, hasMarker := docMarker(doc)

	if ts.TypeParams != nil {
		for _, f := range ts.TypeParams.List {
			constraint := types.ExprString(f.Type)
			for _, name := range f.Names {
				decl.TypeParams = append(decl.TypeParams, TypeParam{
					Name:       name.Name,
					Constraint: constraint,
				})
			}
		}
	}

	seen := map[string]bool{}
	for _, f := range st.Fields.List {
		region, pos, tagged, err := fieldTag(decl.Name, f)
		if err != nil {
			return Declaration{}, false, err
		}

		names := f.Names
		if len(names) == 0 {
			// embedded field; participates under its own type name
			names = []*ast.Ident{{Name: types.ExprString(f.Type)}}
		}
		for _, name := range names {
			field := Field{
				Name: name.Name,
				Type: types.ExprString(f.Type),
			}
			if tagged {
				field.Region = region
				field.Pos = pos
				if !seen[region] {
					seen[region] = true
					decl.Regions = append(decl.Regions, RegionParam{Name: region})
				}
			}
			decl.Fields = append(decl.Fields, field)
		}
	}

	if len(decl.Regions) == 0 && !hasMarker {
		return Declaration{}, false, nil
	}

	if hasMarker && marker != docErasable {
		for i := range decl.Regions {
			decl.Regions[i].Variance = marker
			decl.Regions[i].Asserted = true
		}
	}

	return decl, true, nil
}

// docMarker extracts the last //transient: marker from a doc comment.
func docMarker(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	marker := ""
	for _, c := range doc.List {
		if rest, ok := strings.CutPrefix(c.Text, docPrefix); ok {
			marker = strings.TrimSpace(rest)
		}
	}
	switch marker {
	case docErasable, docInvariant, docCovariant, docContra:
		return marker, true
	case "":
		return "", false
	default:
		return marker, true
	}
}

func fieldTag(decl string, f *ast.Field) (region string, pos Position, tagged bool, err error) {
	if f.Tag == nil {
		return "", 0, false, nil
	}
	raw, uerr := strconv.Unquote(f.Tag.Value)
	if uerr != nil {
		return "", 0, false, nil
	}
	value := reflect.StructTag(raw).Get(tagKey)
	if value == "" || value == "-" {
		return "", 0, false, nil
	}

	pos = PositionRead
	for _, part := range strings.Split(value, ",") {
		switch {
		case strings.HasPrefix(part, "region="):
			region = strings.TrimPrefix(part, "region=")
		case part == "input":
			pos = PositionInput
		case part == "write":
			pos = PositionWrite
		case part == "read":
			pos = PositionRead
		default:
			return "", 0, false, errors.New(errors.PhaseDeclare, errors.KindInvalidDecl).
				Decl(decl).
				Detail("unknown transient tag element %q", part).
				Build()
		}
	}
	if region == "" {
		return "", 0, false, errors.New(errors.PhaseDeclare, errors.KindInvalidDecl).
			Decl(decl).
			Detail("transient tag %q names no region", value).
			Build()
	}
	return region, pos, true, nil
}
