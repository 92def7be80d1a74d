package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/transientgo/transient/gen"
)

func main() {
	var (
		srcFile     = flag.String("src", "", "Go source file with transient-tagged declarations")
		typeNames   = flag.String("type", "", "Only generate for these types (comma-separated)")
		outDir      = flag.String("out", "", "Output directory (defaults to the source file's directory)")
		list        = flag.Bool("list", false, "List candidate declarations and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *srcFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: transientgen -src <file.go> [-type Name,...] [-out dir]")
		fmt.Fprintln(os.Stderr, "       transientgen -src <file.go> -list")
		fmt.Fprintln(os.Stderr, "       transientgen -src <file.go> -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
		}
	}
	defer func() { _ = logger.Sync() }()

	if *interactive {
		if err := runInteractive(*srcFile, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(logger, *srcFile, *typeNames, *outDir, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger, srcFile, typeNames, outDir string, listOnly bool) error {
	decls, err := gen.ParseFile(srcFile)
	if err != nil {
		return err
	}
	decls = filterDecls(decls, typeNames)
	if len(decls) == 0 {
		return fmt.Errorf("no transient declarations in %s", srcFile)
	}
	logger.Info("parsed declarations", zap.String("src", srcFile), zap.Int("count", len(decls)))

	if listOnly {
		listDecls(decls)
		return nil
	}

	if outDir == "" {
		outDir = filepath.Dir(srcFile)
	}

	for _, decl := range decls {
		m, err := gen.Derive(decl)
		if err != nil {
			return err
		}
		src, err := m.Source()
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, outputName(decl.Name))
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("generated mapping",
			zap.String("type", decl.Name),
			zap.String("variance", m.Variance.String()),
			zap.String("out", path))
		fmt.Printf("%s -> %s\n", decl.Name, path)
	}

	return nil
}

func listDecls(decls []gen.Declaration) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Printf("Declarations: %d\n\n", len(decls))
	for _, decl := range decls {
		header := decl.Name
		if len(decl.TypeParams) > 0 {
			var params []string
			for _, tp := range decl.TypeParams {
				params = append(params, tp.Name+" "+tp.Constraint)
			}
			header += "[" + strings.Join(params, ", ") + "]"
		}

		m, err := gen.Derive(decl)
		switch {
		case err != nil:
			header += "  (error: " + err.Error() + ")"
		case m.Identity():
			header += "  identity mapping"
		default:
			header += fmt.Sprintf("  region %s, %s", m.Region, m.Variance)
		}
		fmt.Println(truncate(header, width))

		for _, f := range decl.Fields {
			line := "  " + f.Name + " " + f.Type
			if f.Region != "" {
				line += fmt.Sprintf("  [region %s, %s]", f.Region, f.Pos)
			}
			fmt.Println(truncate(line, width))
		}
		fmt.Println()
	}
}

func filterDecls(decls []gen.Declaration, typeNames string) []gen.Declaration {
	if typeNames == "" {
		return decls
	}
	want := map[string]bool{}
	for _, name := range strings.Split(typeNames, ",") {
		want[strings.TrimSpace(name)] = true
	}
	var out []gen.Declaration
	for _, d := range decls {
		if want[d.Name] {
			out = append(out, d)
		}
	}
	return out
}

func outputName(typeName string) string {
	return strings.ToLower(typeName) + "_transient.go"
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width < 4 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
