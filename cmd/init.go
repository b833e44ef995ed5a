package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/arnavsurve/kplc/internal/compiler/token"
	"github.com/arnavsurve/kplc/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a new KPL project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  initRun,
}

func initRun(cmd *cobra.Command, args []string) error {
	var (
		targetDir   string
		projectName string
	)

	// targetDir is where files go, projectName is for templating
	if len(args) == 1 {
		targetDir = args[0]
		projectName = filepath.Base(args[0])
	} else {
		targetDir = "."
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		projectName = filepath.Base(cwd)
	}

	if targetDir != "." {
		if _, err := os.Stat(targetDir); err == nil {
			return fmt.Errorf("directory %q already exists", targetDir)
		}
	}
	for _, name := range config.FileNames {
		if _, err := os.Stat(filepath.Join(targetDir, name)); err == nil {
			return fmt.Errorf("%s already has a %s", targetDir, name)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "↪ scaffolding new project %q ...\n", projectName)

	if err := os.MkdirAll(filepath.Join(targetDir, "src"), 0o755); err != nil {
		return err
	}

	data := map[string]string{"Name": programName(projectName)}
	files := map[string]string{
		"templates/hello.kpl.tpl": "src/hello.kpl",
		"templates/gitignore.tpl": ".gitignore",
	}
	for tplPath, outName := range files {
		if err := writeTpl(tplPath, filepath.Join(targetDir, outName), data); err != nil {
			return err
		}
	}

	if err := writeConfig(filepath.Join(targetDir, "kplc.yml")); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s project %q initialized!\n", color.GreenString("✓"), projectName)
	return nil
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.ParseFS(tplFS, tplName)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := t.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", outPath, err)
	}
	return nil
}

func writeConfig(path string) error {
	scaffold := config.Default()
	scaffold.Sources = []string{"src/*.kpl"}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scaffold.WriteYAML(f)
}

// programName turns a directory name into a valid KPL program identifier.
func programName(dir string) string {
	var b strings.Builder
	for _, r := range dir {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if b.Len() == 0 && unicode.IsDigit(r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > token.MaxIdentLen {
		name = name[:token.MaxIdentLen]
	}
	if name == "" || token.LookupIdent(name) != token.TokenIdent {
		return "Hello"
	}
	return name
}
