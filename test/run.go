package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/kplc/internal/compiler"
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/parser"
	"github.com/fatih/color"
)

type testResult struct {
	fileName string
	passed   bool
	output   string // failure reason
	isGood   bool
}

func main() {
	root := flag.String("dir", "tests", "corpus root holding good/ and bad/")
	update := flag.Bool("update", false, "rewrite the .err files of bad tests")
	flag.Parse()

	fmt.Println("\n🔍 Running good tests:")
	goodFiles, _ := filepath.Glob(filepath.Join(*root, "good", "*.kpl"))
	fmt.Printf("Found %d good test files...\n", len(goodFiles))

	goodPassed, goodFailed := 0, 0
	badPassed, badFailed := 0, 0
	failedTests := []testResult{}

	for _, file := range goodFiles {
		res := runGoodTest(file)
		if res.passed {
			fmt.Printf("  %s %s\n", color.GreenString("✅"), res.fileName)
			goodPassed++
		} else {
			fmt.Printf("  %s %s\n", color.RedString("❌"), res.fileName)
			goodFailed++
			failedTests = append(failedTests, res)
		}
	}

	fmt.Println("\n💥 Running bad tests:")
	badFiles, _ := filepath.Glob(filepath.Join(*root, "bad", "*.kpl"))
	fmt.Printf("Found %d bad test files...\n", len(badFiles))

	for _, file := range badFiles {
		res := runBadTest(file, *update)
		if res.passed {
			fmt.Printf("  %s %s (rejected as expected)\n", color.GreenString("✅"), res.fileName)
			badPassed++
		} else {
			fmt.Printf("  %s %s (unexpected result)\n", color.RedString("❌"), res.fileName)
			badFailed++
			failedTests = append(failedTests, res)
		}
	}

	if len(failedTests) > 0 {
		fmt.Println("\n--- Detailed Failures ---")
		for _, failure := range failedTests {
			fmt.Printf("\n❌ Test: %s (%s)\n", failure.fileName, map[bool]string{true: "Good Test", false: "Bad Test"}[failure.isGood])
			fmt.Println("Reason:")
			fmt.Println(failure.output)
			fmt.Println("---")
		}
	}

	fmt.Println("\n--------------------")
	fmt.Printf("Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", goodPassed, goodFailed)
	fmt.Printf("Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", badPassed, badFailed)
	fmt.Println("--------------------")

	if goodFailed > 0 || badFailed > 0 {
		fmt.Println("\n🚨 Some tests failed!")
		os.Exit(1)
	}
	fmt.Println("\n🎉 All tests passed!")
}

// runGoodTest expects the source to compile without a single diagnostic.
func runGoodTest(file string) testResult {
	res := testResult{fileName: filepath.Base(file), isGood: true}

	out, err := compiler.CompileFile(file, parser.Options{})
	if err != nil {
		res.output = fmt.Sprintf("Compile failed: %v", err)
		return res
	}
	if !out.OK() {
		res.output = fmt.Sprintf("Unexpected diagnostics:\n%s", render(out.Diagnostics))
		return res
	}
	res.passed = true
	return res
}

// runBadTest expects the diagnostics to match the sibling .err file exactly.
func runBadTest(file string, update bool) testResult {
	res := testResult{fileName: filepath.Base(file)}
	expectedPath := strings.TrimSuffix(file, filepath.Ext(file)) + ".err"

	out, err := compiler.CompileFile(file, parser.Options{})
	if err != nil {
		res.output = fmt.Sprintf("Compile failed: %v", err)
		return res
	}
	if out.OK() {
		res.output = "Expected diagnostics but the source was accepted."
		return res
	}
	actual := render(out.Diagnostics)

	if update {
		if err := os.WriteFile(expectedPath, []byte(actual), 0o644); err != nil {
			res.output = fmt.Sprintf("Failed to update %s: %v", expectedPath, err)
			return res
		}
		res.passed = true
		return res
	}

	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		res.output = fmt.Sprintf("Missing expected diagnostics: %s", expectedPath)
		return res
	}
	expected = bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
	if string(expected) != actual {
		res.output = fmt.Sprintf("Diagnostics Mismatch\nExpected (%s):\n%s\nActual:\n%s", expectedPath, expected, actual)
		return res
	}
	res.passed = true
	return res
}

func render(l *diag.List) string {
	var buf bytes.Buffer
	_ = diag.NewPrinter(&buf, false).PrintAll(l)
	return buf.String()
}
