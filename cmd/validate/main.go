package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/slack-export-forge/internal/validate"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: validate <path-to-extracted-export-dir>")
		os.Exit(2)
	}

	report, err := validate.Export(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("\n--- Validation Report ---")
	if len(report.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range report.Warnings {
			fmt.Println("  ", w)
		}
	}
	if len(report.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range report.Errors {
			fmt.Println("  ", e)
		}
		fmt.Println("\nResult: FAILED")
		os.Exit(1)
	}

	fmt.Println("Block structure: OK (rich_text, rich_text_section, elements)")
	fmt.Println("Metadata: dms.json, mpims.json structure OK")
	fmt.Println("Message types seen:", strings.Join(report.SeenTypes(), ", "))
	fmt.Println("\nResult: PASSED")
}
