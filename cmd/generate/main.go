package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/anthropics/slack-export-forge/internal/service"
	"github.com/anthropics/slack-export-forge/internal/validate"
)

func main() {
	requestPath := flag.String("request", "", "path to the export request JSON file")
	outDir := flag.String("out", "export", "output directory for the export tree")
	check := flag.Bool("validate", true, "run the structural validator after generating")
	flag.Parse()

	if *requestPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate -request <request.json> [-out <dir>] [-validate=false]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*requestPath)
	if err != nil {
		log.Fatalf("Failed to read request: %v", err)
	}
	var req service.ExportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		log.Fatalf("Invalid request JSON: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svc := service.NewExportService(rng)
	if err := svc.Generate(&req, *outDir); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	log.Printf("[Generate] Export written to %s", *outDir)

	if !*check {
		return
	}
	report, err := validate.Export(*outDir)
	if err != nil {
		log.Fatalf("Validation failed to run: %v", err)
	}
	printReport(report)
	if !report.OK() {
		os.Exit(1)
	}
}

func printReport(r *validate.Report) {
	for _, w := range r.Warnings {
		fmt.Println("warning:", w)
	}
	for _, e := range r.Errors {
		fmt.Println("error:", e)
	}
	if r.OK() {
		fmt.Println("Result: PASSED")
		fmt.Println("Message types seen:", r.SeenTypes())
	} else {
		fmt.Println("Result: FAILED")
	}
}
