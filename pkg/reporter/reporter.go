// Package reporter renders a crawl result to the console and to the
// report file. Layout is fixed: seven sections in a set order, one entry
// per line, a blank line before each header.
package reporter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pagesift/pagesift/internal/models"
)

// sections defines the report layout. Consumers parse the report by these
// headers, so order and wording must not change.
var sections = []struct {
	header string
	pick   func(*models.CrawlResult) []string
}{
	{"Unique URLs:", func(r *models.CrawlResult) []string { return r.VisitedURLs.Sorted() }},
	{"Image URLs:", func(r *models.CrawlResult) []string { return r.ImageURLs.Sorted() }},
	{"Phone Numbers:", func(r *models.CrawlResult) []string { return r.Phones.Sorted() }},
	{"Zip Codes:", func(r *models.CrawlResult) []string { return r.ZipCodes.Sorted() }},
	{"Vocabulary (Unique words):", func(r *models.CrawlResult) []string { return r.Vocabulary.Sorted() }},
	{"Verbs:", func(r *models.CrawlResult) []string { return r.Verbs.Sorted() }},
	{"Nouns:", func(r *models.CrawlResult) []string { return r.Nouns.Sorted() }},
}

// Reporter writes crawl reports.
type Reporter struct {
	// OutputPath is the report file destination.
	OutputPath string
	// IncludeFrequencies appends noun/verb frequency sections after the
	// seven fixed sections.
	IncludeFrequencies bool
}

// New builds a Reporter writing to outputPath.
func New(outputPath string) *Reporter {
	return &Reporter{OutputPath: outputPath}
}

// Write renders the result to stdout and then to the report file.
func (r *Reporter) Write(result *models.CrawlResult) error {
	if err := r.Render(os.Stdout, result); err != nil {
		return fmt.Errorf("console report: %w", err)
	}
	f, err := os.Create(r.OutputPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := r.Render(f, result); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}

// Render writes the fixed-layout report to w. Entries within each section
// are sorted so output is stable across runs.
func (r *Reporter) Render(w io.Writer, result *models.CrawlResult) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Report:")
	for _, s := range sections {
		fmt.Fprintf(bw, "\n%s\n", s.header)
		for _, entry := range s.pick(result) {
			fmt.Fprintln(bw, entry)
		}
	}
	if r.IncludeFrequencies {
		writeFrequencies(bw, "Verb Frequencies:", result.VerbFreq)
		writeFrequencies(bw, "Noun Frequencies:", result.NounFreq)
	}
	return bw.Flush()
}

func writeFrequencies(w io.Writer, header string, freq models.FreqMap) {
	type entry struct {
		word  string
		count int
	}
	entries := make([]entry, 0, len(freq))
	for word, count := range freq {
		entries = append(entries, entry{word, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})

	fmt.Fprintf(w, "\n%s\n", header)
	for _, e := range entries {
		fmt.Fprintf(w, "%s %d\n", e.word, e.count)
	}
}
