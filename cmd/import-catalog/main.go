// Command import-catalog fetches a course-catalog HTML page (or reads
// a local file) and loads its course table into the advisor database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/campuscore/advisor/internal/catalog"
	"github.com/campuscore/advisor/pkg/advisor/store/sqlite"
)

func main() {
	var (
		dbPath = flag.String("db", "", "Database path (required)")
		url    = flag.String("url", "", "Catalog page URL")
		file   = flag.String("file", "", "Catalog HTML file (alternative to --url)")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if (*url == "") == (*file == "") {
		log.Fatal("exactly one of --url or --file required")
	}

	body, err := open(*url, *file)
	if err != nil {
		log.Fatal(err)
	}
	defer body.Close()

	courses, err := catalog.Parse(body)
	if err != nil {
		log.Fatalf("parse catalog: %v", err)
	}
	if len(courses) == 0 {
		log.Fatal("no courses found in catalog page")
	}

	ctx := context.Background()
	db, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	for _, c := range courses {
		err := db.Exec(ctx, `
			INSERT INTO course (id, title, description, credits) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				credits = excluded.credits`,
			c.ID, c.Title, c.Description, c.Credits)
		if err != nil {
			log.Fatalf("import %s: %v", c.ID, err)
		}
	}

	fmt.Printf("Imported %d courses\n", len(courses))
}

func open(url, file string) (io.ReadCloser, error) {
	if file != "" {
		return os.Open(file)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch catalog: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
