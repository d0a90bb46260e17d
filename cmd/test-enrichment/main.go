package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glowdesk/crm-api/internal/enrichment"
)

func main() {
	url := flag.String("url", "", "Website URL to fetch and parse")
	flag.Parse()

	if *url == "" {
		flag.Usage()
		os.Exit(2)
	}

	fmt.Printf("Fetching %s\n", *url)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := enrichment.NewClient()

	start := time.Now()
	profile, err := client.Fetch(ctx, *url)
	if err != nil {
		log.Fatalf("Failed to fetch %s: %v", *url, err)
	}
	fmt.Printf("Fetched in %v\n", time.Since(start))

	if profile.IsEmpty() {
		fmt.Println("No enrichable fields found on the page")
		return
	}

	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal profile: %v", err)
	}
	fmt.Println(string(out))
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -url=<website>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch an outlet website and print the extracted profile\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -url=glowsalon.example.com\n", os.Args[0])
	}
}
