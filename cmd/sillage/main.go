// Copyright 2025 Olfact Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/olfact/sillage"
	"github.com/olfact/sillage/dataset"
	"github.com/olfact/sillage/filters"
	"github.com/olfact/sillage/locker"
	"github.com/olfact/sillage/vision"
	"github.com/olfact/sillage/vision/hf"
)

func main() {
	app := &cli.App{
		Name:  "sillage",
		Usage: "Fragrance catalog search and collection tool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the catalog by name, brand, or note",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(datasetFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 20,
					},
					&cli.StringSliceFlag{
						Name:  "brand",
						Usage: "Restrict results to the given brands",
					},
					&cli.Float64Flag{
						Name:  "min-rating",
						Usage: "Minimum community rating (0-5)",
					},
					&cli.BoolFlag{
						Name:  "exhaustive",
						Usage: "Scan the whole dataset instead of stopping early",
					},
				),
			},
			{
				Name:      "vibe",
				Usage:     "Search the catalog by mood description",
				ArgsUsage: "<query>",
				Action:    vibeCommand,
				Flags: append(datasetFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "exhaustive",
						Usage: "Scan the whole dataset instead of stopping early",
					},
				),
			},
			{
				Name:      "convert",
				Usage:     "Convert a CSV dataset export to JSON",
				ArgsUsage: "<input.csv> <output.json>",
				Action:    convertCommand,
			},
			{
				Name:      "match",
				Usage:     "Match a bottle photo against the catalog",
				ArgsUsage: "<image-file>",
				Action:    matchCommand,
				Flags: append(datasetFlags(),
					&cli.StringFlag{
						Name:    "hf-token",
						Usage:   "Hugging Face API token",
						EnvVars: []string{"HF_TOKEN"},
					},
				),
			},
			{
				Name:  "locker",
				Usage: "Manage the saved fragrance collection",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Save a fragrance from the dataset by exact name",
						ArgsUsage: "<name>",
						Action:    lockerAddCommand,
						Flags: append(datasetFlags(),
							lockerPathFlag(),
							&cli.StringFlag{
								Name:  "brand",
								Usage: "Disambiguate by brand",
							},
						),
					},
					{
						Name:      "remove",
						Usage:     "Remove a fragrance from the collection",
						ArgsUsage: "<name>",
						Action:    lockerRemoveCommand,
						Flags: []cli.Flag{
							lockerPathFlag(),
							&cli.StringFlag{
								Name:  "brand",
								Usage: "Disambiguate by brand",
							},
						},
					},
					{
						Name:   "list",
						Usage:  "List the saved collection in insertion order",
						Action: lockerListCommand,
						Flags:  []cli.Flag{lockerPathFlag()},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func datasetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "dataset",
			Aliases:  []string{"d"},
			Usage:    "Path to the fragrance dataset JSON file",
			Required: true,
		},
	}
}

func lockerPathFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "locker",
		Usage:    "Path to the locker database directory",
		Required: true,
	}
}

func fileSource(path string) dataset.Source {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func openCatalog(c *cli.Context) (*sillage.Catalog, error) {
	opts := []sillage.CatalogOption{
		sillage.WithExhaustiveScan(c.Bool("exhaustive")),
	}
	if c.IsSet("locker") {
		opts = append(opts, sillage.WithLockerPath(c.String("locker")))
	}
	return sillage.Open(fileSource(c.String("dataset")), opts...)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	fltr := filters.Defaults()
	fltr.Brands = c.StringSlice("brand")
	fltr.MinRating = c.Float64("min-rating")

	results, err := catalog.TextSearch(query, c.Int("limit"), &fltr)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		line := r.Fragrance.Name
		if r.Fragrance.Brand != "" {
			line += " by " + r.Fragrance.Brand
		}
		if r.Fragrance.Year > 0 {
			line += fmt.Sprintf(" (%d)", r.Fragrance.Year)
		}
		fmt.Println(line)
	}
	return nil
}

func vibeCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a mood description is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	matches, err := catalog.VibeSearch(query, c.Int("limit"), nil)
	if err != nil {
		return fmt.Errorf("vibe search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%s by %s (%.0f%%)\n", m.Fragrance.Name, m.Fragrance.Brand, m.Similarity*100)
		fmt.Printf("  %s\n", m.Explanation)
	}
	return nil
}

func convertCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: convert <input.csv> <output.json>")
	}

	in, err := os.Open(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	n, err := dataset.ConvertCSV(in, out)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Converted %d records\n", n)
	return nil
}

func matchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: match <image-file>")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	withImages, err := catalog.Dataset().WithImages()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(withImages) == 0 {
		return fmt.Errorf("the dataset has no image references to match against")
	}

	refs := make([]vision.ImageRef, len(withImages))
	for i, f := range withImages {
		refs[i] = vision.ImageRef{URL: f.Image, Fragrance: f}
	}

	var clientOpts []hf.ClientOption
	if token := c.String("hf-token"); token != "" {
		clientOpts = append(clientOpts, hf.WithToken(token))
	}
	embedder := hf.NewClient(clientOpts...)

	matcher, err := catalog.NewMatcher(embedder)
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}
	defer matcher.Release()

	image, err := os.Open(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer image.Close()

	match, err := matcher.MatchImage(context.Background(), image, refs)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}
	if match == nil {
		fmt.Println("No confident match.")
		return nil
	}
	fmt.Printf("%s by %s (%.0f%% similar)\n",
		match.Fragrance.Name, match.Fragrance.Brand, match.Similarity*100)
	return nil
}

func lockerAddCommand(c *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("a fragrance name is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	f, err := catalog.Dataset().ByName(name, c.String("brand"))
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if f == nil {
		return fmt.Errorf("no fragrance named %q in the dataset", name)
	}

	added, err := catalog.Locker().Add(f)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	if !added {
		fmt.Printf("%s by %s is already in the locker\n", f.Name, f.Brand)
		return nil
	}
	fmt.Printf("Added %s by %s\n", f.Name, f.Brand)
	return nil
}

func lockerRemoveCommand(c *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("a fragrance name is required")
	}

	lkr, store, err := openLocker(c)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := lkr.Remove(name, c.String("brand"))
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	if !removed {
		fmt.Printf("%s is not in the locker\n", name)
		return nil
	}
	fmt.Printf("Removed %s\n", name)
	return nil
}

func lockerListCommand(c *cli.Context) error {
	lkr, store, err := openLocker(c)
	if err != nil {
		return err
	}
	defer store.Close()

	collection := lkr.All()
	if len(collection) == 0 {
		fmt.Println("The locker is empty.")
		return nil
	}
	for i, f := range collection {
		fmt.Printf("%d. %s by %s\n", i+1, f.Name, f.Brand)
	}
	return nil
}

func openLocker(c *cli.Context) (*locker.Locker, *locker.Store, error) {
	store, err := locker.OpenStore(c.String("locker"), false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open locker store: %w", err)
	}
	lkr, err := locker.New(store)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to open locker: %w", err)
	}
	return lkr, store, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
