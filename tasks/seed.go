package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile lists the read-only reference data tasks point at.
type seedFile struct {
	Categories []string `yaml:"categories"`
	Tags       []string `yaml:"tags"`
}

func loadSeedFile(path string) (seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return seedFile{}, fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return seedFile{}, fmt.Errorf("parse seed file %q: %w", path, err)
	}
	return sf, nil
}

func seedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert categories and tags from a YAML file",
		Long: `Insert categories and tags from a YAML file. Existing names are skipped.

Example seed.yaml:
  categories: [Work, Home]
  tags: [urgent, errand]`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, err := loadSeedFile(file)
			if err != nil {
				return err
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}

			storage, closeFn, err := openStorage(cfg, log)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := cmd.Context()
			if err := storage.Migrate(ctx); err != nil {
				return err
			}

			nc, err := storage.SeedCategories(ctx, sf.Categories)
			if err != nil {
				return err
			}
			nt, err := storage.SeedTags(ctx, sf.Tags)
			if err != nil {
				return err
			}

			log.Info("seed finished", "categories", nc, "tags", nt)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "seed file")
	return cmd
}
