package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbqmenu/bbq-menu-ai/backend/config"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/images"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and publish the recipe image catalog",
	}
	cmd.AddCommand(newCatalogValidateCmd(), newCatalogPushCmd())
	return cmd
}

// readCatalog parses path, or the embedded catalog when path is empty.
func readCatalog(path string) (*images.Catalog, error) {
	if path == "" {
		return images.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return images.Parse(data)
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Parse a catalog file and print per-category counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			c, err := readCatalog(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, cat := range images.Categories {
				fmt.Fprintf(out, "%-12s %3d images %3d keywords\n", cat, len(c.ImagesByCategory(cat)), len(c.Keywords(cat)))
			}
			fmt.Fprintf(out, "ok: %d images\n", c.ImageCount())
			return nil
		},
	}
}

func newCatalogPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push FILE",
		Short: "Upload a validated catalog to the configured S3 location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCatalog(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			s3cfg, err := config.NewS3Config(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if s3cfg == nil {
				return errors.New("IMAGE_CATALOG_BUCKET is not set")
			}
			if err := images.PublishToS3(cmd.Context(), s3cfg.Client, s3cfg.BucketName, s3cfg.Key, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published s3://%s/%s (%d images)\n", s3cfg.BucketName, s3cfg.Key, c.ImageCount())
			return nil
		},
	}
}
