// Package cmd implements the requirekit CLI: offline resolution, static
// dependency scanning, and asset-bundle packing/indexing for sandboxed
// CommonJS application bundles.
package cmd

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentic-research/requirekit/api"
	"github.com/agentic-research/requirekit/asset"
)

var (
	resourcesDir string
	bundleDB     string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&resourcesDir, "resources", "r", ".", "Application resources directory")
	rootCmd.PersistentFlags().StringVar(&bundleDB, "db", "", "Packed asset bundle (overrides --resources)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:          "requirekit",
	Short:        "Requirekit: CommonJS resolution tooling for sandboxed app bundles",
	SilenceUsage: true,
}

// openStore builds the asset store the flags describe: the packed database
// when --db is set, otherwise a directory bundle over --resources. The
// returned closer is a no-op for directory bundles.
func openStore() (api.AssetStore, func() error, error) {
	if bundleDB != "" {
		db, err := asset.OpenDB(bundleDB)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	info, err := os.Stat(resourcesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resources directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("resources path %s is not a directory", resourcesDir)
	}
	bundle := asset.NewBundle(osfs.New(resourcesDir))
	return bundle, func() error { return nil }, nil
}

// newLogger returns a development logger when --verbose is set.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	lg, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
