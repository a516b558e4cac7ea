package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jcdickinson/doclinks/internal/config"
	"github.com/jcdickinson/doclinks/internal/manifest"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <graph-file>",
	Short: "Write javadoc link options for a dependency graph",
	Long: `Walks the dependency graph exported by the build, resolves a documentation
URL for every component and writes one javadoc option per line.

Toolchains before Java 10 get -linkoffline options backed by cached
element-list and package-list files.`,
	Example: `  doclinks build graph.yaml
  doclinks build --toolchain 1.8 --output build/javadoc.options graph.yaml
  doclinks build --print graph.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

var (
	buildToolchain string
	buildCacheDir  string
	buildOutput    string
	buildPrint     bool
)

func init() {
	buildCmd.Flags().StringVar(&buildToolchain, "toolchain", "", "Java version of the javadoc tool (overrides the graph file)")
	buildCmd.Flags().StringVar(&buildCacheDir, "cache-dir", "", "directory for downloaded index files")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "options file to write")
	buildCmd.Flags().BoolVar(&buildPrint, "print", false, "print the options instead of writing a file")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if buildCacheDir != "" {
		if cfg.Output == filepath.Join(cfg.CacheDir, config.DefaultOutputName) {
			cfg.Output = filepath.Join(buildCacheDir, config.DefaultOutputName)
		}
		cfg.CacheDir = buildCacheDir
	}
	if buildOutput != "" {
		cfg.Output = buildOutput
	}

	ctx, stop := signalContext()
	defer stop()

	m, err := manifest.BuildFile(ctx, cfg, nil, args[0], buildToolchain, slog.Default())
	if err != nil {
		return err
	}

	if buildPrint {
		if _, err := m.WriteTo(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
	} else {
		if err := m.WriteFile(cfg.Output); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.Output)
	}
	fmt.Fprintln(os.Stderr, m.Summary())
	return nil
}
