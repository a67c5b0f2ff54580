package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bookstead/shelf/internal/jsonfile"
	"github.com/bookstead/shelf/internal/paths"
	"github.com/bookstead/shelf/pkg/catalog"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir string `yaml:"data_dir,omitempty"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf storage",
		Long:  "Create the configuration directory, a default config.yaml, and an empty catalog archive.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysErr(fmt.Errorf("create config directory: %w", err))
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		return sysErr(err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, cfg.DataDir); err != nil {
		return sysErr(fmt.Errorf("write config: %w", err))
	}

	// Open the catalog and write it back so the data directory and an
	// empty archive exist even before the first add.
	store := jsonfile.NewStore(cfg.ArchivePath())
	cat, err := catalog.Open(store)
	if err != nil {
		return sysErr(fmt.Errorf("initialize storage: %w", err))
	}
	if err := store.Save(cat.List()); err != nil {
		return sysErr(fmt.Errorf("initialize archive: %w", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Shelf initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with the resolved data directory
// if the file does not exist. If it already exists, the function returns
// nil (idempotent).
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{DataDir: dataDir}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
