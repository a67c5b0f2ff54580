// Package cli implements the shelf command-line interface: a thin external
// caller that constructs a Catalog, invokes its operations, and renders the
// results.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookstead/shelf/internal/jsonfile"
	"github.com/bookstead/shelf/internal/paths"
	"github.com/bookstead/shelf/pkg/catalog"
	"github.com/bookstead/shelf/pkg/types"
)

// Version is the shelf release version.
const Version = "0.1.0"

const modulePath = "github.com/bookstead/shelf"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds the global flag values for one command tree. Each call to
// NewRootCmd binds its own instance, so trees built in the same process do
// not alias state.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// systemError marks a failure outside the caller's control, such as a
// storage read/write or config resolution problem. Execute exits with
// exitSysError when one surfaces.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }

func (e *systemError) Unwrap() error { return e.err }

// sysErr wraps err as a system failure for exit-code classification.
func sysErr(err error) error {
	return &systemError{err: err}
}

// NewRootCmd creates the top-level "shelf" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "shelf",
		Short: "Manage a library catalog of books, ebooks, and audiobooks",
		Long: `Shelf manages a catalog of library records (printed books, ebooks,
and audiobooks) held in memory and mirrored to a flat-file archive
after every change.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory holding the archive (default: .shelf-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newAddCmd(flags))
	root.AddCommand(newRemoveCmd(flags))
	root.AddCommand(newGetCmd(flags))
	root.AddCommand(newSearchCmd(flags))
	root.AddCommand(newListCmd(flags))

	return root
}

// Execute runs the root command and exits non-zero on error: exitUserError
// for mistakes the caller can correct, exitSysError for system failures.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode classifies an error from a command run. System failures are
// wrapped in systemError at the site that knows; everything else — flag
// misuse, duplicate or unknown identifiers, validation — is correctable by
// the caller.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var sys *systemError
	if errors.As(err, &sys) {
		return exitSysError
	}
	return exitUserError
}

// resolveConfig builds the storage configuration from flags, config.yaml,
// environment, and defaults.
func resolveConfig(flags *rootFlags) (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, err
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{DataDir: dataDir}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// openCatalog resolves the data directory and opens the catalog backed by
// the archive file inside it. Failures here are system errors: either the
// config machinery or the archive itself is broken.
func openCatalog(flags *rootFlags) (*catalog.Catalog, error) {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return nil, sysErr(err)
	}
	cat, err := catalog.Open(jsonfile.NewStore(cfg.ArchivePath()))
	if err != nil {
		return nil, sysErr(err)
	}
	return cat, nil
}
