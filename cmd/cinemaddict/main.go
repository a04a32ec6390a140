package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/cinemaddict/internal/api"
	"github.com/pders01/cinemaddict/internal/app"
	"github.com/pders01/cinemaddict/internal/config"
	"github.com/pders01/cinemaddict/internal/debuglog"
	"github.com/pders01/cinemaddict/internal/model"
	"github.com/pders01/cinemaddict/internal/runtime"
	"github.com/pders01/cinemaddict/internal/search"
	"github.com/pders01/cinemaddict/internal/storage"
	"github.com/pders01/cinemaddict/internal/tui"
	"github.com/pders01/cinemaddict/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	dbPath     string
	remote     bool
	quiet      bool
	insecure   bool
	seedJSON   string
)

var rootCmd = &cobra.Command{
	Use:           "cinemaddict",
	Short:         "Browse and rate a film catalog in the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCatalog,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cinemaddict %s\n", Version)
		fmt.Println("Film catalog")
		fmt.Println("github.com/pders01/cinemaddict")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := resolveConfigPath()
		if err != nil {
			fatal(err)
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			fatal(fmt.Errorf("failed to generate config: %w", err))
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := config.Dump(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the local catalog with the built-in sample or a JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		catalog, err := readSeed(seedJSON)
		if err != nil {
			return err
		}
		if err := store.Import(catalog); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d films into %s\n", len(catalog.Films), cfg.Database.Path)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to configuration file")
	flags.StringVar(&dbPath, "db", "", "Path to database file (overrides config)")
	flags.BoolVar(&remote, "remote", false, "Use the remote catalog service instead of the local database")
	flags.BoolVar(&quiet, "quiet", false, "Skip startup banner")
	flags.BoolVar(&insecure, "insecure", false, "Allow paths outside the app directories and plain-http or local endpoints")

	seedCmd.Flags().StringVar(&seedJSON, "json", "", "Import films and comments from a JSON export instead of the sample")

	configCmd.AddCommand(configGenCmd, configShowCmd)
	rootCmd.AddCommand(versionCmd, configCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func resolveConfigPath() (string, error) {
	if configPath == "" {
		return config.DefaultPath(), nil
	}
	return pathHandler().ConfigPath(configPath)
}

// pathHandler and endpointValidator relax their checks under --insecure,
// for development against a local server or a scratch database.
func pathHandler() *validation.PathHandler {
	if insecure {
		return validation.NewPermissivePathHandler()
	}
	return validation.NewSecurePathHandler()
}

func endpointValidator() *validation.EndpointValidator {
	if insecure {
		return validation.NewPermissiveEndpointValidator()
	}
	return validation.NewEndpointValidator()
}

// loadConfig reads the configuration and applies the command-line
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = expandTildePath(dbPath)
	}
	if remote {
		cfg.Server.Backend = config.BackendRemote
	}
	return cfg, cfg.Validate()
}

func expandTildePath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	path, err := pathHandler().DBPath(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}
	cfg.Database.Path = path

	store, err := storage.NewStore(path, cfg.Database.Timeout)
	if err != nil {
		return nil, err
	}
	store.SetAuthor(cfg.Database.Author)
	return store, nil
}

func readSeed(path string) (*storage.Catalog, error) {
	if path == "" {
		return storage.LoadSample()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return storage.ReadCatalogJSON(f)
}

// openService picks the catalog backend. The returned closer releases it.
func openService(cfg *config.Config) (model.Service, string, func(), error) {
	if cfg.Server.Backend == config.BackendRemote {
		endpoint, err := endpointValidator().ValidateAndNormalize(cfg.Server.Endpoint)
		if err != nil {
			return nil, "", nil, fmt.Errorf("invalid server endpoint: %w", err)
		}
		client, err := api.NewClient(endpoint, cfg.Server.Authorization, cfg.Server.Timeout)
		if err != nil {
			return nil, "", nil, err
		}
		return client, endpoint, func() {}, nil
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	n, err := store.Count()
	if err != nil {
		_ = store.Close()
		return nil, "", nil, err
	}
	if n == 0 {
		sample, err := storage.LoadSample()
		if err == nil {
			err = store.Import(sample)
		}
		if err != nil {
			_ = store.Close()
			return nil, "", nil, fmt.Errorf("seeding empty catalog: %w", err)
		}
		debuglog.Infof("seeded %d sample films into %s", len(sample.Films), cfg.Database.Path)
	}
	return store, cfg.Database.Path, func() { _ = store.Close() }, nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = debuglog.Close() }()

	if !quiet {
		tui.ShowBanner(Version)
	}
	tui.ApplyTheme(cfg.UI.Colors)

	service, backend, closeService, err := openService(cfg)
	if err != nil {
		return err
	}
	defer closeService()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	loop := runtime.NewLoop()
	var program *tea.Program
	core := app.New(app.Options{
		Service:      service,
		Sched:        loop,
		Search:       search.New(),
		PageSize:     cfg.UI.FilmCountPerStep,
		ShakeTimeout: cfg.UI.ShakeTimeout,
		Context:      ctx,
		OnError: func(err error) {
			debuglog.Errorf("%v", err)
			program.Send(tui.ErrorMsg{Err: err})
		},
	})

	program = tea.NewProgram(tui.NewApp(core, loop, cfg, backend), tea.WithAltScreen(), tea.WithContext(ctx))
	loop.OnIdle(tui.SnapshotPublisher(program, core))

	loopErr := make(chan error, 1)
	go func() {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil {
			program.Quit()
		}
		loopErr <- err
	}()

	loop.Post(func() {
		if err := core.Start(); err != nil {
			debuglog.Errorf("%v", err)
			program.Send(tui.ErrorMsg{Err: err})
		}
	})

	_, runErr := program.Run()
	cancel()
	if err := <-loopErr; err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}
