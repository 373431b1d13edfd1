package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaultsandbox/securestore"
	"github.com/vaultsandbox/securestore/kv"
	"github.com/vaultsandbox/securestore/markdown"
)

// app carries state shared by the commands of one invocation.
type app struct {
	cfg      Config
	settings settings
	logger   *slog.Logger

	// Flag overrides
	namespace string
	backend   string
	path      string
	verbose   bool

	closer io.Closer
	store  *securestore.SecureStore
}

func run(args []string, cfg Config) error {
	a := &app{cfg: cfg}
	defer a.close()

	root := a.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	return root.ExecuteContext(context.Background())
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "securestore",
		Short: "Encrypted local key-value storage",
		Long: `securestore reads and writes values in a local key-value store,
encrypting each value with AES-256-GCM. The key is created on first use and
kept in the same store under "<namespace>_encryption_key".

Configuration is read from SECURESTORE_* environment variables and an
optional .env file; flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.namespace, "namespace", "n", "", "namespace scoping the encryption key (env SECURESTORE_NAMESPACE)")
	flags.StringVar(&a.backend, "backend", "", "storage backend: file, sqlite or memory (env SECURESTORE_BACKEND)")
	flags.StringVar(&a.path, "path", "", "backend file path (env SECURESTORE_PATH)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.setCmd(),
		a.getCmd(),
		a.lookupCmd(),
		a.removeCmd(),
		a.clearCmd(),
		a.keyCmd(),
		a.renderCmd(),
	)
	return root
}

// configure loads settings, applies flag overrides and sets up logging.
func (a *app) configure(cmd *cobra.Command) error {
	s, err := loadSettings(a.cfg)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("namespace") {
		s.Namespace = a.namespace
	}
	if flags.Changed("backend") {
		s.Backend = a.backend
	}
	if flags.Changed("path") {
		s.Path = a.path
	}
	if err := s.validate(); err != nil {
		return err
	}
	a.settings = s

	level := s.logLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.cfg.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// secureStore opens the configured backend on first use.
func (a *app) secureStore() (*securestore.SecureStore, error) {
	if a.store != nil {
		return a.store, nil
	}

	backend, closer, err := openBackend(a.settings)
	if err != nil {
		return nil, err
	}
	a.closer = closer
	a.logger.Debug("opened store", "backend", a.settings.Backend, "path", a.settings.Path, "namespace", a.settings.Namespace)

	store, err := securestore.New(backend,
		securestore.WithNamespace(a.settings.Namespace),
		securestore.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil && a.logger != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
	a.closer = nil
}

func openBackend(s settings) (kv.Store, io.Closer, error) {
	switch s.Backend {
	case backendMemory:
		m := kv.NewMemory()
		return m, m, nil
	case backendSQLite:
		db, err := kv.OpenSQLite(s.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		f, err := kv.OpenFile(s.Path)
		if err != nil {
			return nil, nil, err
		}
		return f, f, nil
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Encrypt and store a value (read from stdin when VALUE is omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := valueArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			store, err := a.secureStore()
			if err != nil {
				return err
			}
			return store.SetItem(cmd.Context(), args[0], value)
		},
	}
}

// valueArg returns args[1], or stdin without its trailing newline.
func valueArg(stdin io.Reader, args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	data, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r"), nil
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a decrypted value (empty when absent or unreadable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.secureStore()
			if err != nil {
				return err
			}
			value, err := store.GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func (a *app) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup KEY",
		Short: "Print a decrypted value, failing if it is absent or unreadable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.secureStore()
			if err != nil {
				return err
			}
			value, err := store.Lookup(cmd.Context(), args[0])
			switch {
			case errors.Is(err, securestore.ErrNotFound):
				return fmt.Errorf("no entry for %q", args[0])
			case errors.Is(err, securestore.ErrDecryptionFailed):
				return fmt.Errorf("entry %q is unreadable: %w", args[0], err)
			case err != nil:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm KEY",
		Aliases: []string{"remove"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.secureStore()
			if err != nil {
				return err
			}
			return store.RemoveItem(cmd.Context(), args[0])
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry and every encryption key in the store",
		Long: `Delete every entry in the underlying store, including the encryption
keys of all namespaces sharing it. Values encrypted before the clear can
never be decrypted again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("clear destroys all keys and entries; pass --yes to confirm")
			}
			store, err := a.secureStore()
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Store cleared"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the clear")
	return cmd
}

func (a *app) keyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Show the key entry name and fingerprint, creating the key if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.secureStore()
			if err != nil {
				return err
			}
			key, err := store.Keys().GetOrCreateKey(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "namespace:   %s\n", store.Namespace())
			fmt.Fprintf(out, "entry:       %s\n", store.Keys().KeyName())
			fmt.Fprintf(out, "fingerprint: %s\n", key.Fingerprint())
			return nil
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render Markdown to HTML (reads stdin when FILE is omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), markdown.Render(string(data)))
			return nil
		},
	}
}

func fatal(format string, args ...any) {
	printError(os.Stderr, fmt.Errorf(format, args...))
	os.Exit(1)
}

// printError writes err with a red [error] prefix.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("[error] ")+err.Error())
}
