package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"storefront/internal/cli"
	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "storefront <dbname> [port] [user]",
		Short:         "Interactive client for the store database",
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin := bufio.NewReader(os.Stdin)
			cfg, err := setup(v, cfgFile, args, stdin)
			if err != nil {
				return report(err)
			}
			defer applog.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// The menu notices cancellation at its next prompt; a second
			// interrupt kills the process while a read is still blocked.
			context.AfterFunc(ctx, stop)

			gw, err := connect(ctx, cfg.DB)
			if err != nil {
				return report(err)
			}
			defer gw.Close()

			console := cli.New(services.New(gw), stdin, os.Stdout)
			if term.IsTerminal(int(os.Stdin.Fd())) {
				console.ReadPassword = readHidden
			}
			return report(console.Run(ctx))
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	f.String("driver", config.DriverPostgres, "database driver: postgres or sqlite")
	f.String("host", "localhost", "database host")
	f.String("sslmode", "disable", "postgres sslmode")
	f.String("log-level", "info", "log level")
	f.String("log-file", "./storefront.log", "log file; empty logs to stderr")
	f.Bool("seed", true, "load demo data into an empty sqlite database")
	for key, flag := range map[string]string{
		"db.driver":  "driver",
		"db.host":    "host",
		"db.sslmode": "sslmode",
		"log.level":  "log-level",
		"log.file":   "log-file",
		"db.seed":    "seed",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	root.AddCommand(newServeCmd(v, &cfgFile))
	return root
}

func newServeCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <dbname> [port] [user]",
		Short: "Serve the store workflows as a JSON API",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(v, *cfgFile, args, bufio.NewReader(os.Stdin))
			if err != nil {
				return report(err)
			}
			defer applog.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gw, err := connect(ctx, cfg.DB)
			if err != nil {
				return report(err)
			}
			defer gw.Close()
			if err := repos.EnsureSessions(ctx, gw); err != nil {
				return report(err)
			}

			svc := services.New(gw)
			svc.Auth.SessionTTL = cfg.HTTP.SessionTTL
			app := handlers.NewApp(svc, handlers.Options{})
			errc := make(chan error, 1)
			go func() { errc <- app.Listen(cfg.HTTP.Addr) }()
			applog.Info(nil, "http.listen", map[string]any{"addr": cfg.HTTP.Addr})

			select {
			case err := <-errc:
				return report(err)
			case <-ctx.Done():
			}
			applog.Info(nil, "http.shutdown", nil)
			return app.ShutdownWithTimeout(5 * time.Second)
		},
	}
	cmd.Flags().String("addr", ":8081", "listen address")
	_ = v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// setup merges positional args into the config, starts logging, and asks for
// the database password when none was configured.
func setup(v *viper.Viper, cfgFile string, args []string, stdin *bufio.Reader) (config.Config, error) {
	keys := []string{"db.name", "db.port", "db.user"}
	for i, a := range args {
		v.Set(keys[i], a)
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return cfg, err
	}
	if err := applog.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		return cfg, fmt.Errorf("could not start logging: %w", err)
	}
	if err := cfg.DB.Validate(); err != nil {
		return cfg, &repos.ConnectionError{Driver: cfg.DB.Driver, Err: err}
	}
	if cfg.DB.NeedsPassword() {
		pw, err := promptPassword(stdin, fmt.Sprintf("Password for %s@%s: ", cfg.DB.User, cfg.DB.Name))
		if err != nil {
			return cfg, err
		}
		if pw == "" {
			return cfg, &repos.ConnectionError{Driver: cfg.DB.Driver, Err: errors.New("a database password is required")}
		}
		cfg.DB.Password = pw
	}
	return cfg, nil
}

func connect(ctx context.Context, db config.DBConfig) (*repos.Gateway, error) {
	fmt.Printf("Connecting to %s database %q...\n", db.Driver, db.Name)
	gw, err := repos.OpenDB(ctx, db)
	if err != nil {
		return nil, err
	}
	applog.Info(nil, "db.connect", map[string]any{"driver": db.Driver, "name": db.Name, "host": db.Host})
	fmt.Println("Done")
	return gw, nil
}

func promptPassword(stdin *bufio.Reader, prompt string) (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return readHidden(prompt)
	}
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readHidden(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return string(b), err
}

// report prints err for the user and passes it on so the process exits 1.
func report(err error) error {
	if err == nil {
		return nil
	}
	var ce *repos.ConnectionError
	if errors.As(err, &ce) {
		fmt.Fprintf(os.Stderr, "Error - %v\n", ce)
		if ce.Driver == config.DriverPostgres {
			fmt.Fprintln(os.Stderr, "Make sure postgres is running and reachable with these parameters.")
		}
	} else {
		fmt.Fprintf(os.Stderr, "Error - %v\n", err)
	}
	applog.Error(nil, "fatal", err, nil)
	return err
}
