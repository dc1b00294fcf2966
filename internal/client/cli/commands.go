package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const (
	DefaultServerURL = "http://localhost:8080"
	DefaultDBPath    = "carewatch-client.db"
)

// BuildInfo информация о сборке, задается через ldflags
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Options глобальные флаги клиента
type Options struct {
	ServerURL string
	DBPath    string
}

// Factory создает Cli для выполнения одной команды.
// Возвращаемая функция освобождает ресурсы (закрывает локальную БД).
type Factory func(ctx context.Context, opts Options) (*Cli, func() error, error)

type runner struct {
	factory Factory
	opts    Options
}

// run открывает зависимости на время выполнения команды
func (r *runner) run(fn func(ctx context.Context, c *Cli, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		c, closeFn, err := r.factory(ctx, r.opts)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close local storage: %w", cerr)
			}
		}()

		return fn(ctx, c, args)
	}
}

// NewRootCommand собирает дерево команд клиента
func NewRootCommand(info BuildInfo, factory Factory) *cobra.Command {
	r := &runner{factory: factory}

	root := &cobra.Command{
		Use:           "carewatch",
		Short:         "CareWatch client",
		Long:          "CareWatch client: account management and physiological readings.",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("CareWatch Client\nVersion:    %s\nBuild date: %s\nGit commit: %s\n",
		info.Version, info.BuildDate, info.GitCommit))

	root.PersistentFlags().StringVar(&r.opts.ServerURL, "server", DefaultServerURL, "Server URL")
	root.PersistentFlags().StringVar(&r.opts.DBPath, "db", DefaultDBPath, "Path to local database")

	root.AddCommand(
		&cobra.Command{
			Use:   "register",
			Short: "Register new user",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runRegister(ctx)
			}),
		},
		newLoginCommand(r),
		&cobra.Command{
			Use:   "logout",
			Short: "Logout from server",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runLogout(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show authentication status",
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
				return c.runStatus(ctx)
			}),
		},
		newReadingsCommand(r),
	)

	return root
}

func newLoginCommand(r *runner) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to server",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runLogin(ctx, username)
		}),
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted if empty)")

	return cmd
}

func newReadingsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "readings",
		Aliases: []string{"r"},
		Short:   "Manage physiological readings",
	}

	var in addReadingInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a reading",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runAddReading(ctx, in)
		}),
	}
	add.Flags().Float64Var(&in.HeartRate, "heart-rate", 0, "Heart rate, beats per minute")
	add.Flags().Float64Var(&in.TargetDistance, "distance", 0, "Target distance, metres")
	add.Flags().StringVar(&in.Status, "status", "ok", "Status: ok, warning or alert")
	add.Flags().StringVar(&in.RecordedAt, "recorded-at", "", "Measurement time (RFC3339), server time if empty")
	_ = add.MarkFlagRequired("heart-rate")
	_ = add.MarkFlagRequired("distance")

	var page, pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List your readings",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runListReadings(ctx, page, pageSize)
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&pageSize, "page-size", 10, "Readings per page")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reading",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, c *Cli, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid reading ID %q", args[0])
			}
			return c.runDeleteReading(ctx, id, yes)
		}),
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	mock := &cobra.Command{
		Use:   "mock",
		Short: "Show a sample reading generated by the server",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, c *Cli, _ []string) error {
			return c.runMockReading(ctx)
		}),
	}

	cmd.AddCommand(add, list, del, mock)
	return cmd
}
