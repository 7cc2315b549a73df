package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/sitehealth/config"
	"github.com/jonwraymond/sitehealth/health"
)

// errUnhealthy is returned by run when the report is at or above --fail-on.
var errUnhealthy = errors.New("site is unhealthy")

const closeTimeout = 5 * time.Second

func exitCode(err error) int {
	if errors.Is(err, errUnhealthy) {
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "sitehealth",
		Short:         "Run site health checks",
		Long:          "sitehealth discovers the registered health checks, runs them and prints a report grouped by category.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "",
		fmt.Sprintf("config file (default $%s or %s)", config.EnvPath, config.DefaultPath))

	// withApp opens the app for one command and closes it afterwards.
	withApp := func(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
		ctx := cmd.Context()
		a, err := openApp(ctx, cfgPath, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
			defer cancel()
			err = errors.Join(err, a.Close(closeCtx))
		}()
		return fn(ctx, a)
	}

	root.AddCommand(
		newRunCmd(withApp),
		newChecksCmd(withApp),
		newCategoriesCmd(withApp),
		newProvidersCmd(withApp),
		newCacheCmd(withApp),
	)
	return root
}

type appRunner func(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error

func newRunCmd(withApp appRunner) *cobra.Command {
	var (
		force  bool
		all    bool
		format string
		failOn string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every health check and print the report",
		Long: "Run every health check and print the report.\n\n" +
			"Reports are reused for module.cacheDuration seconds when module.enableCache is set. " +
			"The memory cache backend lives only as long as this process, so only the redis " +
			"backend serves cached reports to later invocations.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := parseFailOn(failOn)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				rep, err := a.runner.RunAll(ctx, force)
				if err != nil {
					return err
				}

				shown := rep
				if !all {
					shown = rep.Filter(a.show())
				}
				if err := renderReport(cmd.OutOrStdout(), format, shown, a.translator); err != nil {
					return err
				}

				if threshold.Present() {
					if limit, _ := threshold.Get(); rep.Status >= limit {
						return fmt.Errorf("%w: status %s", errUnhealthy, rep.Status)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "ignore the cached report and run every check")
	cmd.Flags().BoolVar(&all, "all", false, "show every result regardless of the module show settings")
	cmd.Flags().StringVarP(&format, "format", "o", formatText, "output format: text|json")
	cmd.Flags().StringVar(&failOn, "fail-on", "none", "exit with status 2 at or above this status: none|warning|critical")
	return cmd
}

func parseFailOn(s string) (health.Optional[health.Status], error) {
	if s == "" || s == "none" {
		return health.None[health.Status](), nil
	}
	status, err := health.ParseStatus(s)
	if err != nil {
		return health.None[health.Status](), fmt.Errorf("--fail-on: %w", err)
	}
	return health.Some(status), nil
}

func newChecksCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List the discovered health checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				catalog, err := a.runner.Discover(ctx)
				if err != nil {
					return err
				}
				return renderChecks(cmd.OutOrStdout(), catalog.Checks)
			})
		},
	}
}

func newCategoriesCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the registered categories in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				catalog, err := a.runner.Discover(ctx)
				if err != nil {
					return err
				}
				return renderCategories(cmd.OutOrStdout(), catalog.Categories.All(), a.translator)
			})
		},
	}
}

func newProvidersCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the providers that contribute checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				catalog, err := a.runner.Discover(ctx)
				if err != nil {
					return err
				}
				return renderProviders(cmd.OutOrStdout(), catalog.Providers.All())
			})
		},
	}
}

func newCacheCmd(withApp appRunner) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cached report",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the cached report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.runner.Invalidate(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cached report cleared.")
				return nil
			})
		},
	})
	return cacheCmd
}
