package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"leadtrack/internal/bootstrap"
	catalogdto "leadtrack/internal/modules/catalog/dto"
	shiftdto "leadtrack/internal/modules/shift/dto"
	"leadtrack/internal/platform/clock"
	"leadtrack/internal/platform/config"
	"leadtrack/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	workspace string
	logLevel  string
	asJSON    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "leadtrack",
		Short:         "Shift tracker for lead status changes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.workspace, "workspace", ".", "workspace directory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides leadtrack.yaml)")
	root.PersistentFlags().BoolVar(&flags.asJSON, "json", false, "print results as JSON")

	root.AddCommand(newShiftCmd(flags))
	root.AddCommand(newClientCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newSeedCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *rootFlags, logOut io.Writer) (*bootstrap.App, error) {
	cfg, err := config.New(flags.workspace)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	return bootstrap.New(ctx, cfg, logging.New(level, logOut))
}

// withApp loads the workspace, runs fn and closes the stores.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	app, err := loadApp(ctx, flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

func orNow(value string) string {
	if strings.TrimSpace(value) == "" {
		return clock.TimeOfDay(time.Now())
	}
	return strings.TrimSpace(value)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ─── shift ───────────────────────────────────────────────────────────────────

func newShiftCmd(flags *rootFlags) *cobra.Command {
	shift := &cobra.Command{Use: "shift", Short: "Start, end and review shifts"}

	var operator, login string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a shift and snapshot current lead counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				name := operator
				if name == "" {
					name = app.Config.Operator
				}
				out, err := app.ShiftCLI.Start(ctx, name, orNow(login))
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(cmd.OutOrStdout(), out)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "shift started %s (%s) %s %s\n", out.ID, out.OperatorName, out.Date, out.LoginTime)
				printCounts(w, out.EntrySnapshot)
				return nil
			})
		},
	}
	startCmd.Flags().StringVar(&operator, "operator", "", "operator name (defaults to leadtrack.yaml operator)")
	startCmd.Flags().StringVar(&login, "login", "", "login time HH:MM (defaults to now)")

	var previewLogout string
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what ending the active shift would record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ShiftCLI.Preview(ctx, orNow(previewLogout))
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printSession(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	previewCmd.Flags().StringVar(&previewLogout, "logout", "", "logout time HH:MM (defaults to now)")

	var endSessionID, endLogout string
	endCmd := &cobra.Command{
		Use:   "end",
		Short: "End a shift and record conversions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ShiftCLI.End(ctx, endSessionID, orNow(endLogout))
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(cmd.OutOrStdout(), out)
				}
				printSession(cmd.OutOrStdout(), out)
				if out.NotePath != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note=%s\n", out.NotePath)
				}
				return nil
			})
		},
	}
	endCmd.Flags().StringVar(&endSessionID, "session-id", "", "session to end (defaults to the active one)")
	endCmd.Flags().StringVar(&endLogout, "logout", "", "logout time HH:MM (defaults to now)")

	var deleteSessionID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a completed shift",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ShiftCLI.Delete(ctx, deleteSessionID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteSessionID)
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteSessionID, "session-id", "", "session id")
	_ = deleteCmd.MarkFlagRequired("session-id")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the active shift's entry counts with current counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ShiftCLI.Status(ctx)
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(cmd.OutOrStdout(), out)
				}
				w := cmd.OutOrStdout()
				if !out.HasActive {
					_, _ = fmt.Fprintln(w, "no active shift")
					printCounts(w, out.Current)
					return nil
				}
				a := out.Active
				_, _ = fmt.Fprintf(w, "active %s (%s) since %s %s\n", a.ID, a.OperatorName, a.Date, a.LoginTime)
				printChanges(w, out.Changes)
				return nil
			})
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List shifts, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.ShiftCLI.History(ctx)
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(cmd.OutOrStdout(), sessions)
				}
				w := cmd.OutOrStdout()
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(w, "no shifts")
					return nil
				}
				for _, s := range sessions {
					if s.IsActive {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s-\tactive\n", s.ID, s.Date, s.OperatorName, s.LoginTime)
						continue
					}
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s-%s\t~%d calls\n", s.ID, s.Date, s.OperatorName, s.LoginTime, s.LogoutTime, s.EstimatedCallCount)
				}
				return nil
			})
		},
	}

	shift.AddCommand(startCmd, previewCmd, endCmd, deleteCmd, statusCmd, historyCmd)
	return shift
}

func printCounts(w io.Writer, entries []shiftdto.SnapshotEntry) {
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "  %-20s %d\n", e.Status, e.Count)
	}
}

func printChanges(w io.Writer, rows []shiftdto.ChangeOutput) {
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "  %-20s %5d -> %-5d %+d\n", r.Status, r.Entry, r.Exit, r.Delta)
	}
}

func printSession(w io.Writer, s shiftdto.SessionOutput) {
	_, _ = fmt.Fprintf(w, "%s (%s) %s %s-%s\n", s.ID, s.OperatorName, s.Date, s.LoginTime, s.LogoutTime)
	printChanges(w, s.Changes)
	_, _ = fmt.Fprintf(w, "estimated calls: %d\n", s.EstimatedCallCount)
}

// ─── catalog ─────────────────────────────────────────────────────────────────

func newClientCmd(flags *rootFlags) *cobra.Command {
	client := &cobra.Command{Use: "client", Short: "Manage clients"}

	var input catalogdto.AddClientInput
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				input.Name = args[0]
				out, err := app.CatalogCLI.AddClient(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Name, out.ID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&input.Status, "status", "", "lead status")
	addCmd.Flags().StringVar(&input.Phone, "phone", "", "phone")
	addCmd.Flags().StringVar(&input.Email, "email", "", "email")
	addCmd.Flags().StringVar(&input.Company, "company", "", "company")
	addCmd.Flags().StringVar(&input.Priority, "priority", "", "priority")
	addCmd.Flags().StringVar(&input.CallOutcome, "call-outcome", "", "last call outcome")
	addCmd.Flags().BoolVar(&input.FollowUpRequired, "follow-up", false, "follow-up required")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				clients, err := app.CatalogCLI.ListClients(ctx)
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(cmd.OutOrStdout(), clients)
				}
				if len(clients) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no clients")
					return nil
				}
				for _, c := range clients {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Status, c.Company)
				}
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <client-id> <status>",
		Short: "Change a client's lead status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CatalogCLI.UpdateStatus(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", out.Name, out.Status)
				return nil
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <client-id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.CatalogCLI.DeleteClient(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	client.AddCommand(addCmd, listCmd, statusCmd, deleteCmd)
	return client
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	status := &cobra.Command{Use: "status", Short: "Manage lead status categories"}

	status.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List status categories in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				categories, err := app.CatalogCLI.ListStatuses(ctx)
				if err != nil {
					return err
				}
				for _, c := range categories {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	})
	status.AddCommand(&cobra.Command{
		Use:   "add <status>",
		Short: "Append a status category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CatalogCLI.AddStatus(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Name, strings.Join(out.Options, ", "))
				return nil
			})
		},
	})
	status.AddCommand(&cobra.Command{
		Use:   "remove <status>",
		Short: "Remove a status category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CatalogCLI.RemoveStatus(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Name, strings.Join(out.Options, ", "))
				return nil
			})
		},
	})
	return status
}

func newSeedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install default dropdowns into an empty workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				seeded, err := app.CatalogCLI.Seed(ctx)
				if err != nil {
					return err
				}
				if seeded {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "default dropdowns installed")
				} else {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "dropdowns already configured")
				}
				return nil
			})
		},
	}
}

// ─── surfaces ────────────────────────────────────────────────────────────────

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shift HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				listen := addr
				if listen == "" {
					listen = app.Config.HTTPAddr
				}
				return bootstrap.Serve(ctx, app, listen)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to leadtrack.yaml http_addr)")
	return cmd
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the leadtrack terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			// the alt screen owns the terminal; keep warnings out of it
			app, err := loadApp(ctx, flags, io.Discard)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(ctx, app)
		},
	}
}
