package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"clinic-admin/internal/clinic"
	"clinic-admin/internal/config"
	"clinic-admin/internal/console"
	"clinic-admin/internal/gateway"
	"clinic-admin/internal/logging"
	"clinic-admin/internal/reconcile"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := newRootCmd(cfg, os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries what every command needs to build its workspace.
type app struct {
	cfg       config.ClientConfig
	in        io.Reader
	out       io.Writer
	logger    zerolog.Logger
	assumeYes bool
}

func (a *app) workspace() *clinic.Workspace {
	client := gateway.NewClient(a.cfg.APIURL,
		gateway.WithToken(a.cfg.APIToken),
		gateway.WithTimeout(a.cfg.RequestTimeout),
		gateway.WithLogger(a.logger),
	)

	var confirmer reconcile.Confirmer = console.NewPrompter(a.in, a.out)
	if a.assumeYes {
		confirmer = console.AssumeYes
	}
	policy := reconcile.NewPolicy(console.NewToaster(a.out), confirmer, a.logger)
	return clinic.NewWorkspace(clinic.NewGateways(client), policy)
}

func newRootCmd(cfg *config.Config, in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{cfg: cfg.Client, in: in, out: out}

	rootCmd := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Manage patients, doctors, consultation rooms and appointments",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.New(errOut, a.cfg.LogLevel, true)
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfg.APIURL, "api-url", a.cfg.APIURL, "base URL of the clinic API (CLINIC_API_URL)")
	flags.StringVar(&a.cfg.APIToken, "token", a.cfg.APIToken, "bearer token (CLINIC_API_TOKEN)")
	flags.IntVar(&a.cfg.PageSize, "page-size", a.cfg.PageSize, "rows per table page (CLINIC_PAGE_SIZE)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (CLINIC_LOG_LEVEL)")
	flags.BoolVarP(&a.assumeYes, "yes", "y", false, "answer yes to delete confirmations")

	rootCmd.AddCommand(overviewCmd(a))
	rootCmd.AddCommand(patientScreen().command(a))
	rootCmd.AddCommand(doctorScreen().command(a))
	rootCmd.AddCommand(roomScreen().command(a))
	rootCmd.AddCommand(appointmentScreen().command(a))

	return rootCmd
}
