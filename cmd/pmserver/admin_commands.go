package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	httpapi "github.com/tbourn/go-pm-backend/internal/http"
	"github.com/tbourn/go-pm-backend/internal/services"
)

func newSelfTestCommand(ctx *commandContext) *cobra.Command {
	var service string

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Exercise the notification services without writing integration logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}

			svc := httpapi.NewServices(db, cfg).Integrations
			rep, err := svc.SelfTest(cmd.Context(), service)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Self-test scope: %s\n", rep.Scope)
			rows := make([][]string, 0, len(rep.Checks))
			for _, c := range rep.Checks {
				rows = append(rows, []string{c.Name, strings.ToUpper(c.Status), c.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
			fmt.Fprintln(out, settingsTable(rep.Settings))

			if rep.Failed() {
				return fmt.Errorf("self-test failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "all", "Services to exercise: mail, chat or all")
	return cmd
}

func newPurgeLogsCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "purge-logs",
		Short: "Delete integration logs older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days") && days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}

			n, err := services.NewIntegrationLogService(db, cfg.RetentionDays()).Purge(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d integration log(s)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Age in days; defaults to INTEGRATION_LOG_RETENTION")
	return cmd
}

func newSeedSettingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-settings",
		Short: "Create the default integration settings rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}
			n, err := services.NewSettingsService(db).SeedDefaults(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d settings row(s)\n", n)
			return nil
		},
	}
}

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "List integration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}
			rows, err := services.NewSettingsService(db).List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), settingsTable(rows))
			return nil
		},
	}
}

func newRemindersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Mail a reminder for every overdue task",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}
			rep, err := httpapi.NewServices(db, cfg).Integrations.SendOverdueReminders(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Overdue", "Sent", "Failed"},
				[][]string{{strconv.Itoa(rep.Overdue), strconv.Itoa(rep.Sent), strconv.Itoa(rep.Failed)}},
				[]columnAlignment{alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newDigestCommand(ctx *commandContext) *cobra.Command {
	var orgID uint

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Post today's task digest to an organization's channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()
			if orgID == 0 {
				return fmt.Errorf("--org is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}
			res, err := httpapi.NewServices(db, cfg).Integrations.PostDailyDigest(cmd.Context(), orgID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resultTable(res))
			return nil
		},
	}
	cmd.Flags().UintVar(&orgID, "org", 0, "Organization ID")
	return cmd
}
