package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"hrpro/internal/domain/employees"
	"hrpro/internal/platform/db"
	"hrpro/internal/platform/logging"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := db.Connect(ctx, e.cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := db.EnsureSchema(ctx, pool, e.cfg.DBSchema); err != nil {
				return err
			}
			return db.Migrate(ctx, pool, logging.Component(e.log, "migrate"))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := db.Connect(ctx, e.cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			status, err := db.MigrationStatus(ctx, pool)
			if err != nil {
				return err
			}
			versions := make([]int64, 0, len(status))
			for v := range status {
				versions = append(versions, v)
			}
			sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
			for _, v := range versions {
				state := "pending"
				if status[v] {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%05d  %s\n", v, state)
			}
			return nil
		},
	})
	return cmd
}

func newSeedCmd(e *env) *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the department list and, with --demo, sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := db.Connect(ctx, e.cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			policy := employees.NewFlatRate(e.cfg.NetSalaryRate)
			if err := db.Seed(ctx, pool, db.SeedOptions{
				Demo:         demo,
				EmployerName: e.cfg.EmployerName,
				NetSalary:    policy.Net,
			}); err != nil {
				return err
			}
			e.log.Info().Bool("demo", demo).Msg("seed complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Also insert sample employees, trainings, evaluations and jobs")
	return cmd
}
