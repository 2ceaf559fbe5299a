package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hrpro/internal/client"
)

func newClientCmd(e *env) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Query a running HR Pro API",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "api", "", "API base URL (default http://localhost:$PORT/api)")

	controller := func() *client.Controller {
		url := baseURL
		if url == "" {
			url = fmt.Sprintf("http://localhost:%d/api", e.cfg.Port)
		}
		return client.NewController(client.New(url, nil), nil, e.log)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "employees [query]",
		Short: "List employees, fuzzy-filtered by an optional query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := controller()
			if err := c.RefreshEmployees(cmd.Context()); err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return writeJSON(cmd.OutOrStdout(), c.Search(query))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "employee <id>",
		Short: "Show the full record of one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := controller()
			if err := c.SelectEmployee(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), c.State().Employee)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "enroll <trainingId> <employeeId>",
		Short: "Enroll an employee in a training",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := controller()
			if err := c.AddParticipant(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.State().Notice)
			return nil
		},
	})
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
