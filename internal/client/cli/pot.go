package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) potCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pot",
		Short: "Manage smart pots",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Register a pot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			p, err := c.CreatePot(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created pot %d\n", p.ID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your pots and what grows in them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			pots, err := c.ListPots(cmd.Context())
			if err != nil {
				return err
			}
			if len(pots) == 0 {
				fmt.Fprintln(a.out, "No pots yet")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPLANT")
			for _, p := range pots {
				plant := "(empty)"
				if p.PlantID != nil && p.PlantName != nil {
					plant = fmt.Sprintf("%s (#%d)", *p.PlantName, *p.PlantID)
				}
				fmt.Fprintf(w, "%d\t%s\n", p.ID, plant)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}
