package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) linkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link <plantId> <potId>",
		Short: "Put a plant into a pot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, potID, err := linkArgs(args)
			if err != nil {
				return err
			}
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			if err := c.Link(cmd.Context(), plantID, potID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Plant %d is now in pot %d\n", plantID, potID)
			return nil
		},
	}
}

func (a *App) unlinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <plantId> <potId>",
		Short: "Take a plant out of a pot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, potID, err := linkArgs(args)
			if err != nil {
				return err
			}
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			if err := c.Unlink(cmd.Context(), plantID, potID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Plant %d is not in pot %d\n", plantID, potID)
			return nil
		},
	}
}

func linkArgs(args []string) (int64, int64, error) {
	plantID, err := parseID("plantId", args[0])
	if err != nil {
		return 0, 0, err
	}
	potID, err := parseID("potId", args[1])
	if err != nil {
		return 0, 0, err
	}
	return plantID, potID, nil
}
