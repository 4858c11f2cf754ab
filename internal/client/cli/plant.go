package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/plantkeeper/internal/netx"
)

const photoContentType = "image/jpeg"

func (a *App) plantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Manage plants",
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Add a plant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			p, err := c.CreatePlant(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created plant %d (%s)\n", p.ID, p.Name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your plants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			plants, err := c.ListPlants(cmd.Context())
			if err != nil {
				return err
			}
			if len(plants) == 0 {
				fmt.Fprintln(a.out, "No plants yet")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATED")
			for _, p := range plants {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, p.CreatedAt.Format(time.DateOnly))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(create, list, a.photoCommand())
	return cmd
}

func (a *App) photoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage plant photos",
	}

	upload := &cobra.Command{
		Use:   "upload <plantId> <file.jpg>",
		Short: "Upload a photo of a plant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, err := parseID("plantId", args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			c, err := a.authenticated()
			if err != nil {
				return err
			}
			photo, err := c.RequestPhotoUpload(cmd.Context(), plantID)
			if err != nil {
				return err
			}
			if err := netx.PutPresigned(cmd.Context(), c.HTTPClient(), photo.UploadURL, photoContentType, f, info.Size()); err != nil {
				return err
			}
			if _, err := c.CompletePhoto(cmd.Context(), plantID, photo.ID); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Uploaded photo %d for plant %d\n", photo.ID, plantID)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list <plantId>",
		Short: "List photos of a plant with download links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plantID, err := parseID("plantId", args[0])
			if err != nil {
				return err
			}
			c, err := a.authenticated()
			if err != nil {
				return err
			}
			photos, err := c.ListPhotos(cmd.Context(), plantID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tURL")
			for _, p := range photos {
				url := p.URL
				if url == "" {
					url = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Status, url)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(upload, list)
	return cmd
}
