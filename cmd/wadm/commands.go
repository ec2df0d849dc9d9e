package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/wadm-client/internal/query"
	"github.com/Sternrassler/wadm-client/pkg/client"
	"github.com/Sternrassler/wadm-client/pkg/pagination"
)

var errProbeFailed = errors.New("API check failed")

// listFlags are shared by the listing commands.
type listFlags struct {
	order    string
	medium   string
	size     string
	language string
	locale   string
	page     int
	where    string
}

func (f *listFlags) register(cmd *cobra.Command, withListing bool) {
	cmd.Flags().StringVar(&f.order, "order", "", "sort order (date_asc, date_desc, title_asc, title_desc)")
	cmd.Flags().StringVar(&f.medium, "medium", "", "medium id or name, e.g. 1 or canvas")
	cmd.Flags().StringVar(&f.size, "size", "", "size (small, medium, large, xlarge)")
	cmd.Flags().StringVar(&f.language, "language", "", "language code (nl, de, fr, en)")
	cmd.Flags().StringVar(&f.locale, "locale", "", "locale, e.g. nl_NL")
	if withListing {
		cmd.Flags().IntVar(&f.page, "page", 0, "fetch only this page (default all pages)")
		cmd.Flags().StringVar(&f.where, "where", "", "local filter expression, e.g. 'ratio > 1'")
	}
}

func (f *listFlags) filter() (*client.Filter, error) {
	return client.ParseFilter(client.FilterParams{
		Order:        f.order,
		Medium:       f.medium,
		Size:         f.size,
		LanguageCode: f.language,
		Locale:       f.locale,
	})
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			connected := a.client.ConnectionTest(ctx)
			authenticated := a.client.AuthenticationTest(ctx)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "connection: %s\n", status(connected))
			fmt.Fprintf(out, "authentication: %s\n", status(authenticated))

			if !connected || !authenticated {
				return errProbeFailed
			}
			return nil
		},
	}
}

func newArtworksCmd(a *app) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "artworks",
		Short: "List the user's artworks as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runListing(cmd, flags, 0)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newAlbumCmd(a *app) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "album <albumId>",
		Short: "List an album's artworks as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.runListing(cmd, flags, albumID)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newArtworkCmd(a *app) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "artwork <artworkId>",
		Short: "Show one artwork as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artworkID, err := parseID(args[0])
			if err != nil {
				return err
			}
			filter, err := flags.filter()
			if err != nil {
				return err
			}

			artwork, ok, err := a.client.GetArtworkByID(cmd.Context(), artworkID, filter)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "artwork %d not found\n", artworkID)
				return nil
			}
			return printJSON(cmd.OutOrStdout(), artwork)
		},
	}
	flags.register(cmd, false)
	return cmd
}

// runListing prints the artworks of the user (albumID 0) or of an album.
func (a *app) runListing(cmd *cobra.Command, flags *listFlags, albumID int) error {
	filter, err := flags.filter()
	if err != nil {
		return err
	}

	var predicate *query.Predicate
	if flags.where != "" {
		if predicate, err = query.Compile(flags.where); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	var artworks []client.ArtworkPlus
	switch {
	case flags.page > 0:
		var page client.ArtworkPage
		if albumID == 0 {
			page, _, err = a.client.GetArtworksPage(ctx, flags.page, filter)
		} else {
			page, _, err = a.client.GetArtworksByAlbumID(ctx, albumID, flags.page, filter)
		}
		artworks = page.Artworks
	case albumID == 0:
		artworks, err = a.client.GetArtworks(ctx, filter)
	default:
		artworks, err = a.client.GetArtworksByAlbum(ctx, albumID, filter)
	}
	if errors.Is(err, pagination.ErrPageLimit) {
		a.logger.Warn().Err(err).Int("count", len(artworks)).Msg("Listing truncated")
		err = nil
	}
	if err != nil {
		return err
	}

	if artworks, err = predicate.Filter(artworks); err != nil {
		return err
	}
	if artworks == nil {
		artworks = []client.ArtworkPlus{}
	}

	a.logger.Debug().Int("count", len(artworks)).Msg("Listing complete")
	return printJSON(cmd.OutOrStdout(), artworks)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return id, nil
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
