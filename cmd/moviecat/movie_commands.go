package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moviecat/internal/catalog"
	"moviecat/internal/library"
	"moviecat/internal/services"
)

func newMovieCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(ctx),
		newAddCommand(ctx),
		newDeleteCommand(ctx),
		newUpdateCommand(ctx),
		newStatsCommand(ctx),
		newRandomCommand(ctx),
		newSearchCommand(ctx),
		newSortedCommand(ctx),
		newWebsiteCommand(ctx),
	}
}

func titleArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// movieList is the --json shape for commands that print movies.
type movieList struct {
	Count  int             `json:"count"`
	Movies []catalog.Movie `json:"movies"`
}

func newMovieList(movies []catalog.Movie) movieList {
	if movies == nil {
		movies = []catalog.Movie{}
	}
	return movieList{Count: len(movies), Movies: movies}
}

func printMovies(cmd *cobra.Command, movies []catalog.Movie, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, newMovieList(movies))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d movie(s) in total\n", len(movies))
	if len(movies) > 0 {
		fmt.Fprintln(out, renderMovieTable(movies))
	}
	return nil
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				movies, err := svc.List(cmd.Context())
				if err != nil {
					return newUserError(err, "")
				}
				return printMovies(cmd, movies, asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		manual bool
		year   string
		rating string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie by looking it up, or manually with --manual",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := titleArg(args)
			return ctx.withService(func(svc *library.Service) error {
				var (
					movie catalog.Movie
					err   error
				)
				if manual {
					movie, err = addManual(cmd.Context(), svc, title, year, rating)
				} else {
					movie, err = svc.Add(cmd.Context(), title)
				}
				if err != nil {
					return newUserError(err, title)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Movie '%s' added successfully.\n", movie.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&manual, "manual", false, "Skip the metadata lookup and use --year and --rating")
	cmd.Flags().StringVar(&year, "year", "", "Release year (with --manual)")
	cmd.Flags().StringVar(&rating, "rating", "", "Rating from 0 to 10 (with --manual)")
	return cmd
}

func addManual(ctx context.Context, svc *library.Service, title, yearInput, ratingInput string) (catalog.Movie, error) {
	year, ok := catalog.ParseYear(yearInput)
	if !ok {
		return catalog.Movie{}, services.Wrap(services.ErrValidation, "cli", "add", fmt.Sprintf("year %q is invalid", yearInput), nil)
	}
	rating, ok := catalog.ParseRating(ratingInput)
	if !ok {
		return catalog.Movie{}, services.Wrap(services.ErrValidation, "cli", "add", fmt.Sprintf("rating %q is invalid", ratingInput), nil)
	}
	return svc.AddManual(ctx, catalog.Movie{Title: title, Year: year, Rating: rating})
}

// notFoundError appends close title matches to a not-found error.
func notFoundError(ctx context.Context, svc *library.Service, err error, title string) error {
	uerr := &userError{message: describeError(err, title), err: err}
	if !errors.Is(err, services.ErrNotFound) {
		return uerr
	}
	if suggestions, suggestErr := svc.Suggest(ctx, title); suggestErr == nil {
		if line := suggestionLine(suggestions); line != "" {
			uerr.message += "\n" + line
		}
	}
	return uerr
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a movie (title match ignores case)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := titleArg(args)
			return ctx.withService(func(svc *library.Service) error {
				if err := svc.Delete(cmd.Context(), title); err != nil {
					return notFoundError(cmd.Context(), svc, err, title)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Movie '%s' deleted successfully.\n", title)
				return nil
			})
		},
	}
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var ratingInput string
	cmd := &cobra.Command{
		Use:   "update <title> --rating <0-10>",
		Short: "Update a movie's rating",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := titleArg(args)
			rating, ok := catalog.ParseRating(ratingInput)
			if !ok {
				return &userError{message: fmt.Sprintf("Rating %s is invalid.", ratingInput)}
			}
			return ctx.withService(func(svc *library.Service) error {
				if err := svc.UpdateRating(cmd.Context(), title, rating); err != nil {
					return notFoundError(cmd.Context(), svc, err, title)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Movie %s successfully updated\n", title)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&ratingInput, "rating", "", "New rating from 0 to 10")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show average, median, best and worst movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				stats, err := svc.Stats(cmd.Context())
				if err != nil {
					return newUserError(err, "")
				}
				if asJSON {
					return writeJSON(cmd, stats)
				}
				printStats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newRandomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Pick a random movie for tonight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				movie, err := svc.Random(cmd.Context())
				if err != nil {
					return newUserError(err, "")
				}
				fmt.Fprintln(cmd.OutOrStdout(), randomLine(movie))
				return nil
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <part of title>",
		Short: "Find movies whose title contains the query (ignoring case)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := titleArg(args)
			return ctx.withService(func(svc *library.Service) error {
				matches, err := svc.Search(cmd.Context(), query)
				if err != nil {
					return newUserError(err, "")
				}
				return printMovies(cmd, matches, asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newSortedCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sorted",
		Short: "List movies by rating, best first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				movies, err := svc.Sorted(cmd.Context())
				if err != nil {
					return newUserError(err, "")
				}
				return printMovies(cmd, movies, asJSON)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newWebsiteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "website",
		Short: "Generate the static HTML page for the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *library.Service) error {
				path, err := svc.GenerateWebsite(cmd.Context())
				if err != nil {
					return newUserError(err, "")
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Website was generated successfully.")
				fmt.Fprintln(out, path)
				return nil
			})
		},
	}
}
