package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"flixnet/pkg/database"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample movie catalog, skipping titles that already exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close()

		file := cfg.SeedFile
		if seedFile != "" {
			file = seedFile
		}
		return runSeed(cmd.Context(), db, file, logger)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON array of movies to seed instead of the built-in catalog")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context, db *sql.DB, file string, logger zerolog.Logger) error {
	movies := database.DefaultMovies
	if file != "" {
		loaded, err := database.LoadMoviesFromJSON(file)
		if err != nil {
			return err
		}
		movies = loaded
	}
	n, err := database.SeedMovies(ctx, db, movies)
	if err != nil {
		return err
	}
	logger.Info().Int("inserted", n).Int("total", len(movies)).Msg("seeded movies")
	return nil
}
