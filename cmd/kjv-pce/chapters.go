// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metcalfeakj/KJV-PCE/internal/verses"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the book names in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		books, err := store.Books(cmd.Context())
		if err != nil {
			return err
		}
		for _, b := range books {
			fmt.Fprintln(os.Stdout, b)
		}
		return nil
	},
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters <book>",
	Short: "List the chapter numbers of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.BookID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		chapters, err := store.Chapters(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printChapters(os.Stdout, args[0], chapters)
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(chaptersCmd)
}

func openStore() (*verses.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return verses.Open(cfg.DBPath)
}

func printChapters(w io.Writer, book string, chapters []int) error {
	if len(chapters) == 0 {
		_, err := fmt.Fprintf(w, "%s has no chapters\n", book)
		return err
	}
	for _, ch := range chapters {
		if _, err := fmt.Fprintf(w, "%s %d\n", book, ch); err != nil {
			return err
		}
	}
	return nil
}
