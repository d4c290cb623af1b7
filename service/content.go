package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogview/app/repositories"
	"blogview/app/services"

	"github.com/spf13/cobra"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage the Badger content store",
	}

	cmd.AddCommand(newContentInitCmd())
	cmd.AddCommand(newContentImportCmd())
	cmd.AddCommand(newContentImportMarkdownCmd())
	cmd.AddCommand(newContentExportCmd())
	cmd.AddCommand(newContentBackupCmd())
	cmd.AddCommand(newContentRestoreCmd())
	cmd.AddCommand(newContentCleanCmd())
	return cmd
}

func storeDir(cmd *cobra.Command) (string, error) {
	app, err := getApp(cmd)
	if err != nil {
		return "", err
	}
	return app.Config.Store.Dir, nil
}

func storeExists(dir string) bool {
	_, err := os.Stat(dir)
	return err == nil
}

// withStore opens the content store for the duration of fn.
func withStore(dir string, fn func(*repositories.BadgerDocumentRepository) error) error {
	db, err := repositories.OpenBadger(dir)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(repositories.NewBadgerDocumentRepository(db))
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

func newContentInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty content store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storeDir(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if storeExists(dir) {
				fmt.Fprintln(out, "Content store already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create store directory: %w", err)
			}
			if err := withStore(dir, func(*repositories.BadgerDocumentRepository) error { return nil }); err != nil {
				return err
			}
			fmt.Fprintln(out, "Content store initialized successfully")
			return nil
		},
	}
}

// importDocument validates doc as a posts document and stores it.
func importDocument(cmd *cobra.Command, doc []byte) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	check := services.NewPostStore(staticSource(doc), services.WithLogger(app.Logger.Named("import")))
	collection, err := check.Load(cmd.Context())
	if err != nil {
		return err
	}

	err = withStore(app.Config.Store.Dir, func(repo *repositories.BadgerDocumentRepository) error {
		return repo.Put(doc)
	})
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d posts\n", collection.Len())
	return nil
}

type staticSource []byte

func (s staticSource) Fetch(context.Context) ([]byte, error) {
	return s, nil
}

func newContentImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <posts.json>",
		Short: "Replace the stored posts document with a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			return importDocument(cmd, doc)
		},
	}
}

func newContentImportMarkdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-md <dir>",
		Short: "Build the posts document from Markdown files with YAML front matter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := services.ImportMarkdown(args[0])
			if err != nil {
				return err
			}
			return importDocument(cmd, doc)
		},
	}
}

func newContentExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored posts document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storeDir(cmd)
			if err != nil {
				return err
			}
			if !storeExists(dir) {
				return errors.New("no content store exists")
			}

			var doc []byte
			err = withStore(dir, func(repo *repositories.BadgerDocumentRepository) error {
				doc, err = repo.Get()
				return err
			})
			if errors.Is(err, repositories.ErrNotFound) {
				return errors.New("the content store holds no posts document")
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported posts document to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")
	return cmd
}

func newContentBackupCmd() *cobra.Command {
	var backupDir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a checksummed backup of the content store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storeDir(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !storeExists(dir) {
				fmt.Fprintln(out, "No content store exists to backup")
				return nil
			}
			if err := os.MkdirAll(backupDir, 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			var sumFile string
			err = withStore(dir, func(repo *repositories.BadgerDocumentRepository) error {
				sumFile, err = repositories.WriteBackup(repo, backupFile)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Content store backed up successfully to %s (checksum %s)\n", backupFile, sumFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&backupDir, "dir", "data/backups", "directory for backup files")
	return cmd
}

func newContentRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the content store from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storeDir(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			backupFile := args[0]

			if _, err := os.Stat(backupFile); err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}

			if storeExists(dir) {
				if !yes && !confirm(cmd, "Existing content store found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(dir); err != nil {
					return fmt.Errorf("failed to remove existing store: %w", err)
				}
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create store directory: %w", err)
			}

			err = withStore(dir, func(repo *repositories.BadgerDocumentRepository) error {
				return repositories.ReadBackup(repo, backupFile)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Content store restored successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing store without asking")
	return cmd
}

func newContentCleanCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the content store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := storeDir(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !storeExists(dir) {
				fmt.Fprintln(out, "Content store is already clean (does not exist)")
				return nil
			}
			if !yes && !confirm(cmd, "Are you sure you want to clean the content store? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("failed to clean content store: %w", err)
			}
			fmt.Fprintln(out, "Content store cleaned successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

