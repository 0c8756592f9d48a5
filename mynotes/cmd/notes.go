// Command-line client for the notes API. Renders pages the way the web UI
// does: cards or a flat list, plus pagination controls.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"mynotes/mynotes/client"
	"mynotes/mynotes/pagination"
	"mynotes/mynotes/sources/psql/models"
	"mynotes/mynotes/utils/jsonutils"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	viewMode  string
)

func main() {
	root := &cobra.Command{
		Use:           "notes",
		Short:         "Browse and edit notes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:4000/api", "base URL of the notes API")

	root.AddCommand(listCmd(), getCmd(), createCmd(), updateCmd(), deleteCmd(), browseCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newController(ctx context.Context, api *client.Client, page int) (*client.Controller, error) {
	ctrl := client.NewController(pagination.DefaultPageSize)
	ctrl.SetPage(page)
	if err := refetch(ctx, api, ctrl); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func refetch(ctx context.Context, api *client.Client, ctrl *client.Controller) error {
	s := ctrl.State()
	res, err := api.List(ctx, s.CurrentPage, s.PageSize)
	if err != nil {
		return err
	}
	ctrl.ApplyList(res)
	return nil
}

// runEffect resolves a reconciliation effect returned by the controller.
func runEffect(ctx context.Context, api *client.Client, ctrl *client.Controller, eff client.Effect) error {
	if eff == client.EffectRefetch {
		return refetch(ctx, api, ctrl)
	}
	return nil
}

func listCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := client.New(serverURL)
			ctrl, err := newController(cmd.Context(), api, page)
			if err != nil {
				return err
			}
			renderPage(ctrl, viewMode)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().StringVar(&viewMode, "view", "card", "view mode: card or list")
	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one note in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := client.New(serverURL)
			note, err := api.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Println(jsonutils.ToJSON(note))
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var title, description, format string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := client.New(serverURL)
			in := client.NoteInput{Title: title}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("format") {
				in.Format = &format
			}
			note, err := api.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("created note %d\n", note.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title (required)")
	cmd.Flags().StringVar(&description, "description", "", "note body")
	cmd.Flags().StringVar(&format, "format", "", "display format")
	return cmd
}

func updateCmd() *cobra.Command {
	var title, description, format string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := client.New(serverURL)
			in := client.NoteInput{Title: title}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("format") {
				in.Format = &format
			}
			note, err := api.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			fmt.Printf("updated note %d (updatedAt %s)\n", note.ID, note.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new body")
	cmd.Flags().StringVar(&format, "format", "", "new display format")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api := client.New(serverURL)
			if err := api.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted note %d\n", id)
			return nil
		},
	}
}

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively page through notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := client.New(serverURL)
			ctrl, err := newController(cmd.Context(), api, 1)
			if err != nil {
				return err
			}
			return browseLoop(cmd.Context(), api, ctrl)
		},
	}
	cmd.Flags().StringVar(&viewMode, "view", "card", "view mode: card or list")
	return cmd
}

// browseLoop reads single-letter commands from stdin: n/p page, a number
// jumps to that page, v <id> opens the detail view, d <id> deletes,
// c <title> creates, q quits.
func browseLoop(ctx context.Context, api *client.Client, ctrl *client.Controller) error {
	renderPage(ctrl, viewMode)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("notes> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			return nil
		}

		if err := handleBrowseCommand(ctx, api, ctrl, line); err != nil {
			// Failures leave prior state intact, just tell the user
			fmt.Println("error:", err)
			continue
		}
		renderPage(ctrl, viewMode)
	}
}

func handleBrowseCommand(ctx context.Context, api *client.Client, ctrl *client.Controller, line string) error {
	s := ctrl.State()
	fields := strings.Fields(line)

	switch fields[0] {
	case "n":
		return runEffect(ctx, api, ctrl, ctrl.SetPage(s.CurrentPage+1))
	case "p":
		if s.CurrentPage > 1 {
			return runEffect(ctx, api, ctrl, ctrl.SetPage(s.CurrentPage-1))
		}
		return nil
	case "v":
		if len(fields) < 2 {
			return fmt.Errorf("usage: v <id>")
		}
		id, err := parseID(fields[1])
		if err != nil {
			return err
		}
		note, err := api.Get(ctx, id)
		if err != nil {
			return err
		}
		ctrl.Select(*note)
		return nil
	case "x":
		ctrl.CloseDetail()
		return nil
	case "d":
		if len(fields) < 2 {
			return fmt.Errorf("usage: d <id>")
		}
		id, err := parseID(fields[1])
		if err != nil {
			return err
		}
		if err := api.Delete(ctx, id); err != nil {
			return err
		}
		return runEffect(ctx, api, ctrl, ctrl.ApplyDelete(id))
	case "c":
		if len(fields) < 2 {
			return fmt.Errorf("usage: c <title...>")
		}
		note, err := api.Create(ctx, client.NoteInput{Title: strings.Join(fields[1:], " ")})
		if err != nil {
			return err
		}
		return runEffect(ctx, api, ctrl, ctrl.ApplyCreate(*note))
	}

	if page, err := strconv.Atoi(fields[0]); err == nil {
		return runEffect(ctx, api, ctrl, ctrl.SetPage(page))
	}
	return fmt.Errorf("unknown command %q", fields[0])
}

func renderPage(ctrl *client.Controller, view string) {
	s := ctrl.State()
	fmt.Printf("\nMy Notes - page %d/%d (%d notes)\n\n", s.CurrentPage, max(s.TotalPages, 1), s.TotalItems)

	if len(s.Notes) == 0 {
		fmt.Println("  No notes yet. Create your first note!")
	} else if view == "list" {
		for _, n := range s.Notes {
			fmt.Printf("  [%d] %s  (updated %s)\n", n.ID, n.Title, n.UpdatedAt.Format("2006-01-02 15:04"))
		}
	} else {
		for _, n := range s.Notes {
			renderCard(n)
		}
	}

	if s.TotalPages > 1 {
		fmt.Printf("\n  %s\n", renderPageNumbers(ctrl.PageNumbers(), s.CurrentPage))
	}
	if s.Selected != nil {
		fmt.Printf("\n--- note %d ---\n%s\n", s.Selected.ID, jsonutils.ToJSON(s.Selected))
	}
	fmt.Println()
}

func renderCard(n models.Note) {
	desc := ""
	if n.Description != nil {
		desc = *n.Description
	}
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}
	fmt.Printf("  +-- [%d] %s\n", n.ID, n.Title)
	if desc != "" {
		fmt.Printf("  |   %s\n", desc)
	}
	fmt.Printf("  +-- updated %s\n", n.UpdatedAt.Format("2006-01-02 15:04"))
}

func renderPageNumbers(pages []int, current int) string {
	parts := make([]string, 0, len(pages)+2)
	parts = append(parts, "<")
	for _, p := range pages {
		switch {
		case p == pagination.Ellipsis:
			parts = append(parts, "...")
		case p == current:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	parts = append(parts, ">")
	return strings.Join(parts, " ")
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return uint(id), nil
}
