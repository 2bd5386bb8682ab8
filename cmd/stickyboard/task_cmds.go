package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/stickyboard/internal/config"
	"github.com/Gaurav-Gosain/stickyboard/internal/task"
	"github.com/Gaurav-Gosain/stickyboard/internal/ui"
)

// withService opens the task store for a subcommand.
func withService(fn func(ctx context.Context, svc task.Service) error) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}
	svc, err := openService(userConfig)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return fn(ctx, svc)
}

// resolveTask returns args[0], or the active task when args is empty.
func resolveTask(ctx context.Context, svc task.Service, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	id, err := svc.ActiveTask(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no active task, pass a task ID")
	}
	return id, nil
}

func newTaskCmd() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks notes are attached to",
	}

	var description string
	var quiet bool
	newCmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a task and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, svc task.Service) error {
				t, err := svc.CreateTask(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if description != "" {
					if t, err = svc.UpdateTask(ctx, t.ID, task.Patch{Description: &description}); err != nil {
						return err
					}
				}
				if err := svc.UpdateActiveTask(ctx, t.ID); err != nil {
					return err
				}
				if quiet {
					fmt.Println(t.ID)
				} else {
					fmt.Printf("Created task %s (%s)\n", t.Title, t.ID)
				}
				return nil
			})
		},
	}
	newCmd.Flags().StringVarP(&description, "description", "d", "", "Task description (markdown)")
	newCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the task ID")

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, most recently updated first",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc task.Service) error {
				tasks, err := svc.ListTasks(ctx)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					fmt.Println("No tasks yet. Create one with: stickyboard task new <title>")
					return nil
				}
				active, _ := svc.ActiveTask(ctx)
				printTaskTable(tasks, active)
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a task with its notes and comments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, svc task.Service) error {
				id, err := resolveTask(ctx, svc, args)
				if err != nil {
					return err
				}
				t, err := svc.GetTask(ctx, id)
				if err != nil {
					return err
				}
				width := 80
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
					width = min(w, 100)
				}
				dark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
				out := colorprofile.NewWriter(os.Stdout, os.Environ())
				_, _ = fmt.Fprint(out, ui.RenderMarkdown(ui.TaskMarkdown(t), width, dark))
				return nil
			})
		},
	}

	var author string
	commentCmd := &cobra.Command{
		Use:   "comment <task-id> <text>",
		Short: "Add a comment to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, svc task.Service) error {
				if author == "" {
					author = os.Getenv("USER")
				}
				c := task.Comment{Author: author, Body: strings.Join(args[1:], " ")}
				t, err := svc.UpdateTask(ctx, args[0], task.Patch{AddComment: &c})
				if err != nil {
					return err
				}
				fmt.Printf("Task %s has %d comment(s)\n", t.Title, len(t.Comments))
				return nil
			})
		},
	}
	commentCmd.Flags().StringVar(&author, "author", "", "Comment author (default: $USER)")

	var title, status, priority, due, desc string
	updateCmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Change a task's title, status, priority, due date or description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p task.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = &title
			}
			if flags.Changed("status") {
				p.Status = &status
			}
			if flags.Changed("priority") {
				p.Priority = &priority
			}
			if flags.Changed("description") {
				p.Description = &desc
			}
			if flags.Changed("due") {
				d, err := parseDue(due)
				if err != nil {
					return err
				}
				p.DueDate = &d
			}
			if p.Empty() {
				return fmt.Errorf("nothing to update, see --help")
			}
			return withService(func(ctx context.Context, svc task.Service) error {
				id, err := resolveTask(ctx, svc, args)
				if err != nil {
					return err
				}
				t, err := svc.UpdateTask(ctx, id, p)
				if err != nil {
					return err
				}
				fmt.Printf("Updated %s: %s, %s priority\n", t.Title, t.Status, t.Priority)
				return nil
			})
		},
	}
	updateCmd.Flags().StringVar(&title, "title", "", "New title")
	updateCmd.Flags().StringVar(&status, "status", "", "Status: "+strings.Join(task.Statuses, ", "))
	updateCmd.Flags().StringVar(&priority, "priority", "", "Priority: "+strings.Join(task.Priorities, ", "))
	updateCmd.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD, empty to clear")
	updateCmd.Flags().StringVarP(&desc, "description", "d", "", "Description (markdown)")
	_ = updateCmd.RegisterFlagCompletionFunc("status", fixedCompletions(task.Statuses...))
	_ = updateCmd.RegisterFlagCompletionFunc("priority", fixedCompletions(task.Priorities...))

	activateCmd := &cobra.Command{
		Use:   "activate <task-id>",
		Short: "Make a task the one the board opens by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withService(func(ctx context.Context, svc task.Service) error {
				t, err := svc.GetTask(ctx, args[0])
				if err != nil {
					return err
				}
				if err := svc.UpdateActiveTask(ctx, t.ID); err != nil {
					return err
				}
				fmt.Printf("Active task: %s\n", t.Title)
				return nil
			})
		},
	}

	taskCmd.AddCommand(newCmd, listCmd, showCmd, commentCmd, updateCmd, activateCmd)
	return taskCmd
}

func parseDue(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func printTaskTable(tasks []*task.Task, active string) {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	activeCell := cell.Foreground(lipgloss.Color("10"))

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		mark := ""
		if t.ID == active {
			mark = "●"
		}
		due := ""
		if !t.DueDate.IsZero() {
			due = t.DueDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			mark, t.ID, t.Title, t.Status, t.Priority, due,
			fmt.Sprintf("%d", len(t.StickyNotes)),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("", "ID", "TITLE", "STATUS", "PRIORITY", "DUE", "NOTES").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case rows[row][0] != "":
				return activeCell
			}
			return cell
		})

	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	_, _ = fmt.Fprintln(out, tbl.String())
}
