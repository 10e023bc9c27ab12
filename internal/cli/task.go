package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
)

type TaskAddCmd struct {
	Name     string `arg:"" help:"Task name."`
	Due      string `short:"d" help:"Due date (YYYY-MM-DD)."`
	Priority string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
}

func (c *TaskAddCmd) Validate() error {
	switch models.Priority(c.Priority) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return fmt.Errorf("priority must be low, medium, or high")
	}
	if c.Due != "" {
		if _, err := time.Parse(constants.DateFormat, c.Due); err != nil {
			return fmt.Errorf("invalid due date, use YYYY-MM-DD")
		}
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task := models.Task{
		ID:        uuid.New().String(),
		Name:      c.Name,
		DueDate:   c.Due,
		Priority:  models.Priority(c.Priority),
		CreatedAt: time.Now(),
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Name, task.ID)
	return nil
}

type TaskListCmd struct {
	Pending bool `short:"p" help:"Show only pending tasks."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks. Add one with 'tally task add'.")
		return nil
	}

	todayStr := today()
	for _, task := range tasks {
		if c.Pending && task.Completed {
			continue
		}

		mark := "○"
		if task.Completed {
			mark = "✓"
		}

		due := ""
		if task.DueDate != "" {
			due = "due " + task.DueDate
			if !task.Completed && task.DueDate < todayStr {
				due += " (overdue)"
			}
		}

		fmt.Printf("%s %-30s  %-8s  %s\n", mark, task.Name, task.Priority, due)
	}

	return nil
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID (or unambiguous name prefix)."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}

	if task.Completed {
		return fmt.Errorf("task %q is already completed", task.Name)
	}

	task.Completed = true
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Completed task: %s\n", task.Name)
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID (or unambiguous name prefix)."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := resolveTask(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteTask(task.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted task: %s (restore with 'tally task restore %s')\n", task.Name, task.ID)
	return nil
}

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.RestoreTask(c.ID); err != nil {
		return err
	}

	fmt.Printf("Restored task: %s\n", c.ID)
	return nil
}

func resolveTask(ctx *Context, ref string) (models.Task, error) {
	if task, err := ctx.Store.GetTask(ref); err == nil {
		return task, nil
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return models.Task{}, err
	}

	var matches []models.Task
	for _, task := range tasks {
		if len(ref) > 0 && len(task.Name) >= len(ref) && equalsPrefixFold(task.Name, ref) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	default:
		return models.Task{}, fmt.Errorf("%q is ambiguous: %d tasks match", ref, len(matches))
	}
}
