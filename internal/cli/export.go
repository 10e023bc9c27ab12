package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tally-cli/tally/internal/constants"
	"github.com/tally-cli/tally/internal/models"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file path." default:""`
}

type exportDocument struct {
	ExportedAt string `json:"exported_at"`
	Data       struct {
		Habits      []models.Habit      `json:"habits"`
		Tasks       []models.Task       `json:"tasks"`
		Completions []models.Completion `json:"completions"`
	} `json:"data"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	doc := exportDocument{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var err error
	if doc.Data.Habits, err = ctx.Store.GetAllHabits(true, false); err != nil {
		return err
	}
	if doc.Data.Tasks, err = ctx.Store.GetAllTasks(); err != nil {
		return err
	}
	if doc.Data.Completions, err = ctx.Store.GetAllCompletions(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}

	path := c.Output
	if path == "" {
		path = fmt.Sprintf("tally-export-%s.json", time.Now().Format(constants.DateFormat))
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %d habits, %d tasks, %d completions to %s\n",
		len(doc.Data.Habits), len(doc.Data.Tasks), len(doc.Data.Completions), path)
	return nil
}
