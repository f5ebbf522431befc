package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/su2708/studyplan/internal/backup"
	"github.com/su2708/studyplan/internal/models"
	"github.com/su2708/studyplan/internal/progress"
	"github.com/su2708/studyplan/internal/storage"
	"github.com/su2708/studyplan/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
	Debug bool
	// Out receives command output. Nil means stdout.
	Out io.Writer
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// BackupManager returns the backup manager of a SQLite store
func BackupManager(ctx *Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

// Confirm asks a yes/no question on the terminal. It returns true without
// asking when skip is set.
func Confirm(title string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// Output formats accepted by --format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes v as indented JSON or YAML
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// IsYAMLFile reports whether a path looks like a YAML document
func IsYAMLFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// PrintDocument writes a plan document as a checklist grouped by week
func PrintDocument(w io.Writer, doc models.PlanDocument) {
	for _, week := range doc.Weeks {
		stats, _ := progress.WeekProgress(doc, week)
		fmt.Fprintf(w, "%s (%d/%d)\n", week, stats.Completed, stats.Total)
		tasks := doc.Tasks(week)
		if len(tasks) == 0 {
			fmt.Fprintln(w, "    (no tasks)")
		}
		for i, task := range tasks {
			fmt.Fprintf(w, "  %s %d. %s\n", Checkbox(task.IsDone), i+1, task.Description)
		}
	}
}

func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// ProgressLine renders an overall progress summary
func ProgressLine(s progress.Summary) string {
	line := fmt.Sprintf("%d/%d tasks done (%d%%)", s.Completed, s.Total, s.Percent)
	if s.Anomalous() {
		line += " (plan has no tasks)"
	}
	return line
}
