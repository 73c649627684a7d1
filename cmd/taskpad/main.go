// Command taskpad is a personal task tracker with voice-style capture:
// free-form text is split into discrete tasks by an extraction service,
// with a deterministic local fallback.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/mvu/taskpad/internal/credential"
	"github.com/mvu/taskpad/internal/ingest"
	"github.com/mvu/taskpad/internal/logger"
	"github.com/mvu/taskpad/internal/model"
	"github.com/mvu/taskpad/internal/storage"
	"github.com/mvu/taskpad/internal/store"
	"github.com/mvu/taskpad/internal/view"
)

const usage = `taskpad - personal task tracker

Usage:
  taskpad add <title> [-desc text] [-due YYYY-MM-DD] [-priority low|medium|high]
  taskpad list [-filter all|incomplete|completed|overdue] [-search query]
  taskpad edit <id> [-title text] [-desc text] [-due YYYY-MM-DD] [-clear-due] [-priority low|medium|high]
  taskpad done <id>        toggle completion
  taskpad rm <id>          delete a task
  taskpad capture <text>   split free-form text into tasks
  taskpad sort <option>    set sort preference (date|dueDate|alphabetical|completed)
  taskpad theme [value]    show, set (light|dark), or "toggle" the theme
  taskpad stats            show task counts
  taskpad set-key <key>    store the extraction service API key
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	if args[0] == "set-key" {
		if len(args) < 2 {
			return errors.New("set-key requires the key value")
		}
		return credential.Set(credential.KeyOpenAI, args[1])
	}

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	adapter, err := storage.NewSQLiteAdapter(cfg.Storage.Path)
	if err != nil {
		// The store degrades to memory-only rather than refusing to start;
		// nothing persists, which beats losing the session entirely.
		log.Warn("opening database failed, state will not persist", zap.Error(err))
		adapter = nil
	}
	var backend storage.Adapter = storage.NewMemoryAdapter()
	if adapter != nil {
		backend = adapter
		defer adapter.Close()
	}

	s := store.New(backend, log)
	if err := s.Initialize(context.Background()); err != nil {
		return err
	}
	defer s.Close()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "add":
		return cmdAdd(s, rest)
	case "list":
		return cmdList(s, rest)
	case "edit":
		return cmdEdit(s, rest)
	case "done":
		return cmdDone(s, rest)
	case "rm":
		return cmdDelete(s, rest)
	case "capture":
		return cmdCapture(s, cfg, log, rest)
	case "sort":
		return cmdSort(s, rest)
	case "theme":
		return cmdTheme(s, rest)
	case "stats":
		return cmdStats(s)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdAdd(s *store.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("add requires a title")
	}
	title := args[0]

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	desc := fs.String("desc", "", "task description")
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	priority := fs.String("priority", "", "low, medium, or high")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	validTitle, err := model.ValidateTitle(title)
	if err != nil {
		return err
	}
	validDesc, err := model.ValidateDescription(*desc)
	if err != nil {
		return err
	}

	var duePtr *time.Time
	if *due != "" {
		d, err := time.Parse("2006-01-02", *due)
		if err != nil {
			return fmt.Errorf("parsing due date: %w", err)
		}
		duePtr = &d
	}

	var prPtr *model.Priority
	if *priority != "" {
		pr := model.Priority(*priority)
		if !pr.Valid() {
			return fmt.Errorf("unknown priority %q", *priority)
		}
		prPtr = &pr
	}

	task, err := s.AddTask(validTitle, validDesc, duePtr, prPtr)
	if errors.Is(err, store.ErrCapacityExceeded) {
		return fmt.Errorf("task list is full (%d tasks); complete or delete some first", model.MaxTasks)
	}
	if err != nil {
		return err
	}

	fmt.Printf("added %s  %s\n", task.ID, task.Title)
	return nil
}

func cmdList(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	filterStr := fs.String("filter", "all", "all, incomplete, completed, or overdue")
	search := fs.String("search", "", "case-insensitive search over title and description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tag := view.FilterTag(*filterStr)
	if !tag.Valid() {
		return fmt.Errorf("unknown filter %q", *filterStr)
	}

	tasks := s.Filtered(tag, *search)
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		pr := ""
		if t.Priority != nil {
			pr = string(*t.Priority)
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\t%s\n", mark, t.ID, t.Title, due, pr)
	}
	return nil
}

func cmdEdit(s *store.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("edit requires a task id")
	}
	id := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	desc := fs.String("desc", "", "new description")
	due := fs.String("due", "", "new due date (YYYY-MM-DD)")
	clearDue := fs.Bool("clear-due", false, "remove the due date")
	priority := fs.String("priority", "", "low, medium, or high")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var patch model.TaskPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "desc":
			patch.Description = desc
		case "clear-due":
			patch.ClearDueDate = *clearDue
		}
	})

	if patch.Title != nil {
		validTitle, err := model.ValidateTitle(*patch.Title)
		if err != nil {
			return err
		}
		patch.Title = &validTitle
	}
	if patch.Description != nil {
		validDesc, err := model.ValidateDescription(*patch.Description)
		if err != nil {
			return err
		}
		patch.Description = &validDesc
	}
	if *due != "" {
		d, err := time.Parse("2006-01-02", *due)
		if err != nil {
			return fmt.Errorf("parsing due date: %w", err)
		}
		patch.DueDate = &d
	}
	if *priority != "" {
		pr := model.Priority(*priority)
		if !pr.Valid() {
			return fmt.Errorf("unknown priority %q", *priority)
		}
		patch.Priority = &pr
	}

	if patch.Empty() {
		return errors.New("nothing to change")
	}
	if !s.UpdateTask(id, patch) {
		fmt.Printf("no task with id %s\n", id)
		return nil
	}
	fmt.Println("updated", id)
	return nil
}

func cmdDone(s *store.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("done requires a task id")
	}
	if !s.ToggleCompletion(args[0]) {
		fmt.Printf("no task with id %s\n", args[0])
		return nil
	}
	if t, ok := s.Task(args[0]); ok && t.Completed {
		fmt.Println("completed", t.Title)
	} else if ok {
		fmt.Println("reopened", t.Title)
	}
	return nil
}

func cmdDelete(s *store.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("rm requires a task id")
	}
	if !s.DeleteTask(args[0]) {
		fmt.Printf("no task with id %s\n", args[0])
		return nil
	}
	fmt.Println("deleted", args[0])
	return nil
}

func cmdCapture(s *store.Store, cfg *model.AppConfig, log *zap.Logger, args []string) error {
	if len(args) == 0 {
		return errors.New("capture requires the text to process")
	}

	var extractor ingest.Extractor
	if apiKey := credential.OpenAIAPIKey(); apiKey != "" {
		extractor = ingest.NewOpenAIExtractor(
			apiKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.BaseURL,
			time.Duration(cfg.OpenAI.TimeoutSec)*time.Second,
		)
	} else {
		log.Info("no API key configured, using local splitter")
	}

	svc := ingest.NewService(extractor, s, log)
	res, err := svc.Capture(context.Background(), args[0])
	if errors.Is(err, ingest.ErrEmptyUtterance) {
		return errors.New("nothing to capture")
	}
	if err != nil {
		return err
	}

	for _, t := range res.Added {
		fmt.Printf("added %s  %s\n", t.ID, t.Title)
	}
	if res.Dropped > 0 {
		fmt.Printf("%d task(s) dropped: list is full (%d tasks)\n", res.Dropped, model.MaxTasks)
	}
	if res.Skipped > 0 {
		fmt.Printf("%d fragment(s) skipped as invalid titles\n", res.Skipped)
	}
	if res.UsedFallback {
		fmt.Println("(extraction service unavailable, used local splitter)")
	}
	return nil
}

func cmdSort(s *store.Store, args []string) error {
	if len(args) == 0 {
		fmt.Println(s.SortOption())
		return nil
	}
	if err := s.SetSortOption(model.SortOption(args[0])); err != nil {
		return fmt.Errorf("unknown sort option %q", args[0])
	}
	fmt.Println("sort preference set to", args[0])
	return nil
}

func cmdTheme(s *store.Store, args []string) error {
	if len(args) == 0 {
		fmt.Println(s.Theme())
		return nil
	}
	if args[0] == "toggle" {
		fmt.Println("theme set to", s.ToggleTheme())
		return nil
	}
	if err := s.SetTheme(model.Theme(args[0])); err != nil {
		return fmt.Errorf("unknown theme %q", args[0])
	}
	fmt.Println("theme set to", args[0])
	return nil
}

func cmdStats(s *store.Store) error {
	fmt.Printf("total:      %d / %d\n", s.Total(), model.MaxTasks)
	fmt.Printf("incomplete: %d\n", s.IncompleteCount())
	fmt.Printf("completed:  %d\n", s.CompletedCount())
	fmt.Printf("overdue:    %d\n", s.OverdueCount())
	if s.IsAtCapacity() {
		fmt.Println("task list is at capacity")
	}
	return nil
}
