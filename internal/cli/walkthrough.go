package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KelvinH2322/coffeehelper/internal/presentation/tui"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/guides"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
	"github.com/KelvinH2322/coffeehelper/pkg/session"
)

// WalkthroughOptions configures an interactive troubleshooting run.
type WalkthroughOptions struct {
	Store    ports.StepStore
	Catalog  ports.GuideCatalog
	Machines ports.MachineRegistry

	// MachineID preselects a machine; empty means the user is asked,
	// or no machine at all if the registry is empty.
	MachineID string

	In  io.Reader
	Out io.Writer

	// Render turns markdown into terminal output. Defaults to glamour;
	// tests inject a pass-through.
	Render func(string) (string, error)

	Logger *slog.Logger
}

// RunWalkthrough drives one troubleshooting session over the given reader
// and writer until the user quits or input runs out.
func RunWalkthrough(opts WalkthroughOptions) error {
	if opts.Render == nil {
		opts.Render = tui.NewRenderer()
	}
	if opts.Logger == nil {
		opts.Logger = CreateLogger(false)
	}

	sess := session.New(opts.Store)
	scanner := bufio.NewScanner(opts.In)

	if err := selectMachine(sess, scanner, opts); err != nil {
		return err
	}

	for {
		step, err := sess.Current()
		if err != nil {
			if !errors.Is(err, domain.ErrStepNotFound) {
				return err
			}
			// Restart cannot help when the entry point itself is gone.
			if sess.State().Current == opts.Store.EntryPointID() {
				return fmt.Errorf("entry point %q does not exist in the step graph; run 'coffeehelper validate' and fix the data", sess.State().Current)
			}
			// The graph changed underneath us; restart is the only way out.
			fmt.Fprintf(opts.Out, ">>> Step %q no longer exists. Restarting.\n", sess.State().Current)
			sess.Restart()
			continue
		}

		switch s := step.(type) {
		case domain.Question:
			if err := opts.render(tui.QuestionMarkdown(s)); err != nil {
				return err
			}
		case domain.Solution:
			var guide *domain.Guide
			if g, ok := guides.Resolve(opts.Catalog, s.GuideID, sess.Machine()); ok {
				guide = &g
			}
			if err := opts.render(tui.SolutionMarkdown(s, guide)); err != nil {
				return err
			}
		}

		cmd, ok := prompt(scanner, opts.Out, sess.CanGoBack())
		if !ok {
			return nil
		}

		switch cmd {
		case "q", "quit":
			fmt.Fprintln(opts.Out, ">>> Bye.")
			return nil
		case "b", "back":
			sess.Back()
		case "r", "restart":
			sess.Restart()
		default:
			idx, err := strconv.Atoi(cmd)
			if err != nil {
				fmt.Fprintln(opts.Out, ">>> Pick an option number, or b/r/q.")
				continue
			}
			q, isQuestion := step.(domain.Question)
			if !isQuestion || idx < 1 || idx > len(q.Options) {
				fmt.Fprintln(opts.Out, ">>> That option does not exist here.")
				continue
			}
			opts.Logger.Debug("answer", "step", q.ID, "option", idx-1)
			sess.Answer(idx - 1)
		}
	}
}

func (o WalkthroughOptions) render(markdown string) error {
	out, err := o.Render(markdown)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = fmt.Fprint(o.Out, out)
	return err
}

// selectMachine resolves the --machine flag or asks the user to pick one.
// Selection is optional; an empty answer keeps the generic experience.
func selectMachine(sess *session.Session, scanner *bufio.Scanner, opts WalkthroughOptions) error {
	if opts.Machines == nil {
		return nil
	}

	if opts.MachineID != "" {
		m, ok := opts.Machines.Machine(opts.MachineID)
		if !ok {
			return fmt.Errorf("unknown machine %q", opts.MachineID)
		}
		sess.SelectMachine(&m)
		fmt.Fprintf(opts.Out, ">>> Troubleshooting a %s %s.\n", m.Brand, m.Model)
		return nil
	}

	machines := opts.Machines.Machines()
	if len(machines) == 0 {
		return nil
	}

	fmt.Fprintln(opts.Out, "Which machine do you have? (enter to skip)")
	for i, m := range machines {
		fmt.Fprintf(opts.Out, "%d. %s %s\n", i+1, m.Brand, m.Model)
	}
	fmt.Fprint(opts.Out, "> ")
	if !scanner.Scan() {
		return nil
	}
	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return nil
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(machines) {
		fmt.Fprintln(opts.Out, ">>> No such machine, continuing without one.")
		return nil
	}
	sess.SelectMachine(&machines[idx-1])
	return nil
}

func prompt(scanner *bufio.Scanner, out io.Writer, canGoBack bool) (string, bool) {
	hints := "number, (r)estart, (q)uit"
	if canGoBack {
		hints = "number, (b)ack, (r)estart, (q)uit"
	}
	fmt.Fprintf(out, "[%s] > ", hints)
	if !scanner.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())), true
}
