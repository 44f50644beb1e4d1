package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Makepad-fr/tada/internal/actions"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options carries the injected todo actions and output tuning from root flags.
type Options struct {
	Actions actions.Actions
	View    actions.View

	Group bool // list grouped by pending/done

	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr

	// RunTUI starts the interactive list. Defaults to tui.Run.
	RunTUI func(actions.Actions, actions.View) error
}

type runner struct {
	Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.RunTUI == nil {
		opt.RunTUI = tui.Run
	}
	r := runner{opt}

	if len(args) == 0 {
		PrintHelp(r.Stdout)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.Stdout)
		return 0

	case "ls":
		return r.doList()

	case "tui":
		return r.doTUI()

	case "add":
		if len(a) == 0 {
			r.fail("usage: todo add <text...>")
			return 2
		}
		return r.doAdd(strings.Join(a, " "))

	case "done":
		n, code := r.index("done", "usage: todo done <index>", a, true)
		if code != 0 {
			return code
		}
		return r.doToggle(n)

	case "edit":
		n, code := r.index("edit", "usage: todo edit <index> <text...>", a, false)
		if code != 0 {
			return code
		}
		return r.doEdit(n, strings.Join(a[1:], " "))

	case "rm":
		n, code := r.index("rm", "usage: todo rm <index>", a, true)
		if code != 0 {
			return code
		}
		return r.doRemove(n)
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.Stderr)
	PrintHelp(r.Stderr)
	return 2
}

// PrintHelp writes usage to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <text...>          Add a new item (text can be multiple words)
  ls                     List items
  done <index>           Toggle done for item at 1-based index
  edit <index> <text...> Replace the text of item at 1-based index
  rm <index>             Remove item at 1-based index
  tui                    Interactive list

Flags:
  -group                 Group ls output by pending/done
  -storage <driver>      file, sqlite or memory
  -dir <path>            Data directory for the file driver
  -theme <name>          classic, neon or mono
  -log-level <level>     debug, info, warn, error
  -config <file>         Read configuration from this TOML file only

Examples:
  todo add "Buy milk"
  todo ls
  todo done 2
  todo edit 2 "Buy oat milk"
  todo rm 3
`)
}

// -------------- argument helpers ----------------

// index parses a[0] as a 1-based index. With exact, a must hold only the index;
// otherwise at least one more argument must follow it.
func (r runner) index(cmd, usage string, a []string, exact bool) (int, int) {
	if (exact && len(a) != 1) || (!exact && len(a) < 2) {
		r.fail(usage)
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		r.fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

// resolve maps a 1-based index onto the record currently at that position.
func (r runner) resolve(userIndex int) (model.Todo, bool) {
	todos := r.View.Todos()
	if userIndex < 1 || userIndex > len(todos) {
		r.fail(fmt.Sprintf("index out of range: have %d, got %d", len(todos), userIndex))
		fmt.Fprintln(r.Stderr, ui.C(ui.Current().Muted, "Hint: run `todo ls` to see valid indexes"))
		return model.Todo{}, false
	}
	return todos[userIndex-1], true
}

func (r runner) ok(msg string)   { ui.OK(r.Stdout, msg) }
func (r runner) fail(msg string) { ui.Fail(r.Stderr, msg) }

// -------------- subcommand impls ----------------

func (r runner) doList() int {
	items := r.View.Todos()

	d, p := todo.Stats(items)
	th := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Todos"),
		ui.C(th.Success, th.SymDone), d,
		ui.C(th.Pending, th.SymPending), p,
		ui.C(th.Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(th.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items, nil)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.Stdout, lines)
	return 0
}

func (r runner) doTUI() int {
	if err := r.RunTUI(r.Actions, r.View); err != nil {
		r.fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func (r runner) doAdd(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		r.fail("add: empty text")
		return 2
	}
	r.Actions.Add(model.Draft{Text: text})
	r.ok("added")
	return 0
}

func (r runner) doToggle(userIndex int) int {
	t, found := r.resolve(userIndex)
	if !found {
		return 2
	}
	r.Actions.ToggleComplete(t.ID)
	r.ok("toggled")
	return 0
}

func (r runner) doEdit(userIndex int, text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		r.fail("edit: empty text")
		return 2
	}
	t, found := r.resolve(userIndex)
	if !found {
		return 2
	}
	t.Text = text
	r.Actions.Update(t.ID, t)
	r.ok("updated")
	return 0
}

func (r runner) doRemove(userIndex int) int {
	t, found := r.resolve(userIndex)
	if !found {
		return 2
	}
	r.Actions.Delete(t.ID)
	r.ok("removed")
	return 0
}

// -------------- rendering helpers --------------

// flatLines renders items; positions, when given, overrides the shown index.
func flatLines(items model.Collection, positions []int) []string {
	th := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(th.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		n := i + 1
		if positions != nil {
			n = positions[i]
		}
		box, color := th.BoxUnchecked, th.Muted
		if it.Completed {
			box, color = th.BoxChecked, th.Success
		}
		text := it.Text
		if r := []rune(text); len(r) > 80 {
			text = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", n)), ui.C(color, box), text))
	}
	return out
}

// groupLines splits items into pending and done, keeping the indexes
// that done/edit/rm accept.
func groupLines(items model.Collection) []string {
	var pend, done model.Collection
	var pendPos, donePos []int
	for i, it := range items {
		if it.Completed {
			done = append(done, it)
			donePos = append(donePos, i+1)
		} else {
			pend = append(pend, it)
			pendPos = append(pendPos, i+1)
		}
	}
	th := ui.Current()
	var lines []string
	lines = append(lines, ui.C(th.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, pendPos)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(th.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(th.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, donePos)...)
	}
	return lines
}
