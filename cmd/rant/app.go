package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chazu/rant/manifest"
	"github.com/chazu/rant/store"
	"github.com/chazu/rant/vm"
	"github.com/chazu/rant/vm/dist"
)

// app carries the state shared by all commands of one CLI invocation.
type app struct {
	out       io.Writer
	manifest  *manifest.Manifest // nil when no rant.toml was found
	storePath string
	store     *store.Store // opened on first use
}

func newApp(out io.Writer, dir string, m *manifest.Manifest) *app {
	a := &app{out: out, manifest: m}
	if m != nil {
		a.storePath = m.StorePath()
	} else {
		a.storePath = filepath.Join(dir, manifest.DefaultStorePath)
	}
	return a
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := store.Open(ctx, a.storePath)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

// ---------------------------------------------------------------------------
// Command table
// ---------------------------------------------------------------------------

type command struct {
	fn  vm.Function
	run func(a *app, ctx context.Context, args []vm.Value) error
}

func param(name string, t vm.ParamType, doc string) vm.Parameter {
	return vm.Param{ParamName: name, ParamType: t, Doc: doc}
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"show": {
			fn: vm.Function{
				Name:        "show",
				Description: "Print the kind and rendering of a value.",
				Params:      []vm.Parameter{param("value", vm.ParamAny, "Value literal")},
			},
			run: (*app).show,
		},
		"convert": {
			fn: vm.Function{
				Name:        "convert",
				Description: "Convert a value to another kind. Prints no when the conversion is not defined.",
				Params: []vm.Parameter{
					param("value", vm.ParamAny, "Value literal"),
					param("kind", vm.ParamString, "Target kind: no, boolean, number, string, list or template"),
				},
			},
			run: (*app).convert,
		},
		"eval": {
			fn: vm.Function{
				Name:        "eval",
				Description: "Apply a binary operator (+ - * /) to two values.",
				Params: []vm.Parameter{
					param("left", vm.ParamAny, "Left operand"),
					param("op", vm.ParamString, "Operator"),
					param("right", vm.ParamAny, "Right operand"),
				},
			},
			run: (*app).eval,
		},
		"hash": {
			fn: vm.Function{
				Name:        "hash",
				Description: "Print the content hash of a value.",
				Params:      []vm.Parameter{param("value", vm.ParamAny, "Value literal")},
			},
			run: (*app).hash,
		},
		"set": {
			fn: vm.Function{
				Name:        "set",
				Description: "Bind a variable in the store.",
				Params: []vm.Parameter{
					param("name", vm.ParamString, "Variable name"),
					param("value", vm.ParamAny, "Value literal"),
				},
			},
			run: (*app).set,
		},
		"get": {
			fn: vm.Function{
				Name:        "get",
				Description: "Print a variable. Falls back to the [vars] table of rant.toml; unknown names print no.",
				Params:      []vm.Parameter{param("name", vm.ParamString, "Variable name")},
			},
			run: (*app).get,
		},
		"unset": {
			fn: vm.Function{
				Name:        "unset",
				Description: "Remove a variable from the store.",
				Params:      []vm.Parameter{param("name", vm.ParamString, "Variable name")},
			},
			run: (*app).unset,
		},
		"vars": {
			fn: vm.Function{
				Name:        "vars",
				Description: "List stored variables and rant.toml variables.",
			},
			run: (*app).vars,
		},
		"seed": {
			fn: vm.Function{
				Name:        "seed",
				Description: "Copy rant.toml variables into the store without overwriting existing bindings.",
			},
			run: (*app).seed,
		},
		"help": {
			fn: vm.Function{
				Name:        "help",
				Description: "Describe one command, or list all of them.",
				Params:      []vm.Parameter{vm.Param{ParamName: "command", ParamType: vm.ParamString, Variadic: true}},
			},
			run: (*app).help,
		},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// run parses the literal arguments of a command line, binds them to the
// command's parameters and executes it.
func (a *app) run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return nil
	}
	cmd, ok := commands[argv[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", argv[0])
	}

	values := make([]vm.Value, len(argv)-1)
	for i, raw := range argv[1:] {
		v, err := ParseLiteral(raw)
		if err != nil {
			return fmt.Errorf("%s: argument %d: %w", argv[0], i+1, err)
		}
		values[i] = v
	}

	args, err := cmd.fn.Bind(values)
	if err != nil {
		return err
	}
	log.Debugf("running %s with %d arguments", cmd.fn.Name, len(args))
	return cmd.run(a, ctx, args)
}

// repl reads commands line by line until EOF. Errors are reported and the
// loop continues.
func (a *app) repl(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "rant> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		argv, err := splitArgs(line)
		if err == nil {
			err = a.run(ctx, argv)
		}
		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (a *app) print(v vm.Value) {
	fmt.Fprintf(a.out, "%s: %s\n", v.Kind(), v)
}

func (a *app) show(_ context.Context, args []vm.Value) error {
	a.print(args[0])
	return nil
}

func (a *app) convert(_ context.Context, args []vm.Value) error {
	name, _ := args[1].Text()
	if args[1].IsNo() {
		name = vm.NoKind.String()
	}
	k, ok := vm.ParseKind(name)
	if !ok {
		return fmt.Errorf("convert: unknown kind %q", name)
	}
	a.print(args[0].ConvertTo(k))
	return nil
}

func (a *app) eval(_ context.Context, args []vm.Value) error {
	sym, _ := args[1].Text()
	op, ok := vm.ParseOperator(sym)
	if !ok {
		return fmt.Errorf("eval: unknown operator %q", sym)
	}
	a.print(vm.Apply(op, args[0], args[2]))
	return nil
}

func (a *app) hash(_ context.Context, args []vm.Value) error {
	h, err := dist.Hash(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hex.EncodeToString(h[:]))
	return nil
}

func (a *app) set(ctx context.Context, args []vm.Value) error {
	name, _ := args[0].Text()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	return s.Set(ctx, name, args[1])
}

func (a *app) get(ctx context.Context, args []vm.Value) error {
	name, _ := args[0].Text()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	v, err := s.Get(ctx, name)
	if errors.Is(err, store.ErrVariableNotFound) {
		if a.manifest != nil {
			v, _ = a.manifest.Var(name)
		}
		err = nil
	}
	if err != nil {
		return err
	}
	a.print(v)
	return nil
}

func (a *app) unset(ctx context.Context, args []vm.Value) error {
	name, _ := args[0].Text()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	return s.Delete(ctx, name)
}

func (a *app) vars(ctx context.Context, _ []vm.Value) error {
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	names, err := s.Names(ctx)
	if err != nil {
		return err
	}
	stored := make(map[string]bool, len(names))
	for _, name := range names {
		stored[name] = true
		v, err := s.Get(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s = %s\n", name, FormatLiteral(v))
	}
	if a.manifest == nil {
		return nil
	}
	for _, name := range a.manifest.VarNames() {
		if stored[name] {
			continue
		}
		v, _ := a.manifest.Var(name)
		fmt.Fprintf(a.out, "%s = %s  (rant.toml)\n", name, FormatLiteral(v))
	}
	return nil
}

func (a *app) seed(ctx context.Context, _ []vm.Value) error {
	if a.manifest == nil {
		return fmt.Errorf("seed: no %s found", manifest.FileName)
	}
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	vars := make(map[string]vm.Value, len(a.manifest.Vars))
	for _, name := range a.manifest.VarNames() {
		vars[name], _ = a.manifest.Var(name)
	}
	added, err := s.Seed(ctx, vars)
	if err != nil {
		return err
	}
	for _, name := range added {
		fmt.Fprintf(a.out, "seeded %s\n", name)
	}
	return nil
}

func (a *app) help(_ context.Context, args []vm.Value) error {
	if len(args) == 0 {
		for _, name := range commandNames() {
			cmd := commands[name]
			fmt.Fprintf(a.out, "%-40s %s\n", cmd.fn.Signature(), firstLine(cmd.fn.Description))
		}
		return nil
	}
	for _, arg := range args {
		name, _ := arg.Text()
		cmd, ok := commands[name]
		if !ok {
			return fmt.Errorf("help: unknown command %q", name)
		}
		fmt.Fprint(a.out, vm.FormatFunctionHelp(cmd.fn))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
