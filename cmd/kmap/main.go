package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/pborges/kmap"
	"github.com/pborges/kmap/internal/expr"
	"github.com/pborges/kmap/internal/logic"
	"github.com/pborges/kmap/internal/render"
	"github.com/pborges/kmap/internal/truthtable"
	"github.com/pborges/kmap/internal/verify"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "minimize":
		err = cmdMinimize(os.Args[2:], os.Stdout)
	case "map":
		err = cmdMap(os.Args[2:], os.Stdout)
	case "table":
		err = cmdTable(os.Args[2:], os.Stdout)
	case "interactive":
		err = cmdInteractive(os.Stdout)
	case "version":
		fmt.Println(kmap.Version())
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
	switch {
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "kmap - Boolean function minimizer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kmap minimize -vars A,B,C (-m LIST | -e EXPR) [-d LIST] [-verify] [-v]")
	fmt.Fprintln(w, "  kmap map -vars A,B,C (-m LIST | -e EXPR) [-d LIST] [-html FILE] [-v]")
	fmt.Fprintln(w, "  kmap table -vars A,B,C -e EXPR [-e EXPR...] [-csv FILE] [-reverse]")
	fmt.Fprintln(w, "             [-format T/F|1/0] [-var-format T/F|1/0]")
	fmt.Fprintln(w, "  kmap interactive")
	fmt.Fprintln(w, "  kmap version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LIST is comma separated indices or ranges, e.g. 0,2,5-7.")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// function holds the flags shared by minimize and map.
type function struct {
	vars      string
	minterms  string
	expr      string
	dontCares string
	verbose   bool
}

func (f *function) register(fs *flag.FlagSet) {
	fs.StringVar(&f.vars, "vars", "", "comma separated variable names, most significant first")
	fs.StringVar(&f.minterms, "m", "", "minterm indices")
	fs.StringVar(&f.expr, "e", "", "expression whose true rows are the minterms")
	fs.StringVar(&f.dontCares, "d", "", "don't-care indices")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
}

// resolve returns the variables, minterms and don't-cares the flags
// describe. Exactly one of -m and -e must be set.
func (f *function) resolve(log *slog.Logger) (vars []string, minterms, dontCares []int, err error) {
	if vars, err = parseVars(f.vars); err != nil {
		return nil, nil, nil, err
	}
	switch {
	case f.minterms != "" && f.expr != "":
		return nil, nil, nil, errors.New("-m and -e are mutually exclusive")
	case f.expr != "":
		e, err := expr.Parse(f.expr)
		if err != nil {
			return nil, nil, nil, err
		}
		if minterms, err = e.Minterms(vars); err != nil {
			return nil, nil, nil, err
		}
		log.Debug("evaluated expression", "expr", f.expr, "minterms", minterms)
	default:
		if minterms, err = parseIndices(f.minterms); err != nil {
			return nil, nil, nil, errors.WithMessage(err, "-m")
		}
	}
	if dontCares, err = parseIndices(f.dontCares); err != nil {
		return nil, nil, nil, errors.WithMessage(err, "-d")
	}
	return vars, minterms, dontCares, nil
}

func cmdMinimize(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("minimize", flag.ContinueOnError)
	var fn function
	fn.register(fs)
	check := fs.Bool("verify", false, "check the result with a SAT solver")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := newLogger(fn.verbose)

	vars, minterms, dontCares, err := fn.resolve(log)
	if err != nil {
		return err
	}
	q, err := logic.New(vars, minterms, dontCares)
	if err != nil {
		return err
	}
	for _, p := range q.PrimeTerms() {
		log.Debug("prime implicant", "pattern", p.Implicant().String(), "term", p.Expression(), "indices", p.Indices)
	}
	for _, e := range q.EssentialPrimeImplicants() {
		log.Debug("essential", "pattern", e.String())
	}
	sop, err := q.Minimize()
	if err != nil {
		return err
	}
	if *check {
		if err := verify.Check(vars, minterms, dontCares, sop); err != nil {
			return errors.WithMessage(err, "verification failed")
		}
		log.Info("verified", "expression", sop)
	}
	_, err = fmt.Fprintln(out, sop)
	return err
}

func cmdMap(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	var fn function
	fn.register(fs)
	htmlPath := fs.String("html", "", "write the map as HTML to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := newLogger(fn.verbose)

	vars, minterms, dontCares, err := fn.resolve(log)
	if err != nil {
		return err
	}
	km, err := logic.NewKarnaughMap(vars, minterms, dontCares)
	if err != nil {
		return err
	}
	if *htmlPath == "" {
		return render.Text(out, km)
	}

	f, err := os.Create(*htmlPath)
	if err != nil {
		return err
	}
	if err := render.HTML(f, km); err != nil {
		f.Close()
		return err
	}
	log.Debug("wrote html", "path", *htmlPath)
	return f.Close()
}

func cmdTable(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	vars := fs.String("vars", "", "comma separated variable names")
	var exprs listFlag
	fs.Var(&exprs, "e", "expression column (repeatable)")
	csvPath := fs.String("csv", "", "write the table as CSV to this file")
	reverse := fs.Bool("reverse", false, "list rows from all ones down to all zeros")
	exprFmt := fs.String("format", "T/F", "expression cells as T/F or 1/0")
	varFmt := fs.String("var-format", "1/0", "variable cells as T/F or 1/0")
	if err := fs.Parse(args); err != nil {
		return err
	}
	names, err := parseVars(*vars)
	if err != nil {
		return err
	}
	cfg := truthtable.Config{Variables: names, Expressions: exprs, Reverse: *reverse}
	if cfg.ExpressionFormat, err = truthtable.ParseFormat(*exprFmt); err != nil {
		return err
	}
	if cfg.VariableFormat, err = truthtable.ParseFormat(*varFmt); err != nil {
		return err
	}
	tab, err := truthtable.Generate(cfg)
	if err != nil {
		return err
	}
	if *csvPath == "" {
		tab.WriteText(out)
		return nil
	}
	f, err := os.Create(*csvPath)
	if err != nil {
		return err
	}
	if err := tab.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
