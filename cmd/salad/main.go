package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	salad "github.com/common-workflow-language/schema-salad"
	"github.com/common-workflow-language/schema-salad/de"
)

// Globals are the flags shared by every command.
type Globals struct {
	Format   string `help:"Input format." enum:"auto,json,yaml" default:"auto"`
	MaxDepth int    `help:"Maximum nesting depth (0 for unbounded)." default:"0"`
	Strict   bool   `help:"Fail on duplicate keys at the source, reporting their position."`
	Debug    bool   `help:"Enable debug logging." short:"d"`
}

// streams carries the process I/O to the commands.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Inspect   InspectCmd   `cmd:"" help:"Print every node of a document with its kind."`
	Convert   ConvertCmd   `cmd:"" help:"Convert a document between JSON and YAML."`
	Normalize NormalizeCmd `cmd:"" help:"Turn a map or list of objects into the canonical list form."`
}

type InspectCmd struct {
	File string `arg:"" help:"Input file, or - for stdin."`
}

type ConvertCmd struct {
	File string `arg:"" help:"Input file, or - for stdin."`
	To   string `help:"Output format." enum:"json,yaml" required:""`
}

type NormalizeCmd struct {
	File      string `arg:"" help:"Input file, or - for stdin."`
	Key       string `help:"Field receiving the map key of each entry." required:""`
	Predicate string `help:"Field receiving scalar map values."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("salad"),
		kong.Description("Decode, inspect and convert Schema Salad documents."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "salad: %v\n", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "salad: %v\n", err)
		return 2
	}

	if cli.Debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "salad: %v\n", err)
			return 1
		}
		salad.SetLogger(l)
		defer func() {
			_ = l.Sync()
			salad.SetLogger(nil)
		}()
	}

	if err := ctx.Run(&cli.Globals, &streams{stdin: stdin, stdout: stdout}); err != nil {
		for _, is := range salad.ToIssues(err) {
			fmt.Fprintf(stderr, "%s: %s", is.Path, is.Message)
			if is.Line > 0 {
				fmt.Fprintf(stderr, " (line %d, column %d)", is.Line, is.Column)
			}
			fmt.Fprintln(stderr)
		}
		return 1
	}
	return 0
}

func (c *InspectCmd) Run(g *Globals, s *streams) error {
	v, err := decode[salad.Value](g, s, c.File)
	if err != nil {
		return err
	}
	return inspect(s.stdout, nil, v)
}

func inspect(w io.Writer, path []string, v salad.Value) error {
	detail := v.String()
	if v.IsObject() || v.IsList() {
		detail = strconv.Itoa(v.Len())
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", de.JoinPointer(path), v.Kind(), detail); err != nil {
		return err
	}
	if o, ok := v.AsObject(); ok {
		for k, child := range o.All() {
			if err := inspect(w, append(path[:len(path):len(path)], k), child); err != nil {
				return err
			}
		}
	}
	if items, ok := v.AsList(); ok {
		for i, child := range items {
			if err := inspect(w, append(path[:len(path):len(path)], strconv.Itoa(i)), child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *ConvertCmd) Run(g *Globals, s *streams) error {
	v, err := decode[salad.Value](g, s, c.File)
	if err != nil {
		return err
	}
	var out []byte
	switch c.To {
	case "json":
		out, err = salad.MarshalJSONIndent(v, "  ")
		out = append(out, '\n')
	default:
		out, err = salad.MarshalYAML(v)
	}
	if err != nil {
		return err
	}
	_, err = s.stdout.Write(out)
	return err
}

func (c *NormalizeCmd) Run(g *Globals, s *streams) error {
	seed := de.NewMapToList[salad.Object](c.Key, nil)
	if c.Predicate != "" {
		seed = de.NewMapToListWithPredicate[salad.Object](c.Key, c.Predicate, nil)
	}
	src, err := source(g, s, c.File)
	if err != nil {
		return err
	}
	objs, err := salad.DecodeWith[de.List[salad.Object]](src, seed, options(g))
	if err != nil {
		return err
	}
	items := make([]salad.Value, len(objs))
	for i := range objs {
		items[i] = salad.ObjectValue(&objs[i])
	}
	out, err := salad.MarshalJSONIndent(salad.ListValue(items...), "  ")
	if err != nil {
		return err
	}
	_, err = s.stdout.Write(append(out, '\n'))
	return err
}

func decode[T any](g *Globals, s *streams, file string) (T, error) {
	src, err := source(g, s, file)
	if err != nil {
		var zero T
		return zero, err
	}
	return salad.Decode[T](src, options(g))
}

func options(g *Globals) salad.DecodeOpt {
	opt := salad.DecodeOpt{MaxDepth: g.MaxDepth}
	if g.Strict {
		opt.Strictness.OnDuplicateKey = salad.Error
	}
	return opt
}

// source reads file and picks the parser from --format, falling back to
// the file extension. YAML is the default since it also reads JSON.
func source(g *Globals, s *streams, file string) (salad.Source, error) {
	var (
		b   []byte
		err error
	)
	if file == "-" {
		b, err = io.ReadAll(s.stdin)
	} else {
		b, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	format := g.Format
	if format == "auto" {
		format = "yaml"
		if strings.EqualFold(filepath.Ext(file), ".json") {
			format = "json"
		}
	}
	salad.Logger().Debug("decoding input", zap.String("file", file), zap.String("format", format), zap.Int("bytes", len(b)))
	if format == "json" {
		return salad.JSONBytes(b), nil
	}
	return salad.YAMLBytes(b), nil
}
