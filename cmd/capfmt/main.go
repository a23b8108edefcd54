// Command capfmt composes messages from part descriptors and reports how
// their buffers are sized.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/bjaus/capfmt"
)

// CLI defines the command-line interface.
type CLI struct {
	Verbose bool `name:"verbose" short:"v" help:"Log sizing details to stderr."`

	Compose ComposeCmd `cmd:"" help:"Compose parts and print the message."`
	Plan    PlanCmd    `cmd:"" help:"Print the capacity plan of a message."`
	MaxLen  MaxLenCmd  `cmd:"" name:"maxlen" help:"Print the type-level capacity of a kind under a spec."`
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	log *zap.Logger
	out io.Writer
}

// ComposeCmd prints a composed message.
type ComposeCmd struct {
	Parts []string `arg:"" optional:"" help:"Part descriptors, e.g. lit:TEXT or str:TEXT|clip=16,…"`
}

func (c *ComposeCmd) Run(env *runEnv) error {
	parts, err := parseParts(c.Parts)
	if err != nil {
		return err
	}
	total, err := capfmt.Capacity(parts...)
	if err != nil {
		return err
	}
	msg, err := capfmt.ComposeInto(make([]byte, total), parts...)
	if err != nil {
		return err
	}
	env.log.Debug("composed message",
		zap.Int("parts", len(parts)),
		zap.Int("capacity", msg.Cap()),
		zap.Int("written", msg.Len()),
	)
	_, err = fmt.Fprintln(env.out, msg.String())
	return err
}

// PlanCmd prints the capacity plan of a message.
type PlanCmd struct {
	Format string   `name:"format" short:"f" default:"table" env:"CAPFMT_FORMAT" enum:"text,json,jsonl,yaml,csv,tsv,table,markdown" help:"Output format (${enum})."`
	Parts  []string `arg:"" optional:"" help:"Part descriptors."`
}

func (c *PlanCmd) Run(env *runEnv) error {
	f, err := capfmt.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	parts, err := parseParts(c.Parts)
	if err != nil {
		return err
	}
	plan, err := capfmt.Explain(parts...)
	if err != nil {
		return err
	}
	env.log.Debug("explained message",
		zap.Int("parts", len(plan.Entries)),
		zap.Int("capacity", plan.Capacity),
		zap.Int("written", plan.Written),
		zap.Stringer("format", f),
	)
	return capfmt.WritePlan(env.out, f, plan)
}

// MaxLenCmd prints MaxLen for a kind.
type MaxLenCmd struct {
	Kind      string `arg:"" help:"Value kind: int, int8..int64, uint, uint8..uint64, rune, string, ascii."`
	Clip      int    `name:"clip" default:"-1" help:"Clip to N bytes."`
	ClipChars int    `name:"clip-chars" default:"-1" help:"Clip to N runes."`
	Marker    string `name:"marker" default:"…" help:"Marker appended to clipped values."`
	Pad       int    `name:"pad" default:"-1" help:"Pad to N runes."`
	Fill      string `name:"fill" default:" " help:"Pad fill character."`
	Align     string `name:"align" default:"left" enum:"left,center,right" help:"Pad alignment (${enum})."`
}

func (c *MaxLenCmd) Run(env *runEnv) error {
	kind, err := capfmt.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	spec, err := c.spec()
	if err != nil {
		return err
	}
	n, err := capfmt.MaxLen(kind, spec)
	if err != nil {
		return err
	}
	env.log.Debug("computed max length", zap.Stringer("kind", kind), zap.Stringer("spec", spec), zap.Int("bytes", n))
	_, err = fmt.Fprintln(env.out, n)
	return err
}

func (c *MaxLenCmd) spec() (capfmt.Spec, error) {
	var opts []string
	switch {
	case c.Clip >= 0 && c.ClipChars >= 0:
		return capfmt.Spec{}, fmt.Errorf("%w: --clip and --clip-chars are exclusive", errInvalidPart)
	case c.Clip >= 0:
		opts = append(opts, fmt.Sprintf("clip=%d,%s", c.Clip, c.Marker))
	case c.ClipChars >= 0:
		opts = append(opts, fmt.Sprintf("clipchars=%d,%s", c.ClipChars, c.Marker))
	}
	if c.Pad >= 0 {
		opts = append(opts, fmt.Sprintf("pad=%d,%s,%s", c.Pad, c.Fill, c.Align))
	}
	spec := capfmt.Plain()
	for _, opt := range opts {
		var err error
		if spec, err = applyOption(spec, opt); err != nil {
			return capfmt.Spec{}, err
		}
	}
	return spec, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("capfmt"),
		kong.Description("Compose fixed-capacity messages and inspect their sizing."),
		kong.UsageOnError(),
	)
	log, err := newLogger(cli.Verbose)
	ctx.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()

	err = ctx.Run(&runEnv{log: log, out: os.Stdout})
	if err != nil {
		log.Debug("command failed", zap.Error(err))
	}
	ctx.FatalIfErrorf(err)
}
