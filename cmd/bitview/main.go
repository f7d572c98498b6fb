package main

import (
	"io"
	"os"
	"strings"

	"github.com/anaminus/but"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// FlagOptions are the command-line flags of bitview.
type FlagOptions struct {
	Width   string `short:"w" long:"width" default:"u32" choice:"u8" choice:"u16" choice:"u32" choice:"u64" choice:"i8" choice:"i16" choice:"i32" choice:"i64"`
	Format  string `short:"f" long:"format" default:"hex" choice:"hex" choice:"bin" choice:"dec"`
	Verbose bool   `short:"v" long:"verbose"`
}

var options = map[string]*flags.Option{
	"width": &flags.Option{
		Description: "Bit width and signedness of VALUE.",
		ValueName:   "WIDTH",
	},
	"format": &flags.Option{
		Description: "Output format for printed integers.",
		ValueName:   "FORMAT",
	},
	"verbose": &flags.Option{
		Description: "Log every operation to stderr.",
	},
}

const usage = `[OPTIONS] VALUE OP [ARGS...] [OP [ARGS...]...]

Read operations print one line each:
  bit I, first N, last N, get RANGE, count RANGE,
  compare RANGE MATCH WILDCARD

Write operations modify VALUE, which is printed once at the end:
  set-bit I 0|1, clear-bit I, toggle-bit I, set RANGE X, not RANGE,
  add|sub|mul|div|and|or|xor|lsh|rsh RANGE X

RANGE is START..END, START:END or a single bit index.`

// parserOptions stop flag parsing at VALUE, so negative operands that follow
// it are passed through as arguments.
const parserOptions = flags.PassDoubleDash | flags.PassAfterNonOption

// ParseOptions returns a parser for data with the bitview usage text and the
// descriptions from the options table applied.
func ParseOptions(data interface{}, opts flags.Options) *flags.Parser {
	fp := flags.NewParser(data, opts)
	fp.Usage = usage
	for name, info := range options {
		opt := fp.FindOptionByLongName(name)
		if opt == nil {
			continue
		}
		opt.Description = info.Description
		opt.ValueName = info.ValueName
	}
	return fp
}

func isNegative(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9'
}

// takesValue reports whether flag arg consumes the following argument.
func takesValue(fp *flags.Parser, arg string) bool {
	var opt *flags.Option
	if strings.HasPrefix(arg, "--") {
		if strings.Contains(arg, "=") {
			return false
		}
		opt = fp.FindOptionByLongName(arg[2:])
	} else {
		opt = fp.FindOptionByShortName(rune(arg[len(arg)-1]))
	}
	if opt == nil {
		return false
	}
	_, ok := opt.Value().(bool)
	return !ok
}

// markNegative inserts "--" before a negative VALUE, so that it is not read
// as a short flag. Arguments after VALUE are left alone; parserOptions passes
// them through.
func markNegative(fp *flags.Parser, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case isNegative(arg):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		case len(arg) > 1 && arg[0] == '-':
			if takesValue(fp, arg) {
				i++
			}
		default:
			return args
		}
	}
	return args
}

func run(opt FlagOptions, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing VALUE")
	}
	switch opt.Width {
	case "u8":
		return evaluate[uint8](opt, args, w)
	case "u16":
		return evaluate[uint16](opt, args, w)
	case "", "u32":
		return evaluate[uint32](opt, args, w)
	case "u64":
		return evaluate[uint64](opt, args, w)
	case "i8":
		return evaluate[int8](opt, args, w)
	case "i16":
		return evaluate[int16](opt, args, w)
	case "i32":
		return evaluate[int32](opt, args, w)
	case "i64":
		return evaluate[int64](opt, args, w)
	}
	return errors.Errorf("unknown width %q", opt.Width)
}

func main() {
	var opt FlagOptions
	fp := ParseOptions(&opt, flags.Default|parserOptions)
	args, err := fp.ParseArgs(markNegative(fp, os.Args[1:]))
	if err, ok := err.(*flags.Error); ok && err.Type == flags.ErrHelp {
		return
	}
	but.IfFatal(err, "flag parser error")
	but.IfFatal(run(opt, args, os.Stdout))
}
