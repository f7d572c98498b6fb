package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/anaminus/but"
	"github.com/ipld/go-bitview"
	"github.com/pkg/errors"
)

// evaluator runs a chain of operations against a single working value.
type evaluator[T bitview.Integer] struct {
	value   T
	format  string
	verbose bool
	out     io.Writer
	written bool
}

func evaluate[T bitview.Integer](opt FlagOptions, args []string, w io.Writer) error {
	value, err := parseInt[T](args[0])
	if err != nil {
		return errors.Wrap(err, "VALUE")
	}
	e := &evaluator[T]{value: value, format: opt.Format, verbose: opt.Verbose, out: w}
	for rest := args[1:]; len(rest) > 0; {
		n, err := e.step(rest[0], rest[1:])
		if err != nil {
			return errors.Wrapf(err, "%s", rest[0])
		}
		rest = rest[1+n:]
	}
	if e.written {
		return e.print(e.value)
	}
	return nil
}

func isSigned[T bitview.Integer]() bool {
	return ^T(0) < 0
}

// parseInt parses s with Go literal syntax. Signed types also accept the
// unsigned spelling of their bit pattern, so "0xff" is -1 for i8.
func parseInt[T bitview.Integer](s string) (T, error) {
	width := bitview.Of(T(0)).Width()
	if isSigned[T]() {
		i, err := strconv.ParseInt(s, 0, width)
		if err == nil {
			return T(i), nil
		}
		u, uerr := strconv.ParseUint(s, 0, width)
		if uerr != nil {
			return 0, err
		}
		return T(u), nil
	}
	u, err := strconv.ParseUint(s, 0, width)
	if err != nil {
		return 0, err
	}
	return T(u), nil
}

func (e *evaluator[T]) format1(v T) (string, error) {
	// Print the raw bit pattern, not the sign-extended conversion.
	width := bitview.Of(v).Width()
	raw, err := bitview.Of(uint64(v)).First(width)
	if err != nil {
		return "", err
	}
	switch e.format {
	case "bin":
		return fmt.Sprintf("%#b", raw), nil
	case "dec":
		return fmt.Sprint(v), nil
	default:
		return fmt.Sprintf("%#x", raw), nil
	}
}

func (e *evaluator[T]) print(v T) error {
	s, err := e.format1(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, s)
	return err
}

func (e *evaluator[T]) log(name string, args []string) {
	if !e.verbose {
		return
	}
	s, _ := e.format1(e.value)
	but.Logf("%s %v -> %s\n", name, args, s)
}

func need(args []string, n int) error {
	if len(args) < n {
		return errors.Errorf("expected %d arguments, got %d", n, len(args))
	}
	return nil
}

// step runs the operation name and returns how many arguments it consumed.
func (e *evaluator[T]) step(name string, args []string) (int, error) {
	m := bitview.Mut(&e.value)
	switch name {
	case "bit":
		if err := need(args, 1); err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, err
		}
		bit, err := m.Bit(i)
		if err != nil {
			return 0, err
		}
		if bit {
			_, err = fmt.Fprintln(e.out, 1)
		} else {
			_, err = fmt.Fprintln(e.out, 0)
		}
		return 1, err

	case "first", "last":
		if err := need(args, 1); err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, err
		}
		var v T
		if name == "first" {
			v, err = m.First(n)
		} else {
			v, err = m.Last(n)
		}
		if err != nil {
			return 0, err
		}
		return 1, e.print(v)

	case "get":
		if err := need(args, 1); err != nil {
			return 0, err
		}
		r, err := bitview.ParseRange(args[0])
		if err != nil {
			return 0, err
		}
		v, err := m.Get(r)
		if err != nil {
			return 0, err
		}
		return 1, e.print(v)

	case "count":
		if err := need(args, 1); err != nil {
			return 0, err
		}
		r, err := bitview.ParseRange(args[0])
		if err != nil {
			return 0, err
		}
		n, err := m.OnesCount(r)
		if err != nil {
			return 0, err
		}
		_, err = fmt.Fprintln(e.out, n)
		return 1, err

	case "compare":
		if err := need(args, 3); err != nil {
			return 0, err
		}
		r, err := bitview.ParseRange(args[0])
		if err != nil {
			return 0, err
		}
		match, err := parseInt[T](args[1])
		if err != nil {
			return 0, errors.Wrap(err, "MATCH")
		}
		wildcard, err := parseInt[T](args[2])
		if err != nil {
			return 0, errors.Wrap(err, "WILDCARD")
		}
		ok, err := m.Compare(r, match, wildcard)
		if err != nil {
			return 0, err
		}
		_, err = fmt.Fprintln(e.out, ok)
		return 3, err

	case "set-bit":
		if err := need(args, 2); err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, err
		}
		bit, err := strconv.ParseBool(args[1])
		if err != nil {
			return 0, err
		}
		if err := m.SetBit(i, bit); err != nil {
			return 0, err
		}
		return 2, e.wrote(name, args[:2])

	case "clear-bit", "toggle-bit":
		if err := need(args, 1); err != nil {
			return 0, err
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, err
		}
		if name == "clear-bit" {
			err = m.ClearBit(i)
		} else {
			err = m.ToggleBit(i)
		}
		if err != nil {
			return 0, err
		}
		return 1, e.wrote(name, args[:1])

	case "set":
		if err := need(args, 2); err != nil {
			return 0, err
		}
		r, err := bitview.ParseRange(args[0])
		if err != nil {
			return 0, err
		}
		x, err := parseInt[T](args[1])
		if err != nil {
			return 0, err
		}
		if err := m.SetRange(r, x); err != nil {
			return 0, err
		}
		return 2, e.wrote(name, args[:2])
	}

	op := bitview.ParseOp(name)
	if !op.IsValid() {
		return 0, errors.New("unknown operation")
	}
	n := 2
	if op.Unary() {
		n = 1
	}
	if err := need(args, n); err != nil {
		return 0, err
	}
	r, err := bitview.ParseRange(args[0])
	if err != nil {
		return 0, err
	}
	var operand T
	if !op.Unary() {
		if operand, err = parseInt[T](args[1]); err != nil {
			return 0, err
		}
		if op == bitview.OpDiv && operand == 0 {
			return 0, errors.New("division by zero")
		}
	}
	if err := m.Apply(op, r, operand); err != nil {
		return 0, err
	}
	return n, e.wrote(name, args[:n])
}

func (e *evaluator[T]) wrote(name string, args []string) error {
	e.written = true
	e.log(name, args)
	return nil
}
