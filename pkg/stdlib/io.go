package stdlib

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/nois-lang/noisc/pkg/interp"
)

// ioPackage mirrors stdlib::io::package(): println, eprintln, debug, panic,
// args.
func ioPackage() []entry {
	return []entry{
		def(println_, "println"),
		def(eprintln_, "eprintln"),
		def(debug_, "debug"),
		def(panic_, "panic"),
		def(args_, "args"),
	}
}

func displayJoin(args []interp.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Display()
	}
	return strings.Join(parts, " ")
}

func println_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	fmt.Println(displayJoin(args))
	return interp.Unit{}, nil
}

// eprintln_ writes to stderr in red, matching the original's use of the
// `colored` crate.
func eprintln_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	color.New(color.FgRed).Fprintln(colorStderr, displayJoin(args))
	return interp.Unit{}, nil
}

var colorStderr = color.Error

// debug_ logs at debug level through logrus rather than stdout, so it can be
// silenced independently of println in normal runs (it is the interpreter's
// equivalent of the original's log::debug! plumbing).
func debug_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = debugDisplay(a)
	}
	logrus.Debug(strings.Join(parts, " "))
	return interp.Unit{}, nil
}

func debugDisplay(v interp.Value) string {
	switch t := v.(type) {
	case interp.List:
		if interp.IsString(t) {
			return fmt.Sprintf("%q", t.Display())
		}
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = debugDisplay(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case interp.Char:
		return fmt.Sprintf("%q", t.V)
	default:
		return v.Display()
	}
}

func panic_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	return nil, interp.NewError(interp.UserPanic, "%s", displayJoin(args))
}

func args_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 0 {
		return nil, argError("()", args)
	}
	items := make([]interp.Value, len(ctx.RunArgs))
	for i, a := range ctx.RunArgs {
		items[i] = interp.NewString(a)
	}
	return interp.List{Items: items}, nil
}
