package main

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/baseclass"
	"github.com/reoring/baseclass/manifest"
)

func newNewCmd(a *app) *cobra.Command {
	var repr, dump bool
	cmd := &cobra.Command{
		Use:   "new CLASS [value...] [field=value...]",
		Short: "Construct an instance and print it",
		Long: `Construct an instance of CLASS. Arguments of the form field=value are
keyword arguments; other arguments are positional, in field order. Values
are read as YAML scalars or flow collections and converted to the declared
field type; values of string fields are taken literally.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry()
			if err != nil {
				return err
			}
			c, ok := r.Class(args[0])
			if !ok {
				return fmt.Errorf("unknown class %q", args[0])
			}
			pos, kw, err := parseArgs(c, args[1:])
			if err != nil {
				return err
			}
			a.log.Debug("constructing", zap.String("class", c.Name()), zap.Int("positional", len(pos)), zap.Strings("keywords", kw.Keys()))

			var inst *baseclass.Instance
			if len(pos) > 0 {
				inst, err = c.NewPositional(pos, kw)
			} else {
				inst, err = c.New(kw)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case a.jsonOutput():
				b, err := json.MarshalIndent(inst.Mapping(), "", "  ")
				if err != nil {
					return fmt.Errorf("%s is not representable as JSON: %w", c.Name(), err)
				}
				fmt.Fprintln(out, string(b))
			case dump:
				fmt.Fprint(out, inst.Dump())
			case repr:
				fmt.Fprintln(out, inst.DebugRepr())
			default:
				fmt.Fprintln(out, inst.DisplayStr())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&repr, "repr", false, "print the debug form")
	cmd.Flags().BoolVar(&dump, "dump", false, "print a deep dump of every field")
	return cmd
}

// parseArgs splits CLI arguments into positional and keyword values,
// converting each to the type of the field it lands on.
func parseArgs(c *baseclass.Class, args []string) ([]any, baseclass.Kwargs, error) {
	var pos []any
	kw := baseclass.Kwargs{}
	fields := c.Fields()
	for _, arg := range args {
		name, text, isKw := strings.Cut(arg, "=")
		if !isKw {
			if len(kw) > 0 {
				return nil, nil, fmt.Errorf("positional argument %q after keyword arguments", arg)
			}
			var f *baseclass.Field
			if len(pos) < len(fields) {
				f = fields[len(pos)]
			}
			v, err := parseFor(f, arg)
			if err != nil {
				return nil, nil, err
			}
			pos = append(pos, v)
			continue
		}
		f, _ := c.Field(name)
		v, err := parseFor(f, text)
		if err != nil {
			return nil, nil, err
		}
		kw[name] = v
	}
	return pos, kw, nil
}

func parseFor(f *baseclass.Field, text string) (any, error) {
	if f == nil {
		return manifest.ParseValue(text, nil)
	}
	v, err := manifest.ParseValue(text, f.Type())
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name(), err)
	}
	return v, nil
}
