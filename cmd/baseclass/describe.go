package main

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/baseclass"
	"github.com/reoring/baseclass/internal/ui"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [class...]",
		Short: "Show the merged fields and signature of classes",
		Long:  "Show bases, immutability, the keyword-only signature and the per-field policy of each class. Without arguments every class of the manifest is described.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registry()
			if err != nil {
				return err
			}
			classes := r.Classes()
			if len(args) > 0 {
				classes = classes[:0:0]
				for _, name := range args {
					c, ok := r.Class(name)
					if !ok {
						return fmt.Errorf("unknown class %q", name)
					}
					classes = append(classes, c)
				}
			}
			out := cmd.OutOrStdout()
			if a.jsonOutput() {
				sigs := make([]baseclass.Signature, 0, len(classes))
				for _, c := range classes {
					sigs = append(sigs, c.Signature())
				}
				b, err := json.MarshalIndent(sigs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}
			for i, c := range classes {
				if i > 0 {
					fmt.Fprintln(out)
				}
				describeClass(cmd, a, c)
			}
			return nil
		},
	}
}

func describeClass(cmd *cobra.Command, a *app, c *baseclass.Class) {
	out := cmd.OutOrStdout()
	kv := ui.NewKeyValue(out, a.noColor())
	kv.AddRow("class", c.Name())
	bases := make([]string, 0, len(c.Bases()))
	for _, b := range c.Bases() {
		bases = append(bases, b.BaseName())
	}
	kv.AddRow("bases", strings.Join(bases, ", "))
	kv.AddRow("immutable", strconv.FormatBool(c.Immutable()))
	kv.AddRow("signature", c.Signature().String())
	kv.Render()
	fmt.Fprintln(out)

	t := ui.NewTable(out, a.noColor(), "FIELD", "TYPE", "DEFAULT", "REPR", "STR", "HASH", "COMPARE")
	for _, f := range c.Fields() {
		t.AddRow(f.Name(), typeName(f), defaultText(f),
			strconv.FormatBool(f.Repr()), strconv.FormatBool(f.Str()),
			strconv.FormatBool(f.InHash()), strconv.FormatBool(f.InCompare()))
	}
	t.Render()
}

func typeName(f *baseclass.Field) string {
	if f.Type() == nil {
		return "-"
	}
	return f.Type().String()
}

func defaultText(f *baseclass.Field) string {
	if v, ok := f.Default().Get(); ok {
		return baseclass.DebugString(v)
	}
	if f.DefaultFactory() != nil {
		return "<factory>"
	}
	return "<required>"
}
