package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/promomod/internal/admin"
	"github.com/JonMunkholm/promomod/internal/application"
	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/JonMunkholm/promomod/internal/export"
	"github.com/spf13/cobra"
)

// selectionFlags binds the common field flags plus repeated --set
// key=value pairs for the platform-specific fields.
type selectionFlags struct {
	platform      string
	scope         string
	region        string
	particularity string
	set           []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.platform, "platform", "", "platform: LinkedIn, Google or Meta")
	cmd.Flags().StringVar(&f.scope, "scope", "", "scope kind: Pais or Area")
	cmd.Flags().StringVar(&f.region, "region", "", "country or area")
	cmd.Flags().StringVar(&f.particularity, "particularity", "", "expats or campaign type")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "other field as key=value (e.g. meta_zone=LATAM)")
}

func (f *selectionFlags) selection() (core.Selection, error) {
	sel := core.Selection{}
	put := func(k core.FieldKey, v string) {
		if v = strings.TrimSpace(v); v != "" {
			sel[k] = v
		}
	}
	put(core.FieldPlatform, f.platform)
	put(core.FieldScope, f.scope)
	put(core.FieldRegion, f.region)
	put(core.FieldParticularity, f.particularity)

	for _, kv := range f.set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want key=value", kv)
		}
		key := core.FieldKey(strings.TrimSpace(k))
		if !knownField(key) {
			return nil, fmt.Errorf("--set %q: unknown field %q", kv, key)
		}
		put(key, v)
	}
	return sel, nil
}

func knownField(k core.FieldKey) bool {
	for _, fk := range core.FieldKeys {
		if fk == k {
			return true
		}
	}
	return false
}

func newResolveCmd(a *app) *cobra.Command {
	var (
		flags  selectionFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Build the code for a selection",
		Long: `Walks the selection through the platform cascade and prints the code.
Missing or stale values default to the first available option, as in the form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := flags.selection()
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			return runResolve(cmd.OutOrStdout(), e, sel, format)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func runResolve(w io.Writer, e *core.Engine, sel core.Selection, format string) error {
	o := e.Resolve(sel)

	if format != "text" {
		f, err := export.ParseFormat(format)
		if err != nil {
			return userError(err)
		}
		rec, err := export.FromOutcome(o)
		if err != nil {
			return userError(incompleteError(o, err))
		}
		return export.Encode(w, f, rec)
	}

	printFields(w, o.Form)
	for _, m := range o.Metadata {
		fmt.Fprintf(w, "%s: %s\n", m.Label, m.Value)
	}
	if !o.HasCode() {
		return userError(incompleteError(o, core.ErrIncomplete))
	}
	fmt.Fprintf(w, "PROMOMODALIDAD: %s\n", o.Code.String)
	return nil
}

func incompleteError(o core.Outcome, err error) error {
	switch {
	case o.Notice != "":
		return fmt.Errorf("%s: %w", o.Notice, err)
	case !o.Promotion.Valid:
		return fmt.Errorf("no promotion for this selection: %w", err)
	case !o.Modality.Valid:
		return fmt.Errorf("no modality for this selection: %w", err)
	}
	return err
}

func printFields(w io.Writer, f core.Form) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, fs := range f.Fields {
		value := fs.Value
		if len(fs.Options) == 0 {
			value = "(no options)"
		} else if fs.Defaulted {
			value += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\n", fs.Label, value)
	}
	_ = tw.Flush()
}

func newOptionsCmd(a *app) *cobra.Command {
	var flags selectionFlags
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show each field's options for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := flags.selection()
			if err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			form := e.Walk(sel)
			w := cmd.OutOrStdout()
			for _, fs := range form.Fields {
				fmt.Fprintf(w, "%s [%s] = %s\n", fs.Label, fs.Key, fs.Value)
				for _, opt := range fs.Options {
					marker := " "
					if opt == fs.Value {
						marker = "*"
					}
					fmt.Fprintf(w, "  %s %s\n", marker, opt)
				}
			}
			if form.Notice != "" {
				fmt.Fprintln(w, form.Notice)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newPlatformsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the platforms in the promotion table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range e.Platforms() {
				suffix := ""
				if _, ok := core.ResolverFor(core.Platform(p)); !ok {
					suffix = " (not supported)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), p+suffix)
			}
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the source and report missing columns",
		Long: `Loads every table and reports missing columns. Missing required columns
fail the check; with --strict any missing column does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.load(cmd.Context())
			if err != nil {
				return userError(err)
			}

			w := cmd.OutOrStdout()
			for _, def := range core.Tables() {
				fmt.Fprintf(w, "%-14s %d rows\n", def.Key, store.Table(def.Key).Len())
			}

			failed := false
			for _, cw := range store.Warnings() {
				level := "warning"
				if cw.Required {
					level = "error"
				}
				if cw.Required || strict {
					failed = true
				}
				fmt.Fprintf(w, "%s: missing column %s\n", level, cw)
			}
			if failed {
				return errAny
			}
			fmt.Fprintln(w, "ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on any missing column")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Build codes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.load(cmd.Context())
			if err != nil {
				return userError(err)
			}
			provider := core.NewProvider(core.NewEngine(store, a.cfg.Cache.Size))
			reloader := admin.NewReloader(provider, a.load, a.cfg.Cache.Size, a.cfg.Source.LoadTimeout)
			return application.Run(provider, reloader)
		},
	}
}
