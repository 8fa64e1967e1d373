package core

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver is the per-platform decision tree. Fields are walked after the
// common platform and scope fields; Resolve runs only once every field has a
// value.
type Resolver interface {
	Platform() Platform
	Fields() []Field
	Resolve(s *Store, sel Selection) Resolution
}

var commonFields = []Field{
	{
		Key:   FieldPlatform,
		Label: "Plataforma",
		Options: func(s *Store, _ Selection) []string {
			return DistinctValues(s.Promotions(), ColPlatform)
		},
	},
	{
		Key:   FieldScope,
		Label: "La campaña es para...",
		Options: func(*Store, Selection) []string {
			return append([]string(nil), ScopeKinds...)
		},
	},
}

// Engine evaluates selections against one Store snapshot. Outcomes are
// cached per snapshot; cached values are shared and must not be mutated.
type Engine struct {
	store *Store
	cache *lru.Cache[string, Outcome]
}

// NewEngine returns an engine over store. A cacheSize of zero or less
// disables the outcome cache.
func NewEngine(store *Store, cacheSize int) *Engine {
	e := &Engine{store: store}
	if cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		e.cache, _ = lru.New[string, Outcome](cacheSize)
	}
	return e
}

// Store returns the snapshot the engine reads.
func (e *Engine) Store() *Store {
	return e.store
}

// Platforms lists the distinct platforms present in the promotion table.
func (e *Engine) Platforms() []string {
	return DistinctValues(e.store.Promotions(), ColPlatform)
}

// Walk evaluates the form fields for sel in order. Each field sees only the
// values chosen before it. A submitted value that is not among the options
// is replaced by the first option. The walk stops at the first field with
// no options.
func (e *Engine) Walk(sel Selection) Form {
	form := Form{Selection: Selection{}}
	if !e.walkFields(&form, commonFields, sel) {
		return form
	}

	platform := form.Selection.Platform()
	r, ok := ResolverFor(platform)
	if !ok {
		form.Notice = fmt.Sprintf("Platform %q is not supported", platform)
		return form
	}
	e.walkFields(&form, r.Fields(), sel)
	return form
}

func (e *Engine) walkFields(form *Form, fields []Field, sel Selection) bool {
	for _, f := range fields {
		opts := f.Options(e.store, form.Selection)
		state := FieldState{Key: f.Key, Label: f.Label, Options: opts}

		if len(opts) == 0 {
			form.Fields = append(form.Fields, state)
			form.Halted = f.Key
			form.Notice = fmt.Sprintf("No options available for %q with the current selection", f.Label)
			slog.Debug("cascade halted",
				"field", f.Key,
				"platform", form.Selection.Get(FieldPlatform),
				"snapshot", e.store.ID,
			)
			return false
		}

		want := sel.Get(f.Key)
		state.Value = opts[0]
		state.Defaulted = true
		for _, o := range opts {
			if o == want {
				state.Value = want
				state.Defaulted = false
				break
			}
		}

		form.Selection[f.Key] = state.Value
		form.Fields = append(form.Fields, state)
	}
	return true
}

// Resolve walks the form and, when it completes, looks up the promotion and
// modality and builds the code. Lookup misses leave the code absent.
func (e *Engine) Resolve(sel Selection) Outcome {
	if e.cache == nil {
		return e.resolve(sel)
	}
	key := sel.Key()
	if o, ok := e.cache.Get(key); ok {
		return o
	}
	o := e.resolve(sel)
	e.cache.Add(key, o)
	return o
}

func (e *Engine) resolve(sel Selection) Outcome {
	out := Outcome{Form: e.Walk(sel)}
	if !out.Complete() {
		return out
	}

	r, _ := ResolverFor(out.Selection.Platform())
	res := r.Resolve(e.store, out.Selection)
	out.Promotion = res.Promotion
	out.Modality = res.Modality
	out.Metadata = res.Metadata
	out.Code = BuildCode(res.Promotion, res.Modality)
	return out
}
