package copytext

import (
	"context"
	"log/slog"
	"sync"

	"github.com/auxility/site/internal/content"
	"github.com/auxility/site/internal/i18n"
)

// Resolver keeps the Copy collection fresh and hands out tables per language.
// Tables are rebuilt whenever the collection settles with new rows and are
// memoised per language in between.
type Resolver struct {
	defaults Defaults
	watcher  *content.CollectionWatcher
	logger   *slog.Logger

	mu     sync.Mutex
	tables map[i18n.Language]Table
	unsub  func()
}

// NewResolver starts watching the Copy collection of src.
func NewResolver(src content.Source, defaults Defaults, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		defaults: defaults,
		watcher:  content.NewCollectionWatcher(src, logger),
		logger:   logger,
		tables:   make(map[i18n.Language]Table),
	}
	r.unsub = r.watcher.Subscribe(func(content.State[[]content.Row]) {
		r.mu.Lock()
		r.tables = make(map[i18n.Language]Table)
		r.mu.Unlock()
	})
	r.watcher.Update(content.Params{Collection: content.CollectionCopy})
	return r
}

// Table returns the copy table for lang.
func (r *Resolver) Table(lang i18n.Language) Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tables[lang]; ok {
		return t
	}
	t := Build(lang, r.defaults, r.watcher.State().Data)
	r.tables[lang] = t
	return t
}

// TableFor returns the table for the language carried by ctx. It fails with
// i18n.ErrNoLanguageState outside a language provider.
func (r *Resolver) TableFor(ctx context.Context) (Table, error) {
	lang, err := i18n.LanguageFromContext(ctx)
	if err != nil {
		return Table{}, err
	}
	return r.Table(lang), nil
}

// Get resolves one key for the language carried by ctx.
// It panics outside a language provider, like i18n.MustFromContext.
func (r *Resolver) Get(ctx context.Context, key string) string {
	return r.Table(i18n.MustFromContext(ctx).Language()).Get(key)
}

// State returns the fetch state of the Copy collection.
func (r *Resolver) State() content.State[[]content.Row] {
	return r.watcher.State()
}

// Refresh re-fetches the Copy collection.
func (r *Resolver) Refresh() <-chan struct{} {
	return r.watcher.Refresh()
}

// Close stops watching.
func (r *Resolver) Close() {
	r.unsub()
	r.watcher.Close()
}
