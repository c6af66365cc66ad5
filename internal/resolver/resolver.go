// Package resolver maps dependency names to catalog technology ids, creating
// technologies that do not exist yet.
//
// The catalog enforces name uniqueness but offers no upsert, so creation is
// check-then-create with a conflict fallback: a 409 on create means another
// writer got there first and the id is looked up again.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/catalog"
	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// Defaults applied to every technology created from a lockfile.
const (
	DefaultCategoria            = "Biblioteca"
	DefaultStatus               = "Ativa"
	DefaultTipoLicenciamento    = "Open Source"
	DefaultFornecedorFabricante = "Open Source Community"
	DefaultMaturidadeInterna    = "Padronizada"
	DefaultNivelSuporteInterno  = "Sem Suporte Interno"
)

// Catalog is the subset of the catalog API the resolver needs.
type Catalog interface {
	SearchTechnologies(ctx context.Context, name string) ([]model.Technology, error)
	CreateTechnology(ctx context.Context, tech *model.Technology) (*model.Technology, error)
}

// Resolution is the outcome of Lookup. Existed and Created are never both true.
type Resolution struct {
	ID      string
	Existed bool
	Created bool
}

// Resolver resolves and creates technologies. Check-then-create is not
// atomic, so callers must not run lookups for the same name concurrently.
type Resolver struct {
	catalog Catalog
	logger  *zap.Logger
	now     func() time.Time
	cache   *lru.Cache[string, string]
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithClock replaces time.Now for sigla generation.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// New creates a Resolver. cacheSize bounds the in-memory name -> id cache;
// zero disables it.
func New(c Catalog, logger *zap.Logger, cacheSize int, opts ...Option) (*Resolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		catalog: c,
		logger:  logger.Named("resolver"),
		now:     time.Now,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, string](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create resolver cache: %w", err)
		}
		r.cache = cache
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the id of the technology whose nome equals name, compared
// case-insensitively, or "" when there is none.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	candidates, err := r.catalog.SearchTechnologies(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to search technology %q: %w", name, err)
	}
	for _, t := range candidates {
		if strings.EqualFold(t.Nome, name) && t.ID != "" {
			return t.ID, nil
		}
	}
	return "", nil
}

// CreateIfAbsent creates a technology for dep. If the catalog reports a
// conflict the existing id is resolved and returned instead.
func (r *Resolver) CreateIfAbsent(ctx context.Context, dep *model.Dependency, language string) (string, error) {
	tech := NewTechnology(dep, r.now())

	created, err := r.catalog.CreateTechnology(ctx, tech)
	if err == nil {
		r.logger.Info("Created technology",
			zap.String("nome", tech.Nome),
			zap.String("sigla", tech.Sigla),
			zap.String("id", created.ID),
			zap.String("language", language))
		return created.ID, nil
	}

	if !catalog.IsConflict(err) {
		return "", fmt.Errorf("failed to create technology %q: %w", dep.Name, err)
	}

	r.logger.Info("Technology already exists, resolving id", zap.String("nome", dep.Name))
	id, resolveErr := r.Resolve(ctx, dep.Name)
	if resolveErr != nil {
		return "", resolveErr
	}
	if id == "" {
		return "", fmt.Errorf("technology %q conflicts with an existing record (sigla %q) that could not be resolved by name", dep.Name, tech.Sigla)
	}
	return id, nil
}

// Lookup resolves dep to a technology id, creating it when absent.
// A failed search is logged and treated as "not found" so that creation is
// still attempted.
func (r *Resolver) Lookup(ctx context.Context, dep *model.Dependency, language string) (Resolution, error) {
	key := strings.ToLower(dep.Name)
	if r.cache != nil {
		if id, ok := r.cache.Get(key); ok {
			return Resolution{ID: id, Existed: true}, nil
		}
	}

	id, err := r.Resolve(ctx, dep.Name)
	if err != nil {
		r.logger.Warn("Technology lookup failed", zap.String("nome", dep.Name), zap.Error(err))
	}
	if id != "" {
		r.remember(key, id)
		return Resolution{ID: id, Existed: true}, nil
	}

	id, err = r.CreateIfAbsent(ctx, dep, language)
	if err != nil {
		return Resolution{}, err
	}
	r.remember(key, id)
	return Resolution{ID: id, Created: true}, nil
}

func (r *Resolver) remember(key, id string) {
	if r.cache != nil {
		r.cache.Add(key, id)
	}
}

// NewTechnology builds the creation payload for dep with the catalog
// defaults and every environment flag set.
func NewTechnology(dep *model.Dependency, now time.Time) *model.Technology {
	tech := &model.Technology{
		Sigla:                Sigla(dep, now),
		Nome:                 dep.Name,
		VersaoRelease:        model.VersionOrLatest(dep.Version),
		Categoria:            DefaultCategoria,
		Status:               DefaultStatus,
		FornecedorFabricante: DefaultFornecedorFabricante,
		TipoLicenciamento:    DefaultTipoLicenciamento,
		MaturidadeInterna:    DefaultMaturidadeInterna,
		NivelSuporteInterno:  DefaultNivelSuporteInterno,
	}
	tech.SetAmbientes(model.Ambientes{Dev: true, QA: true, Prod: true, Cloud: true, OnPremise: true})
	return tech
}
