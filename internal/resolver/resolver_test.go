package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/apperrors"
	"github.com/StinkyLord/lockfile-loader/internal/model"
)

// fakeCatalog is an in-memory catalog keyed by nome.
type fakeCatalog struct {
	techs       []model.Technology
	nextID      int
	searchErr   error
	createErr   error
	searches    int
	creates     int
	lastCreated *model.Technology
	// hideFromSearch makes a record invisible to the first search, simulating
	// a concurrent writer that creates it between check and create.
	hideFromSearch bool
}

func (f *fakeCatalog) SearchTechnologies(_ context.Context, name string) ([]model.Technology, error) {
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.hideFromSearch {
		f.hideFromSearch = false
		return nil, nil
	}
	var out []model.Technology
	for _, t := range f.techs {
		// substring match like the real endpoint
		if containsFold(t.Nome, name) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreateTechnology(_ context.Context, tech *model.Technology) (*model.Technology, error) {
	f.creates++
	copied := *tech
	f.lastCreated = &copied
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, t := range f.techs {
		if equalFold(t.Nome, tech.Nome) {
			return nil, fmt.Errorf("%w: status 409", apperrors.ErrConflict)
		}
	}
	f.nextID++
	copied.ID = fmt.Sprintf("tech-%d", f.nextID)
	f.techs = append(f.techs, copied)
	return &copied, nil
}

func newTestResolver(t *testing.T, c Catalog, cacheSize int) *Resolver {
	t.Helper()
	fixed := time.UnixMilli(1700000012345)
	r, err := New(c, zap.NewNop(), cacheSize, WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	return r
}

func TestResolve_ExactCaseInsensitiveMatch(t *testing.T) {
	c := &fakeCatalog{techs: []model.Technology{
		{ID: "1", Nome: "react-dom"},
		{ID: "2", Nome: "React"},
	}}
	r := newTestResolver(t, c, 0)

	id, err := r.Resolve(context.Background(), "react")
	require.NoError(t, err)
	assert.Equal(t, "2", id)

	id, err = r.Resolve(context.Background(), "reac")
	require.NoError(t, err)
	assert.Empty(t, id, "substring candidates are not matches")
}

func TestResolve_SearchError(t *testing.T) {
	c := &fakeCatalog{searchErr: errors.New("boom")}
	r := newTestResolver(t, c, 0)

	_, err := r.Resolve(context.Background(), "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCreateIfAbsent_PayloadDefaults(t *testing.T) {
	c := &fakeCatalog{}
	r := newTestResolver(t, c, 0)

	id, err := r.CreateIfAbsent(context.Background(), &model.Dependency{Name: "left-pad"}, "JavaScript")
	require.NoError(t, err)
	assert.Equal(t, "tech-1", id)

	got := c.lastCreated
	require.NotNil(t, got)
	assert.Equal(t, "left-pad", got.Nome)
	assert.Equal(t, model.VersionLatest, got.VersaoRelease)
	assert.Equal(t, "Biblioteca", got.Categoria)
	assert.Equal(t, "Ativa", got.Status)
	assert.Equal(t, "Open Source", got.TipoLicenciamento)
	assert.Equal(t, "Open Source Community", got.FornecedorFabricante)
	assert.Equal(t, "Padronizada", got.MaturidadeInterna)
	assert.Equal(t, "Sem Suporte Interno", got.NivelSuporteInterno)
	assert.Equal(t, model.Ambientes{Dev: true, QA: true, Prod: true, Cloud: true, OnPremise: true}, got.Ambientes)
	assert.True(t, got.AmbienteOnPremise)
	assert.Equal(t, "LEFTPAD0000000-12345", got.Sigla)
}

func TestCreateIfAbsent_ConflictReturnsResolvedID(t *testing.T) {
	c := &fakeCatalog{techs: []model.Technology{{ID: "existing-7", Nome: "Lodash"}}}
	r := newTestResolver(t, c, 0)
	ctx := context.Background()

	resolved, err := r.Resolve(ctx, "lodash")
	require.NoError(t, err)

	id, err := r.CreateIfAbsent(ctx, &model.Dependency{Name: "lodash", Version: "4.17.21"}, "JavaScript")
	require.NoError(t, err)
	assert.Equal(t, resolved, id)
	assert.Len(t, c.techs, 1, "no duplicate technology")
}

func TestCreateIfAbsent_ConflictWithoutNameMatch(t *testing.T) {
	c := &fakeCatalog{createErr: fmt.Errorf("%w: sigla taken", apperrors.ErrConflict)}
	r := newTestResolver(t, c, 0)

	_, err := r.CreateIfAbsent(context.Background(), &model.Dependency{Name: "abc"}, "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be resolved")
}

func TestCreateIfAbsent_OtherFailure(t *testing.T) {
	c := &fakeCatalog{createErr: errors.New("status 500")}
	r := newTestResolver(t, c, 0)

	_, err := r.CreateIfAbsent(context.Background(), &model.Dependency{Name: "abc"}, "Go")
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "status 500")
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("existing", func(t *testing.T) {
		c := &fakeCatalog{techs: []model.Technology{{ID: "9", Nome: "serde"}}}
		r := newTestResolver(t, c, 0)

		res, err := r.Lookup(ctx, &model.Dependency{Name: "serde", Version: "1.0.0"}, "Rust")
		require.NoError(t, err)
		assert.Equal(t, Resolution{ID: "9", Existed: true}, res)
		assert.Zero(t, c.creates)
	})

	t.Run("created", func(t *testing.T) {
		c := &fakeCatalog{}
		r := newTestResolver(t, c, 0)

		res, err := r.Lookup(ctx, &model.Dependency{Name: "serde", Version: "1.0.0"}, "Rust")
		require.NoError(t, err)
		assert.Equal(t, Resolution{ID: "tech-1", Created: true}, res)
	})

	t.Run("created concurrently elsewhere", func(t *testing.T) {
		c := &fakeCatalog{techs: []model.Technology{{ID: "77", Nome: "serde"}}, hideFromSearch: true}
		r := newTestResolver(t, c, 0)

		res, err := r.Lookup(ctx, &model.Dependency{Name: "serde"}, "Rust")
		require.NoError(t, err)
		assert.Equal(t, "77", res.ID)
		assert.True(t, res.Created)
		assert.False(t, res.Existed)
	})

	t.Run("search failure still attempts creation", func(t *testing.T) {
		c := &fakeCatalog{searchErr: errors.New("unreachable")}
		r := newTestResolver(t, c, 0)

		res, err := r.Lookup(ctx, &model.Dependency{Name: "serde"}, "Rust")
		require.NoError(t, err)
		assert.Equal(t, 1, c.creates)
		assert.True(t, res.Created)
	})

	t.Run("creation failure", func(t *testing.T) {
		c := &fakeCatalog{createErr: errors.New("status 500")}
		r := newTestResolver(t, c, 0)

		_, err := r.Lookup(ctx, &model.Dependency{Name: "serde"}, "Rust")
		require.Error(t, err)
	})
}

func TestLookup_Cache(t *testing.T) {
	ctx := context.Background()
	c := &fakeCatalog{}
	r := newTestResolver(t, c, 16)

	first, err := r.Lookup(ctx, &model.Dependency{Name: "Serde", Version: "1.0.0"}, "Rust")
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := r.Lookup(ctx, &model.Dependency{Name: "serde", Version: "1.0.1"}, "Rust")
	require.NoError(t, err)
	assert.Equal(t, Resolution{ID: first.ID, Existed: true}, second)
	assert.Equal(t, 1, c.searches)
	assert.Equal(t, 1, c.creates)
}

func TestLookup_CacheDisabled(t *testing.T) {
	ctx := context.Background()
	c := &fakeCatalog{}
	r := newTestResolver(t, c, 0)

	_, err := r.Lookup(ctx, &model.Dependency{Name: "serde"}, "Rust")
	require.NoError(t, err)
	res, err := r.Lookup(ctx, &model.Dependency{Name: "serde"}, "Rust")
	require.NoError(t, err)

	assert.True(t, res.Existed)
	assert.Equal(t, 2, c.searches)
}

func TestSigla(t *testing.T) {
	now := time.UnixMilli(1700000098765)

	tests := []struct {
		name string
		dep  model.Dependency
		want string
	}{
		{"short name padded", model.Dependency{Name: "rack"}, "RACK0000000000-98765"},
		{"punctuation stripped", model.Dependency{Name: "@types/node"}, "TYPESNODE00000-98765"},
		{"long name cut", model.Dependency{Name: "github.com/spf13/cobra"}, "GITHUBCOMSPF13-98765"},
		{"artifactId wins", model.Dependency{Name: "org.x:core-lib:1.0", ArtifactID: "core-lib"}, "core-lib"},
		{"no alphanumerics", model.Dependency{Name: "---"}, "00000000000000-98765"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sigla(&tt.dep, now))
		})
	}
}

func TestSigla_ArtifactIDTruncated(t *testing.T) {
	long := "a-very-long-artifact-identifier-that-goes-well-beyond-fifty-characters"
	got := Sigla(&model.Dependency{Name: "g:" + long, ArtifactID: long}, time.Now())
	assert.Len(t, got, 50)
	assert.Equal(t, long[:50], got)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
