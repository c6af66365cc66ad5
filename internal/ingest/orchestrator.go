// Package ingest runs an ingestion batch: every dependency found in the
// selected files is resolved to a catalog technology and associated with the
// target application.
package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/StinkyLord/lockfile-loader/internal/apperrors"
	"github.com/StinkyLord/lockfile-loader/internal/model"
	"github.com/StinkyLord/lockfile-loader/internal/resolver"
	"github.com/StinkyLord/lockfile-loader/internal/scanner"
)

// Row messages and placeholders.
const (
	ErrUnrecognized   = "Formato de arquivo não reconhecido"
	ErrNoDependencies = "Nenhuma dependência encontrada"
	ErrCreateFailed   = "Erro ao criar tecnologia"

	unknownLabel    = "Desconhecida"
	emptyDependency = "(vazio)"
	noVersion       = "-"
)

// Resolver maps a dependency to a technology id.
type Resolver interface {
	Lookup(ctx context.Context, dep *model.Dependency, language string) (resolver.Resolution, error)
}

// Associator links a technology to an application and reports success.
type Associator interface {
	Associate(ctx context.Context, applicationID, technologyID string) bool
}

// Orchestrator owns the batch loop. Files and dependencies are processed
// sequentially so result order is deterministic and no two lookups for the
// same name overlap.
type Orchestrator struct {
	scanner    *scanner.Scanner
	resolver   Resolver
	associator Associator
	logger     *zap.Logger
	now        func() time.Time
}

// New creates an Orchestrator.
func New(sc *scanner.Scanner, res Resolver, assoc Associator, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		scanner:    sc,
		resolver:   res,
		associator: assoc,
		logger:     logger.Named("ingest"),
		now:        time.Now,
	}
}

// Run processes files for applicationID and returns the finished session.
// Validation errors are returned before any catalog call, together with a
// session left Idle. Per-file and per-dependency failures never abort the
// batch; they become rows.
func (o *Orchestrator) Run(ctx context.Context, applicationID string, files []scanner.File) (*Session, error) {
	session := newSession(applicationID)
	if applicationID == "" {
		return session, apperrors.ErrNoApplication
	}
	if len(files) == 0 {
		return session, apperrors.ErrNoFiles
	}

	session.Status = StatusProcessing
	session.StartedAt = o.now()
	o.logger.Info("processamento_iniciado",
		zap.Stringer("session_id", session.ID),
		zap.String("aplicacao_id", applicationID),
		zap.Int("total_arquivos", len(files)))

	for _, f := range files {
		res := o.scanner.ScanFile(f)
		session.Results = append(session.Results, o.processFile(ctx, applicationID, res)...)
	}

	session.Status = StatusDone
	session.FinishedAt = o.now()

	sum := session.Summary()
	o.logger.Info("processamento_concluido",
		zap.Stringer("session_id", session.ID),
		zap.Int("sucesso", sum.Associated),
		zap.Int("erros", sum.Errors),
		zap.Int("total", sum.Total),
		zap.Duration("duration", session.FinishedAt.Sub(session.StartedAt)))

	return session, nil
}

func (o *Orchestrator) processFile(ctx context.Context, applicationID string, res scanner.Result) []model.Row {
	name := res.File.Name
	if !res.Recognized {
		return []model.Row{{
			Arquivo:     name,
			Dependencia: name,
			Versao:      noVersion,
			Tecnologia:  unknownLabel,
			Linguagem:   unknownLabel,
			Erro:        ErrUnrecognized,
		}}
	}

	d := res.Descriptor
	if len(res.Dependencies) == 0 {
		return []model.Row{{
			Arquivo:     name,
			Dependencia: emptyDependency,
			Versao:      noVersion,
			Tecnologia:  d.Tool,
			Linguagem:   d.Language,
			Erro:        ErrNoDependencies,
		}}
	}

	rows := make([]model.Row, 0, len(res.Dependencies))
	for _, dep := range res.Dependencies {
		rows = append(rows, o.processDependency(ctx, applicationID, name, d.Language, dep))
	}
	return rows
}

func (o *Orchestrator) processDependency(ctx context.Context, applicationID, file, language string, dep *model.Dependency) model.Row {
	row := model.Row{
		Arquivo:     file,
		Dependencia: dep.Name,
		Versao:      dep.Version,
		Tecnologia:  dep.Name,
		Linguagem:   language,
	}

	resolution, err := o.resolver.Lookup(ctx, dep, language)
	if err != nil {
		o.logger.Warn("Failed to resolve technology",
			zap.String("file", file),
			zap.String("dependency", dep.Name),
			zap.Error(err))
		row.Erro = ErrCreateFailed + ": " + err.Error()
		return row
	}

	row.TecExistente = resolution.Existed
	row.TecCriada = !resolution.Existed
	row.Associada = o.associator.Associate(ctx, applicationID, resolution.ID)
	return row
}
