package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
	"github.com/custodia-labs/prrelink/internal/logger"
	"github.com/custodia-labs/prrelink/internal/pathurl"
)

// Ensure RelinkService implements the interface.
var _ driving.RelinkService = (*RelinkService)(nil)

// RelinkService drives a container through
// Reading -> Extracting -> Mapping -> Rewriting -> Validating -> Writing.
// Each run owns its document; concurrent runs share nothing but the
// injected collaborators.
type RelinkService struct {
	codec      driven.ProjectCodec
	files      driven.ProjectFiles
	runStore   driven.RunStore
	observers  []driven.RunObserver
	schema     domain.ProjectSchema
	normalizer pathurl.Normalizer
	now        func() time.Time
}

// NewRelinkService creates a new relink service.
// runStore may be nil, in which case runs are not recorded.
func NewRelinkService(
	codec driven.ProjectCodec,
	files driven.ProjectFiles,
	runStore driven.RunStore,
	caseMode domain.CaseMode,
) *RelinkService {
	return &RelinkService{
		codec:      codec,
		files:      files,
		runStore:   runStore,
		schema:     domain.DefaultProjectSchema(),
		normalizer: pathurl.NewNormalizer(caseMode),
		now:        time.Now,
	}
}

// AddObserver registers an observer notified after every run.
func (s *RelinkService) AddObserver(o driven.RunObserver) {
	if o != nil {
		s.observers = append(s.observers, o)
	}
}

// SetSchema replaces the path-bearing location table.
func (s *RelinkService) SetSchema(schema domain.ProjectSchema) {
	s.schema = schema
}

// Relink runs the pipeline for one container.
func (s *RelinkService) Relink(ctx context.Context, req domain.RelinkRequest) *domain.RelinkOutcome {
	run := domain.RelinkRun{
		ID:              uuid.New().String(),
		SourcePath:      req.SourcePath,
		DestinationPath: req.Destination(),
		DryRun:          req.DryRun,
		StartedAt:       s.now(),
	}

	logger.Section("Relink " + req.SourcePath)
	outcome := s.relink(ctx, req)

	run.FinishedAt = s.now()
	run.Outcome = *outcome
	s.record(ctx, run)

	return outcome
}

func (s *RelinkService) relink(ctx context.Context, req domain.RelinkRequest) *domain.RelinkOutcome {
	out := &domain.RelinkOutcome{Stage: domain.StageReading}

	if strings.TrimSpace(req.SourcePath) == "" {
		return fail(out, domain.StageReading, fmt.Errorf("%w: source path is required", domain.ErrInvalidInput))
	}

	done := logger.Stage(string(domain.StageReading))
	doc, err := s.read(ctx, req.SourcePath)
	done()
	if err != nil {
		return fail(out, domain.StageReading, err)
	}

	done = logger.Stage(string(domain.StageExtracting))
	refs := ExtractReferences(doc, s.schema)
	done()
	out.ReferenceCount = len(refs)
	out.MalformedCount = countMalformed(refs)
	logger.Info("Found %d path references (%d malformed)", out.ReferenceCount, out.MalformedCount)
	if len(refs) == 0 {
		return finish(out, domain.NoteNoReferences)
	}

	done = logger.Stage(string(domain.StageMapping))
	mapping := pathurl.BuildMapping(req.Relocations, s.normalizer)
	matched, unmatched := mapping.Match(refs)
	done()
	out.UnmatchedCount = unmatched
	logger.Info("Matched %d of %d references", matched, len(refs))
	if mapping.Len() == 0 || matched == 0 {
		return finish(out, domain.NoteNoRelocations)
	}

	done = logger.Stage(string(domain.StageRewriting))
	result := RewriteReferences(doc, refs, mapping)
	done()

	done = logger.Stage(string(domain.StageValidating))
	warnings, err := ValidateRewrite(doc, s.schema, result.Changes)
	done()
	if err != nil {
		return fail(out, domain.StageValidating, err)
	}
	for _, w := range warnings {
		logger.Warn("%s", w)
		out.Notes = append(out.Notes, fmt.Sprintf("%s: %s", domain.StageValidating, w))
	}

	out.UpdatedCount = result.Updated
	out.Changes = result.Changes

	if req.DryRun {
		return finish(out, domain.NoteDryRun)
	}

	// Cancellation is only honoured up to here; once Writing starts it
	// runs to completion.
	if err := ctx.Err(); err != nil {
		out.UpdatedCount = 0
		out.Changes = nil
		return fail(out, domain.StageWriting, fmt.Errorf("%w: %v", domain.ErrCancelled, err))
	}

	done = logger.Stage(string(domain.StageWriting))
	err = s.write(ctx, req.Destination(), doc)
	done()
	if err != nil {
		out.UpdatedCount = 0
		out.Changes = nil
		return fail(out, domain.StageWriting, err)
	}

	logger.Info("Updated %d path references in %s", out.UpdatedCount, req.Destination())
	return finish(out)
}

func (s *RelinkService) read(ctx context.Context, path string) (*domain.ProjectDocument, error) {
	data, err := s.files.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(data)
}

func (s *RelinkService) write(ctx context.Context, path string, doc *domain.ProjectDocument) error {
	data, err := s.codec.Encode(doc)
	if err != nil {
		return err
	}
	return s.files.Write(ctx, path, data)
}

// record persists the run and notifies observers. Failures here never
// change the outcome.
func (s *RelinkService) record(ctx context.Context, run domain.RelinkRun) {
	if s.runStore != nil {
		if err := s.runStore.Save(context.WithoutCancel(ctx), run); err != nil {
			logger.Warn("Failed to record run %s: %v", run.ID, err)
		}
	}
	for _, o := range s.observers {
		o.RunCompleted(run)
	}
}

// Inspect reports the references in a container without modifying it.
func (s *RelinkService) Inspect(
	ctx context.Context,
	path string,
	relocations []domain.RelocationEntry,
) (*driving.InspectReport, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	data, err := s.files.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}

	report := &driving.InspectReport{
		Path:       path,
		Compressed: s.codec.Compressed(data),
	}
	if root, ok := doc.Node(doc.Root()); ok {
		report.RootElement = root.QualifiedName()
	}

	refs := ExtractReferences(doc, s.schema)
	report.MalformedCount = countMalformed(refs)

	mapping := pathurl.BuildMapping(relocations, s.normalizer)
	for _, ref := range refs {
		detail := driving.ReferenceDetail{
			PathReference: ref,
			Kind:          domain.ClassifyMedia(ref.DecodedPath),
		}
		if dest, ok := mapping.Resolve(ref); ok {
			detail.Destination = dest
			report.MatchedCount++
		}
		report.References = append(report.References, detail)
	}

	var verr *domain.ValidationError
	if err := ValidateDocument(doc, s.schema); errors.As(err, &verr) {
		report.ValidationErrors = verr.Messages
	}

	return report, nil
}

// fail marks out as failed at stage. Validation failures contribute one
// message per problem.
func fail(out *domain.RelinkOutcome, stage domain.Stage, err error) *domain.RelinkOutcome {
	out.Success = false
	out.Stage = stage

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Messages {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", stage, msg))
		}
	} else {
		out.Errors = append(out.Errors, (&domain.StageError{Stage: stage, Err: err}).Error())
	}

	logger.Debug("Relink failed at %s: %v", stage, err)
	return out
}

func finish(out *domain.RelinkOutcome, notes ...string) *domain.RelinkOutcome {
	out.Success = true
	out.Stage = domain.StageDone
	out.Notes = append(out.Notes, notes...)
	for _, n := range notes {
		logger.Info("Done: %s", n)
	}
	return out
}
