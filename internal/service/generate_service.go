package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/amterp/namemap/internal/config"
	"github.com/amterp/namemap/internal/dataset"
	"github.com/amterp/namemap/internal/id"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/palette"
	"github.com/amterp/namemap/internal/store"
)

// GenerateOptions control a single generate run.
type GenerateOptions struct {
	DryRun bool // Compute and report, but write nothing
}

// GenerateResult describes what a generate run produced.
type GenerateResult struct {
	RunID       string          `json:"run_id"`
	InputPath   string          `json:"input"`
	Years       int             `json:"years"`
	Palette     palette.Palette `json:"palette"`
	ColorsPath  string          `json:"colors_path"`
	PreviewPath string          `json:"preview_path"`
	Written     bool            `json:"written"`
	*AssignResult
}

// GenerateService runs the assigner over the configured input and writes the
// color table and palette preview.
type GenerateService struct {
	paths     *config.Paths
	cfg       *model.ProjectConfig
	artifacts store.ArtifactStore
	log       logrus.FieldLogger
}

// NewGenerateService creates a new generate service.
func NewGenerateService(
	paths *config.Paths,
	cfg *model.ProjectConfig,
	artifacts store.ArtifactStore,
	log logrus.FieldLogger,
) *GenerateService {
	if log == nil {
		log = discardLogger()
	}
	return &GenerateService{
		paths:     paths,
		cfg:       cfg,
		artifacts: artifacts,
		log:       log,
	}
}

// Generate reads the input, assigns colors and writes both artifacts.
// Any input or render error aborts the run before anything is written.
func (s *GenerateService) Generate(opts GenerateOptions) (*GenerateResult, error) {
	runID := id.NewRunID()
	log := s.log.WithField("run", runID)

	pal, err := palette.Generate(s.cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}

	inputPath := s.paths.InputPath(s.cfg)
	ds, err := dataset.Load(inputPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"input": inputPath,
		"years": ds.Len(),
	}).Debug("dataset loaded")

	assigned := NewAssigner(pal, s.cfg.MaxColors, log).Assign(ds)

	colors, err := store.MarshalTable(assigned.Table)
	if err != nil {
		return nil, err
	}
	preview, err := palette.RenderPreview(pal, palette.PreviewOptions{})
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		RunID:        runID,
		InputPath:    inputPath,
		Years:        ds.Len(),
		Palette:      pal,
		ColorsPath:   s.paths.ColorsPath(s.cfg),
		PreviewPath:  s.paths.PreviewPath(s.cfg),
		AssignResult: assigned,
	}
	if opts.DryRun {
		return result, nil
	}

	if err := s.artifacts.Write(&store.Artifacts{Colors: colors, Preview: preview}); err != nil {
		return nil, err
	}
	result.Written = true
	log.WithField("names", len(assigned.Table)).Info("artifacts written")
	return result, nil
}
