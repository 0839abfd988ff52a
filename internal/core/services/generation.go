package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// samplingRun is the mutable state of one generation run. It is created per
// run and never shared.
type samplingRun struct {
	used     *domain.UsedIDSet
	metadata *MetadataStore
}

type GenerationService struct {
	mu       sync.Mutex
	repo     ports.EmployeeRepository
	store    ports.ArtifactStore
	renderer ports.VisualRenderer
	sampler  *SampleGenerator
	opts     domain.RenderOptions
	now      func() time.Time
}

func NewGenerationService(
	repo ports.EmployeeRepository,
	store ports.ArtifactStore,
	renderer ports.VisualRenderer,
	sampler *SampleGenerator,
	opts domain.RenderOptions,
) *GenerationService {
	return &GenerationService{
		repo:     repo,
		store:    store,
		renderer: renderer,
		sampler:  sampler,
		opts:     opts,
		now:      time.Now,
	}
}

// Run clears the previous run's artifacts, loads the employee table and
// generates iterations sample pairs of sampleSize per gender.
func (s *GenerationService) Run(ctx context.Context, sampleSize, iterations int) ([]domain.MetadataEntry, error) {
	if sampleSize <= 0 {
		return nil, domain.ErrInvalidSampleSize
	}
	if iterations <= 0 {
		return nil, domain.ErrInvalidIterations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ResetVisuals(); err != nil {
		return nil, fmt.Errorf("reset artifacts: %w", err)
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	return s.GenerateMultipleSamples(records, sampleSize, iterations)
}

// GenerateMultipleSamples draws, renders and dumps iterations disjoint sample
// pairs, then writes the metadata document. The first failure stops the run;
// artifacts already written are left in place and no document is written.
func (s *GenerationService) GenerateMultipleSamples(records []domain.EmployeeRecord, sampleSize, iterations int) ([]domain.MetadataEntry, error) {
	if iterations <= 0 {
		return nil, domain.ErrInvalidIterations
	}

	run := &samplingRun{
		used:     domain.NewUsedIDSet(),
		metadata: NewMetadataStore(s.store),
	}

	for i := 1; i <= iterations; i++ {
		male, female, err := s.sampler.GenerateRandomSample(records, run.used, sampleSize)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}

		name := fmt.Sprintf("visual_%s_%d.png", s.now().Format("20060102_150405"), i)
		path, err := s.store.VisualPath(name)
		if err != nil {
			return nil, err
		}
		if err := s.renderer.Render(male, female, path, s.opts); err != nil {
			return nil, fmt.Errorf("render sample %d: %w", i, err)
		}

		if err := s.store.WriteSampleCSV(fmt.Sprintf("sample_%d_male", i), male); err != nil {
			return nil, err
		}
		if err := s.store.WriteSampleCSV(fmt.Sprintf("sample_%d_female", i), female); err != nil {
			return nil, err
		}

		run.metadata.Record(name, fmt.Sprintf("Sample %d", i), domain.MetadataEntry{
			Timestamp: s.now(),
			MaleIDs:   domain.IDs(male),
			FemaleIDs: domain.IDs(female),
		})

		log.WithFields(log.Fields{
			"sample": i,
			"visual": name,
			"used":   run.used.Len(),
		}).Info("generated sample")
	}

	if err := run.metadata.Flush(); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	return run.metadata.Entries(), nil
}

// Visuals returns the current metadata document, empty when none exists.
func (s *GenerationService) Visuals() ([]domain.MetadataEntry, error) {
	entries, err := s.store.ReadMetadata()
	if err != nil {
		if errors.Is(err, domain.ErrMetadataNotFound) {
			return []domain.MetadataEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}
