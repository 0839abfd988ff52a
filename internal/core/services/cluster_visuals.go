package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

const metadataTypeFinalSample = "final_100_each"

type ClusterVisualRequest struct {
	ImagesPerCluster int
	SampleSize       int
	FullSampleSize   int
}

func DefaultClusterVisualRequest() ClusterVisualRequest {
	return ClusterVisualRequest{ImagesPerCluster: 10, SampleSize: 10, FullSampleSize: 100}
}

// ClusterVisualService renders comparison visuals per exported cluster plus
// one full-dataset comparison.
type ClusterVisualService struct {
	mu       sync.Mutex
	repo     ports.EmployeeRepository
	store    ports.ArtifactStore
	renderer ports.VisualRenderer
	opts     domain.RenderOptions
	seed     uint64
	now      func() time.Time
}

func NewClusterVisualService(
	repo ports.EmployeeRepository,
	store ports.ArtifactStore,
	renderer ports.VisualRenderer,
	opts domain.RenderOptions,
	seed uint64,
) *ClusterVisualService {
	return &ClusterVisualService{
		repo:     repo,
		store:    store,
		renderer: renderer,
		opts:     opts,
		seed:     seed,
		now:      time.Now,
	}
}

func (s *ClusterVisualService) Generate(ctx context.Context, req ClusterVisualRequest) ([]domain.MetadataEntry, error) {
	if req.SampleSize <= 0 || req.FullSampleSize <= 0 {
		return nil, domain.ErrInvalidSampleSize
	}
	if req.ImagesPerCluster <= 0 {
		return nil, domain.ErrInvalidIterations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ResetVisuals(); err != nil {
		return nil, fmt.Errorf("reset cluster visuals: %w", err)
	}

	meta := NewMetadataStore(s.store)
	for _, c := range domain.Clusters {
		if err := s.generateForCluster(c, req, meta); err != nil {
			return nil, err
		}
	}

	if err := s.generateFullSample(ctx, req.FullSampleSize, meta); err != nil {
		return nil, err
	}

	if err := meta.Flush(); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	log.WithField("visuals", len(meta.Entries())).Info("cluster graphs and full dataset sample graph generated")
	return meta.Entries(), nil
}

func (s *ClusterVisualService) generateForCluster(c domain.Cluster, req ClusterVisualRequest, meta *MetadataStore) error {
	male, err := s.store.ReadClusterCSV(c, ports.ClusterPartMale)
	if err != nil {
		return fmt.Errorf("read cluster %s: %w", c, err)
	}
	female, err := s.store.ReadClusterCSV(c, ports.ClusterPartFemale)
	if err != nil {
		return fmt.Errorf("read cluster %s: %w", c, err)
	}
	if len(male) == 0 || len(female) == 0 {
		log.WithFields(log.Fields{
			"cluster": c,
			"male":    len(male),
			"female":  len(female),
		}).Warn("skipping cluster with an empty gender group")
		return nil
	}

	for i := 1; i <= req.ImagesPerCluster; i++ {
		maleSample := NewSampleGenerator(NewRand(s.seed+uint64(i))).WithReplacement(male, req.SampleSize)
		femaleSample := NewSampleGenerator(NewRand(s.seed+uint64(i)+100)).WithReplacement(female, req.SampleSize)

		if err := s.store.WriteGroupedSampleCSV(fmt.Sprintf("%s_%d", c, i), maleSample, femaleSample); err != nil {
			return err
		}

		name := fmt.Sprintf("%s/visual_%d.png", c, i)
		path, err := s.store.VisualPath(name)
		if err != nil {
			return err
		}
		if err := s.renderer.Render(maleSample, femaleSample, path, s.opts); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}

		meta.Record(name, "", domain.MetadataEntry{
			Cluster:   string(c),
			Timestamp: s.now(),
			MaleIDs:   domain.IDs(maleSample),
			FemaleIDs: domain.IDs(femaleSample),
		})
	}
	return nil
}

func (s *ClusterVisualService) generateFullSample(ctx context.Context, n int, meta *MetadataStore) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load employees: %w", err)
	}

	males, females := domain.SplitByGender(records)
	if len(males) < n || len(females) < n {
		return fmt.Errorf("%w: full sample needs %d per gender, have %d male and %d female",
			domain.ErrInsufficientData, n, len(males), len(females))
	}

	maleSample := NewSampleGenerator(NewRand(s.seed+999)).WithoutReplacement(males, n)
	femaleSample := NewSampleGenerator(NewRand(s.seed+888)).WithoutReplacement(females, n)

	if err := s.store.WriteGroupedSampleCSV(fmt.Sprintf("final_%d_%d_sample", n, n), maleSample, femaleSample); err != nil {
		return err
	}

	opts := s.opts
	opts.ScaleFactor = 0.1
	opts.MinSize = 10
	opts.MarginX = 5
	opts.MarginY = 3

	name := fmt.Sprintf("visual_final_%d_male_%d_female.png", n, n)
	path, err := s.store.VisualPath(name)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(maleSample, femaleSample, path, opts); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	meta.Record(name, "", domain.MetadataEntry{
		Type:      metadataTypeFinalSample,
		Timestamp: s.now(),
		MaleIDs:   domain.IDs(maleSample),
		FemaleIDs: domain.IDs(femaleSample),
	})
	return nil
}
