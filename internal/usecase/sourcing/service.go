// Package sourcing runs the discover-fetch-persist pipeline that turns a
// search query into a table of candidate profiles.
package sourcing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/metrics"
	"github.com/hireloop/talentscout/internal/transport/rapidapi"
)

// Report summarizes one sourcing run.
type Report struct {
	Discovered int
	Fetched    int
	Skipped    int
	OutputPath string
}

// Service sources profiles end to end.
type Service struct {
	discoverer Discoverer
	oracle     ProfileOracle
	writer     ProfileWriter
	workers    int
	logger     *zap.Logger
}

// New creates a sourcing service. workers bounds fetch parallelism.
func New(discoverer Discoverer, oracle ProfileOracle, writer ProfileWriter, workers int, logger *zap.Logger) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		discoverer: discoverer,
		oracle:     oracle,
		writer:     writer,
		workers:    workers,
		logger:     logger,
	}
}

// Source discovers usernames for the query, fetches their profiles in
// parallel, and writes the normalized records to outPath. A failed fetch
// skips that username and never aborts the batch. Output order follows
// discovery order.
func (s *Service) Source(ctx context.Context, query string, maxResults int, outPath string) (Report, error) {
	usernames, err := s.discoverer.Discover(ctx, query, maxResults)
	if err != nil {
		return Report{}, fmt.Errorf("discover: %w", err)
	}

	fetched := s.fetchAll(ctx, usernames)

	profiles := make([]domain.Profile, 0, len(usernames))
	for i, username := range usernames {
		if fetched[i] == nil {
			continue
		}
		profiles = append(profiles, normalize(username, fetched[i]))
	}

	if err := s.writer.Write(profiles, outPath); err != nil {
		return Report{}, fmt.Errorf("write profiles: %w", err)
	}

	report := Report{
		Discovered: len(usernames),
		Fetched:    len(profiles),
		Skipped:    len(usernames) - len(profiles),
		OutputPath: outPath,
	}
	s.logger.Info("sourcing finished",
		zap.Int("discovered", report.Discovered),
		zap.Int("fetched", report.Fetched),
		zap.Int("skipped", report.Skipped),
		zap.String("out", outPath),
	)
	return report, nil
}

// fetchAll fetches every username through a bounded worker pool. The
// result slice is index-aligned with usernames; a nil entry means the
// fetch failed and was skipped.
func (s *Service) fetchAll(ctx context.Context, usernames []string) []*rapidapi.ProfileResponse {
	results := make([]*rapidapi.ProfileResponse, len(usernames))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.fetchOne(ctx, usernames[i])
			}
		}()
	}

dispatch:
	for i := range usernames {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (s *Service) fetchOne(ctx context.Context, username string) *rapidapi.ProfileResponse {
	start := time.Now()
	profile, err := s.oracle.FetchProfile(ctx, username)
	metrics.ProfileFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ProfilesFetchedTotal.WithLabelValues("skipped").Inc()
		s.logger.Warn("profile fetch failed, skipping",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil
	}

	metrics.ProfilesFetchedTotal.WithLabelValues("fetched").Inc()
	return profile
}

// normalize converts a raw profile payload to the domain record. Absent
// keys become empty values; experience entries are merged with position
// records taking precedence over fullPositions duplicates.
func normalize(username string, p *rapidapi.ProfileResponse) domain.Profile {
	experience := domain.MergePositions(toPositions(p.Position), toPositions(p.FullPositions))

	skills := make([]string, 0, len(p.Skills))
	for _, sk := range p.Skills {
		skills = append(skills, sk.Name)
	}

	education := make([]string, 0, len(p.Educations))
	for _, ed := range p.Educations {
		education = append(education, domain.FormatEducation(ed.Degree, ed.FieldOfStudy, ed.SchoolName))
	}

	return domain.Profile{
		ID:         p.ID.String(),
		URN:        p.URN,
		Username:   username,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Headline:   p.Headline,
		Summary:    p.Summary,
		Experience: experience,
		Skills:     skills,
		Education:  education,
	}
}

func toPositions(entries []rapidapi.PositionEntry) []domain.Position {
	positions := make([]domain.Position, len(entries))
	for i, e := range entries {
		positions[i] = domain.Position{Title: e.Title, Company: e.CompanyName}
	}
	return positions
}
