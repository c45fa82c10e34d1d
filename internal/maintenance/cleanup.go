package maintenance

import (
	"context"
	"fmt"
	"time"
)

// CleanupService prunes error log entries past the retention window.
type CleanupService struct {
	repo          RepositoryInterface
	retentionDays int
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(repo RepositoryInterface, retentionDays int) *CleanupService {
	return &CleanupService{repo: repo, retentionDays: retentionDays}
}

// CountExpired reports how many entries are past retention.
func (s *CleanupService) CountExpired(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.cutoff()
	count := 0
	for _, entry := range entries {
		if entry.Timestamp.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

// CleanupExpired deletes every entry past retention and returns how many
// were removed. Deletions are per entry; a failure stops the run with the
// earlier deletions already applied.
func (s *CleanupService) CleanupExpired(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := s.cutoff()
	deleted := 0
	for key, entry := range entries {
		if !entry.Timestamp.Before(cutoff) {
			continue
		}
		if err := s.repo.Delete(ctx, key); err != nil {
			return deleted, fmt.Errorf("failed to prune entry %s: %w", key, err)
		}
		deleted++
	}
	return deleted, nil
}

func (s *CleanupService) cutoff() time.Time {
	return time.Now().UTC().AddDate(0, 0, -s.retentionDays)
}
