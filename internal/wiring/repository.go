package wiring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/config"
	"github.com/etfarb/arbscan/internal/repository"
)

// BuildRepository resolves cfg's repository choice into a live
// repository.SignalRepository.
func BuildRepository(cfg config.RepositoryConfig, logger *zap.Logger) (repository.SignalRepository, error) {
	switch cfg.Kind {
	case "", "memory":
		return repository.NewInMemoryRepository(), nil
	case "journal_file":
		return repository.NewJournalFileRepository(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("wiring: unknown repository.kind %q", cfg.Kind)
	}
}
