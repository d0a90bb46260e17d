package services

import (
	"errors"

	"github.com/glowdesk/crm-api/internal/repository"
)

// isNotFound reports whether a repository error means the record is absent
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
