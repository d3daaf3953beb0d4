package engine

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/internal/errors"
)

// CreateIndex creates a new empty index with the given settings.
func (e *Engine) CreateIndex(settings config.IndexSettings) error {
	if strings.TrimSpace(settings.Name) == "" {
		return errors.NewValidationError("name", "index name cannot be empty")
	}

	instance, err := NewIndexInstance(settings, e.metrics)
	if err != nil {
		return fmt.Errorf("failed to create new index instance for '%s': %w", settings.Name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[settings.Name]; exists {
		return errors.NewIndexAlreadyExistsError(settings.Name)
	}
	e.indexes[settings.Name] = instance

	applied := instance.Settings()
	e.log.Info("index created", "index", applied.Name, "store", applied.PostingStore, "tally", applied.CandidateTally)
	return nil
}

// DeleteIndex removes an index and all its documents.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		return errors.NewIndexNotFoundError(name)
	}
	delete(e.indexes, name)
	e.metrics.ForgetIndex(name)

	e.log.Info("index deleted", "index", name)
	return nil
}

// RenameIndex renames an index, keeping its documents.
func (e *Engine) RenameIndex(oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return errors.NewValidationError("new_name", "index name cannot be empty")
	}
	if oldName == newName {
		return errors.NewSameNameError(oldName)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.indexes[oldName]
	if !exists {
		return errors.NewIndexNotFoundError(oldName)
	}
	if _, exists := e.indexes[newName]; exists {
		return errors.NewIndexAlreadyExistsError(newName)
	}

	instance.rename(newName)
	e.indexes[newName] = instance
	delete(e.indexes, oldName)
	e.metrics.ForgetIndex(oldName)

	e.log.Info("index renamed", "from", oldName, "to", newName)
	return nil
}
