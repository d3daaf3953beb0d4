// Package api provides the HTTP surface of the instant search server.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateIndexName validates an index name parameter
func ValidateIndexName(indexName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if indexName == "" {
		result.AddError("indexName", "Index name is required")
		return result
	}

	if strings.TrimSpace(indexName) != indexName {
		result.AddError("indexName", "Index name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateIndexSettings validates index settings for creation and applies defaults
// when they are usable.
func ValidateIndexSettings(settings *config.IndexSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Index settings are required")
		return result
	}

	if settings.Name != "" {
		if nameResult := ValidateIndexName(settings.Name); nameResult.HasErrors() {
			for _, e := range nameResult.Errors {
				result.AddError("name", e.Message)
			}
		}
	}

	for _, problem := range settings.Validate() {
		result.AddError("settings", problem)
	}

	if !result.HasErrors() {
		settings.ApplyDefaults()
	}
	return result
}

// DocumentRequest is the wire form of a document. Pointers distinguish
// missing fields from zero values.
type DocumentRequest struct {
	ID    *uint32 `json:"id"`
	Value *string `json:"value"`
}

// ValidateDocuments validates documents for addition and converts them to the model form.
func ValidateDocuments(reqs []DocumentRequest) ([]model.Document, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if len(reqs) == 0 {
		result.AddError("documents", "No documents provided")
		return nil, result
	}

	docs := make([]model.Document, 0, len(reqs))
	for i, req := range reqs {
		if req.ID == nil {
			result.AddError(fmt.Sprintf("documents[%d].id", i), "Document must have an 'id' field")
			continue
		}
		if req.Value == nil {
			result.AddError(fmt.Sprintf("documents[%d].value", i), "Document must have a 'value' field")
			continue
		}
		docs = append(docs, model.NewDocument(*req.ID, *req.Value))
	}

	if result.HasErrors() {
		return nil, result
	}
	return docs, result
}

// ValidateRenameRequest validates a rename index request
func ValidateRenameRequest(oldName, newName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if oldName == "" {
		result.AddError("oldName", "Current index name is required")
	}

	if newName == "" {
		result.AddError("new_name", "New name is required and cannot be empty")
	}

	if strings.TrimSpace(newName) != newName {
		result.AddError("new_name", "New name cannot have leading or trailing whitespace")
	}

	if oldName == newName {
		result.AddError("new_name", "New name must be different from current name")
	}

	return result
}

// ValidateSearchNames checks multi-search query names for presence and uniqueness.
func ValidateSearchNames(names []string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(names) == 0 {
		result.AddError("queries", "At least one query is required")
		return result
	}

	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			result.AddError(fmt.Sprintf("queries[%d].name", i), "Query name is required")
			continue
		}
		if seen[name] {
			result.AddError(fmt.Sprintf("queries[%d].name", i), fmt.Sprintf("Duplicate query name '%s'", name))
		}
		seen[name] = true
	}
	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// bindJSON binds the request body into target. On failure it sends 413 for
// bodies over the size limit and a validation error otherwise, then returns false.
func bindJSON(c *gin.Context, target interface{}) bool {
	err := c.ShouldBindJSON(target)
	if err == nil {
		return true
	}
	if sendIfBodyTooLarge(c, err) {
		return false
	}

	result := &ValidationResult{Valid: true}
	result.AddError("request_body", "Invalid request body: "+err.Error())
	SendValidationError(c, result)
	return false
}

// sendIfBodyTooLarge sends 413 and reports true when err came from the body size limit.
func sendIfBodyTooLarge(c *gin.Context, err error) bool {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return false
	}
	SendBodyTooLargeError(c, tooLarge.Limit)
	return true
}
