package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-instant-search/config"
	internalErrors "github.com/gcbaptista/go-instant-search/internal/errors"
)

// CreateIndexHandler handles the request to create a new index.
// Request Body: config.IndexSettings
func (api *API) CreateIndexHandler(c *gin.Context) {
	var settings config.IndexSettings

	if !bindJSON(c, &settings) {
		return
	}

	if result := ValidateIndexSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateIndex(settings); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrIndexAlreadyExists):
			SendIndexExistsError(c, settings.Name)
		case errors.Is(err, internalErrors.ErrInvalidInput):
			result := &ValidationResult{Valid: true}
			result.AddError("settings", err.Error())
			SendValidationError(c, result)
		default:
			SendIndexingError(c, "create index", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Index '" + settings.Name + "' created successfully",
		"settings": settings,
	})
}

// ListIndexesHandler lists all available indexes.
func (api *API) ListIndexesHandler(c *gin.Context) {
	names := api.engine.ListIndexes()
	c.JSON(http.StatusOK, gin.H{"indexes": names, "count": len(names)})
}

// GetIndexHandler retrieves the settings of a specific index.
func (api *API) GetIndexHandler(c *gin.Context) {
	indexAccessor, _, ok := api.getIndex(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, indexAccessor.Settings())
}

// DeleteIndexHandler handles deleting an index.
func (api *API) DeleteIndexHandler(c *gin.Context) {
	indexName := c.Param("indexName")

	if err := api.engine.DeleteIndex(indexName); err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendIndexingError(c, "delete index", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Index '" + indexName + "' deleted successfully"})
}

// RenameIndexRequest defines the structure for renaming an index
type RenameIndexRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// RenameIndexHandler handles requests to rename an index
func (api *API) RenameIndexHandler(c *gin.Context) {
	oldName := c.Param("indexName")

	var req RenameIndexRequest

	if !bindJSON(c, &req) {
		return
	}

	if result := ValidateRenameRequest(oldName, req.NewName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.RenameIndex(oldName, req.NewName); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrIndexNotFound):
			SendIndexNotFoundError(c, oldName)
		case errors.Is(err, internalErrors.ErrIndexAlreadyExists):
			SendIndexExistsError(c, req.NewName)
		case errors.Is(err, internalErrors.ErrSameName):
			SendSameNameError(c, req.NewName)
		default:
			SendIndexingError(c, "rename index", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Index renamed successfully",
		"old_name": oldName,
		"new_name": req.NewName,
	})
}

// GetIndexStatsHandler returns statistics for a specific index
func (api *API) GetIndexStatsHandler(c *gin.Context) {
	indexAccessor, _, ok := api.getIndex(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, indexAccessor.Stats())
}
