package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-instant-search/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query string `json:"query"`
}

// MultiSearchRequest represents the JSON request for multi-search
type MultiSearchRequest struct {
	Queries []NamedSearchRequest `json:"queries" binding:"required"`
}

// NamedSearchRequest represents a single named search query in the request
type NamedSearchRequest struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// SearchHandler handles search requests to an index.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	indexAccessor, indexName, ok := api.getIndex(c)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if sendIfBodyTooLarge(c, err) {
			return
		}
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	api.search(c, indexAccessor, indexName, req.Query)
}

// QuickSearchHandler serves GET searches with the term in the "q" parameter.
// A missing parameter is an empty query and falls back to a full scan.
func (api *API) QuickSearchHandler(c *gin.Context) {
	indexAccessor, indexName, ok := api.getIndex(c)
	if !ok {
		return
	}
	api.search(c, indexAccessor, indexName, c.Query("q"))
}

func (api *API) search(c *gin.Context, searcher services.Searcher, indexName, term string) {
	result, err := searcher.Search(term)
	if err != nil {
		SendSearchError(c, indexName, err)
		return
	}

	api.log.Debug("search",
		"index", indexName,
		"query", term,
		"exact", len(result.ExactMatches),
		"alternatives", len(result.AlternativeMatches),
		"fallback", result.Fallback,
		"elapsed", result.Elapsed,
	)
	c.JSON(http.StatusOK, result)
}

// MultiSearchHandler runs several named queries against one index in a single request.
func (api *API) MultiSearchHandler(c *gin.Context) {
	indexAccessor, indexName, ok := api.getIndex(c)
	if !ok {
		return
	}

	var req MultiSearchRequest
	if !bindJSON(c, &req) {
		return
	}

	names := make([]string, len(req.Queries))
	queries := make([]services.NamedSearchQuery, len(req.Queries))
	for i, q := range req.Queries {
		names[i] = q.Name
		queries[i] = services.NamedSearchQuery{Name: q.Name, Query: q.Query}
	}
	if result := ValidateSearchNames(names); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result, err := indexAccessor.MultiSearch(c.Request.Context(), queries)
	if err != nil {
		SendSearchError(c, indexName, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
