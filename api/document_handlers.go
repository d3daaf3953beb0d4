package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-instant-search/model"
	"github.com/gcbaptista/go-instant-search/services"
)

// AddDocumentsHandler handles adding/replacing documents in an index.
// The body is a single {"id", "value"} object or an array of them. Batches
// up to the sync limit are indexed before responding; larger ones start a job.
func (api *API) AddDocumentsHandler(c *gin.Context) {
	indexAccessor, indexName, ok := api.getIndex(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		if sendIfBodyTooLarge(c, err) {
			return
		}
		SendInvalidJSONError(c, err)
		return
	}

	reqs, err := decodeDocumentRequests(body)
	if err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	docs, result := ValidateDocuments(reqs)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if len(docs) > api.syncAddLimit {
		if asyncEngine, ok := api.engine.(services.AsyncIndexManager); ok {
			api.addDocumentsAsync(c, asyncEngine, indexName, docs)
			return
		}
	}

	if err := indexAccessor.AddDocuments(docs); err != nil {
		SendIndexingError(c, "add documents", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("%d document(s) added/updated in index '%s'", len(docs), indexName),
		"document_count": len(docs),
	})
}

func (api *API) addDocumentsAsync(c *gin.Context, asyncEngine services.AsyncIndexManager, indexName string, docs []model.Document) {
	jobID, err := asyncEngine.AddDocumentsAsync(indexName, docs)
	if err != nil {
		SendJobExecutionError(c, "start document addition", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":         "accepted",
		"message":        fmt.Sprintf("Document addition started for index '%s' (%d documents)", indexName, len(docs)),
		"job_id":         jobID,
		"document_count": len(docs),
	})
}

// decodeDocumentRequests accepts either a JSON object or a JSON array of objects.
func decodeDocumentRequests(body []byte) ([]DocumentRequest, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty request body")
	}

	switch trimmed[0] {
	case '[':
		var reqs []DocumentRequest
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, err
		}
		return reqs, nil
	case '{':
		var req DocumentRequest
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, err
		}
		return []DocumentRequest{req}, nil
	default:
		return nil, errors.New("expecting a document object or an array of documents")
	}
}
