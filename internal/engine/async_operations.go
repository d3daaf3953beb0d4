package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/go-instant-search/model"
)

// addDocumentsBatchSize is the number of documents indexed per lock
// acquisition by a background job, letting searches interleave.
const addDocumentsBatchSize = 500

// AddDocumentsAsync adds documents to an index on a background job and
// returns the job ID. The job is bound to the index as it exists now: a later
// rename does not stop it, and an index recreated under the same name never
// receives its documents.
func (e *Engine) AddDocumentsAsync(indexName string, docs []model.Document) (string, error) {
	instance, err := e.instance(indexName)
	if err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeAddDocuments, indexName, map[string]string{
		"operation":      "add_documents",
		"document_count": strconv.Itoa(len(docs)),
	})

	err = e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeAddDocumentsJob(ctx, instance, docs, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start add documents job: %w", err)
	}

	return jobID, nil
}

// executeAddDocumentsJob indexes docs into instance in batches, reporting
// progress after each.
func (e *Engine) executeAddDocumentsJob(ctx context.Context, instance *IndexInstance, docs []model.Document, jobID string) error {
	total := len(docs)
	e.jobManager.UpdateJobProgress(jobID, 0, total, "Starting document addition")

	for start := 0; start < total; start += addDocumentsBatchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("add documents cancelled after %d of %d: %w", start, total, err)
		}

		end := min(start+addDocumentsBatchSize, total)
		if err := instance.AddDocuments(docs[start:end]); err != nil {
			return fmt.Errorf("failed to add documents to index '%s': %w", instance.name(), err)
		}
		e.jobManager.UpdateJobProgress(jobID, end, total, fmt.Sprintf("Indexed %d of %d documents", end, total))
	}

	e.log.Info("documents added", "index", instance.name(), "count", total, "job", jobID)
	return nil
}
