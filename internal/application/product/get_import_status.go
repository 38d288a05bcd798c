package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/product-import/internal/domain/product"
)

type GetImportStatusInput struct {
	JobID string
}

type ImportStatusResult struct {
	Current int64  `json:"current"`
	Total   int64  `json:"total"`
	Status  string `json:"status"`
	Result  string `json:"result,omitempty"`
}

type GetImportStatusOutput struct {
	JobID  string              `json:"job_id"`
	Status string              `json:"status"`
	Result *ImportStatusResult `json:"result"`
}

type GetImportStatus interface {
	Execute(ctx context.Context, in GetImportStatusInput) (GetImportStatusOutput, error)
}

type statusReader interface {
	ReadStatus(ctx context.Context, jobID string) (domain.JobStatus, error)
}

type getImportStatus struct {
	registry statusReader
}

func NewGetImportStatus(registry statusReader) GetImportStatus {
	return &getImportStatus{registry: registry}
}

func (uc *getImportStatus) Execute(ctx context.Context, in GetImportStatusInput) (GetImportStatusOutput, error) {
	if _, err := uuid.Parse(in.JobID); err != nil {
		return GetImportStatusOutput{}, ErrInvalidJobID
	}

	status, err := uc.registry.ReadStatus(ctx, in.JobID)
	if err != nil {
		return GetImportStatusOutput{}, fmt.Errorf("%w: %v", ErrGetImportStatus, err)
	}

	return GetImportStatusOutput{
		JobID:  in.JobID,
		Status: string(status.State),
		Result: statusResult(status),
	}, nil
}

func statusResult(status domain.JobStatus) *ImportStatusResult {
	if status.Progress == nil && status.Result == "" {
		return nil
	}

	out := &ImportStatusResult{Result: status.Result}
	if status.Progress != nil {
		out.Current = status.Progress.Current
		out.Total = status.Progress.Total
		out.Status = status.Progress.Message
	}
	if out.Status == "" && status.State == domain.JobFailure {
		out.Status = failedMessage
	}
	return out
}
