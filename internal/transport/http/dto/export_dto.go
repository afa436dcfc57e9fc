package dto

import (
	"time"

	"github.com/aadrika123/Mauryavansham-sub002/internal/services/reports"
)

type ExportResponse struct {
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	Rows       int       `json:"rows"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func NewExportResponse(export reports.Export) ExportResponse {
	return ExportResponse{
		ObjectName: export.ObjectName,
		URL:        export.URL,
		Rows:       export.Rows,
		ExpiresAt:  export.ExpiresAt,
	}
}
