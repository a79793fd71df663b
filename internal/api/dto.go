package api

import (
	"github.com/starford/adrkit/internal/adr"
	"github.com/starford/adrkit/internal/adrservice"
	"github.com/starford/adrkit/internal/index"
)

// CreateADRRequest is the request body for creating an ADR. Supersedes
// names the filename of the ADR being replaced, if any.
type CreateADRRequest struct {
	Title      string `json:"title" example:"use sqlite for the index" validate:"required"`
	Supersedes string `json:"supersedes,omitempty" example:"0001-use-postgres.md"`
}

func (r CreateADRRequest) answers() *adr.Answers {
	return &adr.Answers{
		Title:            r.Title,
		Supersedes:       r.Supersedes != "",
		SupersededTarget: r.Supersedes,
	}
}

// LinkRequest appends a relationship note to an existing ADR.
type LinkRequest struct {
	Note string `json:"note" example:"- superseded by: [Other](./0007-other.md)" validate:"required"`
}

// LinkResponse reports whether the record section was updated as well.
type LinkResponse struct {
	Filename     string `json:"filename" validate:"required"`
	RecordLinked bool   `json:"record_linked"`
}

// CreateADRResponse is returned after a successful creation.
type CreateADRResponse = adr.Result

// ADRItem is one row of a list response.
type ADRItem = index.ADRRow

// ADRDetail is the full ADR response type.
type ADRDetail = adrservice.Detail

// ADRListResponse wraps ADR listings.
type ADRListResponse struct {
	ADRs  []ADRItem `json:"adrs" validate:"required"`
	Total int       `json:"total" example:"12" validate:"required"`
}

// NextResponse carries the number the next ADR will receive.
type NextResponse struct {
	Number string `json:"number" example:"0013" validate:"required"`
}

// RecordResponse carries the raw record document.
type RecordResponse struct {
	Path    string `json:"path" example:"./adr/RECORD.md" validate:"required"`
	Content string `json:"content" validate:"required"`
}
