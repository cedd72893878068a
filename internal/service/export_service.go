package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/medtrain/progress-tracker-api/internal/models"
	appErrors "github.com/medtrain/progress-tracker-api/pkg/errors"
	"github.com/medtrain/progress-tracker-api/pkg/export"
)

type exportStore interface {
	List() []models.Student
}

// ExportDocument is a rendered roster download.
type ExportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the classified roster as CSV or PDF.
type ExportService struct {
	store exportStore
	csv   *export.CSVExporter
	pdf   *export.PDFExporter
	now   func() time.Time
}

// NewExportService constructs the service.
func NewExportService(store exportStore) *ExportService {
	return &ExportService{
		store: store,
		csv:   export.NewCSVExporter(),
		pdf:   export.NewPDFExporter(),
		now:   time.Now,
	}
}

var exportHeaders = []string{"Name", "Email", "Phone", "Chapters", "Marks", "Max Marks", "Skipped", "OCS1", "OCS2", "OCS3", "Status"}

// Render produces the roster download in the requested format.
func (s *ExportService) Render(format string) (*ExportDocument, error) {
	students := s.store.List()
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "the roster is empty")
	}

	data := export.Dataset{Headers: exportHeaders, Rows: make([][]string, 0, len(students))}
	for _, st := range students {
		ocs3 := ""
		if st.OCS3 != nil {
			ocs3 = *st.OCS3
		}
		data.Rows = append(data.Rows, []string{
			st.Name,
			st.Email,
			st.Phone,
			fmt.Sprintf("%d/%d", st.CompletedChapters, st.TotalChapters),
			strconv.Itoa(st.Marks),
			strconv.Itoa(st.MaxMarks),
			strconv.Itoa(st.Skipped),
			st.OCS1,
			st.OCS2,
			ocs3,
			string(st.Status),
		})
	}

	stamp := s.now().Format("2006-01-02")
	switch format {
	case "csv", "":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportDocument{Content: content, ContentType: "text/csv", Filename: fmt.Sprintf("student-progress-%s.csv", stamp)}, nil
	case "pdf":
		content, err := s.pdf.Render(data, "Student Progress Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportDocument{Content: content, ContentType: "application/pdf", Filename: fmt.Sprintf("student-progress-%s.pdf", stamp)}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
