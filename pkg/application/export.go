package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/artem13815/jobboard/pkg/job"
)

const exportSheet = "Applicants"

var exportHeader = []any{"Name", "Email", "Phone", "Cover_Letter", "Resume"}

// Export is a ready-to-download workbook.
type Export struct {
	Filename string
	Data     []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (Export) ContentType() string { return xlsxContentType }

func (s *service) Export(ctx context.Context, c job.Caller, jobID string) (Export, error) {
	list, err := s.Applicants(ctx, c, jobID)
	if err != nil {
		return Export{}, err
	}
	title, company := "Job", "Company"
	if s.jobs != nil {
		l, err := s.jobs.Get(ctx, jobID)
		switch {
		case err == nil:
			title, company = l.JobTitle, l.CompanyName
		case !errors.Is(err, job.ErrNotFound):
			return Export{}, err
		}
	}
	data, err := BuildWorkbook(list)
	if err != nil {
		return Export{}, err
	}
	return Export{Filename: ExportFilename(title, company), Data: data}, nil
}

// ExportFilename is "<jobTitle>_<companyName>_Applicants.xlsx" with path
// separators removed.
func ExportFilename(jobTitle, companyName string) string {
	clean := strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\n", " ", "\r", "")
	return fmt.Sprintf("%s_%s_Applicants.xlsx", clean.Replace(jobTitle), clean.Replace(companyName))
}

// BuildWorkbook writes the applicants to a single "Applicants" sheet.
func BuildWorkbook(list []Applicant) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, a := range list {
		cover := a.CoverLetter
		if strings.TrimSpace(cover) == "" {
			cover = "Not Provided"
		}
		resumeCell := "Not Provided"
		if a.Resume.Provided() {
			resumeCell = "Provided"
		}
		row := []any{a.Name, a.Email, a.Phone, cover, resumeCell}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
