package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ayase-dev/otodoke/internal/repository"
)

type importService struct {
	repo repository.CatalogRepo
}

// NewImportService wires an ImportService over the given store.
func NewImportService(repo repository.CatalogRepo) ImportService {
	return &importService{repo: repo}
}

func (s *importService) ImportSchedules(ctx context.Context, productID string, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		// Tolerate a "code,schedule" header on the first line.
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "code") {
				continue
			}
		}
		if len(record) < 1 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		result.Lines++

		code := strings.TrimSpace(record[0])
		var numeric *int64
		if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
			n, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid schedule %q: %w", result.Lines, record[1], err)
			}
			numeric = &n
		}

		ok, err := s.repo.SetSKUSchedule(ctx, productID, code, numeric)
		if err != nil {
			return nil, fmt.Errorf("applying schedule for %s: %w", code, err)
		}
		if ok {
			result.Updated++
		} else {
			result.Missing = append(result.Missing, code)
		}
	}
	return result, nil
}
