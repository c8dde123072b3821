// Package importer turns a tabular candidate upload into Candidate-shaped
// records plus a per-row error list. The boundary treats import as a pure
// data transform; persistence is the caller's job.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devsync89/jobportal/internal/domain/candidate"
)

type RowError struct {
	Row     int    `json:"row"` // 1-indexed data row, header excluded
	Message string `json:"message"`
}

type Result struct {
	Candidates []candidate.CreateCandidateRequest `json:"candidates"`
	Errors     []RowError                         `json:"errors"`
}

// expected header columns, matching the original upload spreadsheet
var columns = []string{"name", "email", "phone", "age", "experience_years", "previous_experience"}

// ReadCSV parses a candidate CSV. A bad row is reported and skipped; it never
// aborts the rest of the file.
func ReadCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated per row below
	cr.TrimLeadingSpace = true

	header, err := cr.Read()

	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))

	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, required := range columns[:5] {
		if _, ok := idx[required]; !ok {
			return Result{}, fmt.Errorf("missing required column %q", required)
		}
	}

	var res Result
	row := 0

	for {
		record, err := cr.Read()

		if err == io.EOF {
			break
		}

		row++

		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: row, Message: err.Error()})
			continue
		}

		req, err := rowToRequest(record, idx)

		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: row, Message: err.Error()})
			continue
		}

		res.Candidates = append(res.Candidates, req)
	}

	return res, nil
}

func rowToRequest(record []string, idx map[string]int) (candidate.CreateCandidateRequest, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	email := field("email")
	phone := field("phone")

	if name == "" || email == "" || phone == "" {
		return candidate.CreateCandidateRequest{}, fmt.Errorf("name, email and phone are required")
	}

	if !strings.Contains(email, "@") {
		return candidate.CreateCandidateRequest{}, fmt.Errorf("invalid email %q", email)
	}

	age, err := strconv.Atoi(field("age"))

	if err != nil {
		return candidate.CreateCandidateRequest{}, fmt.Errorf("invalid age %q", field("age"))
	}

	exp := 0

	if v := field("experience_years"); v != "" {
		exp, err = strconv.Atoi(v)

		if err != nil {
			return candidate.CreateCandidateRequest{}, fmt.Errorf("invalid experience_years %q", v)
		}
	}

	return candidate.CreateCandidateRequest{
		Name:               name,
		Email:              email,
		Phone:              phone,
		Age:                age,
		ExperienceYears:    exp,
		PreviousExperience: field("previous_experience"),
	}, nil
}
