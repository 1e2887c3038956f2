package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gradebench/webapp/internal/entity"
)

// ImportResult summarizes a bootstrap run.
type ImportResult struct {
	Created int
	Skipped int
	Failed  int
}

// ImportCSV reads bootstrap accounts from a CSV file with a
// first_name,last_name,email,password header. Rows are processed
// synchronously in file order so the caller knows the import is complete
// when this returns. A row whose email already exists is skipped; a row
// that fails is logged and counted without aborting the batch.
func (s *accountService) ImportCSV(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open users csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"first_name", "last_name", "email", "password"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("users csv missing column %q", required)
		}
	}

	result := &ImportResult{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("skipping malformed csv row: %v", err)
			result.Failed++
			continue
		}

		if err := s.importRow(ctx, record, col, result); err != nil {
			log.Printf("error importing user row: %v", err)
			result.Failed++
		}
	}

	return result, nil
}

func (s *accountService) importRow(ctx context.Context, record []string, col map[string]int, result *ImportResult) error {
	email := strings.TrimSpace(record[col["email"]])
	if email == "" {
		return fmt.Errorf("row has empty email")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		result.Skipped++
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(record[col["password"]]), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account := &entity.Account{
		FirstName:    strings.TrimSpace(record[col["first_name"]]),
		LastName:     strings.TrimSpace(record[col["last_name"]]),
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return err
	}

	result.Created++
	return nil
}
