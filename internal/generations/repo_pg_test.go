package generations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	payload, _ := json.Marshal(map[string]string{"latex_code": `\documentclass{article}`})
	gen := Generation{
		ID:             "gen-1",
		UserID:         "user-1",
		Kind:           KindCV,
		JobDescription: "role",
		Payload:        payload,
		JobTitle:       "Engineer",
		Company:        "Acme",
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO generations").
		WithArgs(gen.ID, gen.UserID, gen.JobDescription, gen.Kind, []byte(payload), gen.JobTitle, gen.Company, gen.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), gen); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM generations").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "job_description", "kind", "payload", "job_title", "company", "created_at",
		}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserScansPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	payload := []byte(`{"latex_code":"\\documentclass{article}"}`)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "job_description", "kind", "payload", "job_title", "company", "created_at",
	}).AddRow("gen-1", "user-1", "role", KindCoverLetter, payload, "", "", time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM generations").
		WithArgs("user-1").
		WillReturnRows(rows)

	out, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 generation, got %d", len(out))
	}
	if out[0].LatexCode() != `\documentclass{article}` {
		t.Fatalf("unexpected latex code: %q", out[0].LatexCode())
	}
}
