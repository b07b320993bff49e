package repositories

import (
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
)

func TestStatementBuilder_DollarPlaceholders(t *testing.T) {
	sql, args, err := statementBuilder().Select("id").From("courses").
		Where(squirrel.Eq{"id": "M 160"}).
		Where(squirrel.Eq{"credits": 4}).
		ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}
	if !strings.Contains(sql, "id = $1") || !strings.Contains(sql, "credits = $2") {
		t.Errorf("sql = %q, want dollar placeholders", sql)
	}
	if len(args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(args))
	}
}

func TestNewRepositories(t *testing.T) {
	repos := NewRepositories(nil)
	if repos.CatalogRepository == nil || repos.StudentRepository == nil {
		t.Fatal("repositories not initialised")
	}
	if repos.CatalogRepository.WithTx(nil) == repos.CatalogRepository {
		t.Error("WithTx should return a new repository")
	}
}
