package specification

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type documentRow struct {
	ID uuid.UUID
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db
}

func TestSpecificationsBuildExpectedConditions(t *testing.T) {
	id := uuid.New()

	cases := []struct {
		name     string
		spec     Specification
		wantSQL  string
		wantVars []interface{}
	}{
		{"ByID", ByID{ID: id}, "id = ?", []interface{}{id}},
		{"ByUsername", ByUsername{Username: "alice"}, "username = ?", []interface{}{"alice"}},
		{"UserOwnedBy", UserOwnedBy{UserID: id}, "user_id = ?", []interface{}{id}},
		{"ByChatSessionID", ByChatSessionID{ChatSessionID: id}, "chat_session_id = ?", []interface{}{id}},
		{"ByKnowledgeBaseID", ByKnowledgeBaseID{KnowledgeBaseID: id}, "knowledge_base_id = ?", []interface{}{id}},
		{"ByDocumentID", ByDocumentID{DocumentID: id}, "document_id = ?", []interface{}{id}},
		{"ByStatus", ByStatus{Status: "indexing"}, "status = ?", []interface{}{"indexing"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			var rows []documentRow
			stmt := tt.spec.Apply(dryRunDB(t)).Find(&rows).Statement

			if got := stmt.SQL.String(); !strings.Contains(got, tt.wantSQL) {
				t.Errorf("Apply() SQL = %q, want it to contain %q", got, tt.wantSQL)
			}
			if !reflect.DeepEqual(stmt.Vars, tt.wantVars) {
				t.Errorf("Apply() vars = %v, want %v", stmt.Vars, tt.wantVars)
			}
		})
	}
}

func TestOrderBySpecification(t *testing.T) {
	cases := []struct {
		name string
		spec OrderBy
		want string
	}{
		{"ascending by default", OrderBy{Field: "created_at"}, "ORDER BY created_at ASC"},
		{"descending", OrderBy{Field: "updated_at", Desc: true}, "ORDER BY updated_at DESC"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			var rows []documentRow
			stmt := tt.spec.Apply(dryRunDB(t)).Find(&rows).Statement

			if got := stmt.SQL.String(); !strings.Contains(got, tt.want) {
				t.Errorf("Apply() SQL = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
