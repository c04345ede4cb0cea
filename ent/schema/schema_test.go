package schema

import (
	"path/filepath"
	"sort"
	"testing"

	"entgo.io/ent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nanoclass/internal/store"
)

func fieldNames(mixins []ent.Mixin, fields []ent.Field) []string {
	var names []string
	for _, m := range mixins {
		for _, f := range m.Fields() {
			names = append(names, f.Descriptor().Name)
		}
	}
	for _, f := range fields {
		names = append(names, f.Descriptor().Name)
	}
	sort.Strings(names)
	return names
}

// TestSchemasMatchStoreTables keeps the schema definitions in step with the
// tables the store creates.
func TestSchemasMatchStoreTables(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer s.Close()

	columns := func(table string) []string {
		rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
		require.NoError(t, err)
		defer rows.Close()

		var out []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			if name != "id" {
				out = append(out, name)
			}
		}
		require.NoError(t, rows.Err())
		sort.Strings(out)
		return out
	}

	tests := []struct {
		table string
		want  []string
	}{
		{"lesson_events", fieldNames(LessonEvent{}.Mixin(), LessonEvent{}.Fields())},
		{"llm_request_events", fieldNames(LLMRequestEvent{}.Mixin(), LLMRequestEvent{}.Fields())},
		{"settings", fieldNames(nil, Setting{}.Fields())},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, columns(tt.table))
		})
	}
}
