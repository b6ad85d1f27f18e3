package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	dom "productivity/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

func TestNormalizeCreateDefaultsTask(t *testing.T) {
	rec, err := NormalizeCreate(dom.Tasks, "u1", "id-1", map[string]any{"titulo": "Buy milk"}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "id-1", rec["id"])
	assert.Equal(t, "u1", rec["user_id"])
	assert.Equal(t, "Buy milk", rec["titulo"])
	assert.Equal(t, "pendente", rec["status"])
	assert.Equal(t, "media", rec["prioridade"])
	assert.Nil(t, rec["descricao"])
	assert.Nil(t, rec["subtarefas"])
	assert.Equal(t, fixedNow, rec["created_at"])
	assert.Equal(t, rec["created_at"], rec["updated_at"])
}

func TestNormalizeCreateHabitDefaults(t *testing.T) {
	rec, err := NormalizeCreate(dom.Habits, "u1", "h1", map[string]any{"nome": "Meditar"}, fixedNow)
	require.NoError(t, err)

	v, ok := rec["meta_diaria"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, int64(0), rec["streak_atual"])
	assert.Equal(t, true, rec["ativo"])
	assert.Equal(t, "diaria", rec["frequencia"])
}

func TestNormalizeCreateKeepsExplicitFalsyValues(t *testing.T) {
	body := map[string]any{
		"nome":         "Correr",
		"ativo":        false,
		"streak_atual": json.Number("0"),
		"meta_diaria":  json.Number("0"),
		"descricao":    "",
	}
	rec, err := NormalizeCreate(dom.Habits, "u1", "h1", body, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, false, rec["ativo"])
	assert.Equal(t, int64(0), rec["streak_atual"])
	assert.Equal(t, int64(0), rec["meta_diaria"])
	assert.Equal(t, "", rec["descricao"])
}

func TestNormalizeCreateExplicitNullBecomesNull(t *testing.T) {
	rec, err := NormalizeCreate(dom.Tasks, "u1", "t1", map[string]any{"titulo": "x", "status": nil}, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, rec["status"])
}

func TestNormalizeCreateMissingRequired(t *testing.T) {
	cases := map[string]map[string]any{
		"absent": {},
		"null":   {"titulo": nil},
		"blank":  {"titulo": "   "},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeCreate(dom.Tasks, "u1", "t1", body, fixedNow)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, CodeMissingField, verr.Code)
			assert.Equal(t, []string{"titulo"}, verr.Fields)
		})
	}
}

func TestNormalizeCreateReportsEveryMissingField(t *testing.T) {
	_, err := NormalizeCreate(dom.Lessons, "u1", "l1", map[string]any{}, fixedNow)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"curso_id", "titulo"}, verr.Fields)
	assert.Equal(t, "Campo obrigatório ausente: curso_id, titulo", verr.Error())
}

func TestNormalizeCreateIgnoresClientManagedKeys(t *testing.T) {
	body := map[string]any{
		"titulo":     "x",
		"id":         "client",
		"user_id":    "u2",
		"created_at": "2000-01-01T00:00:00Z",
		"bogus":      true,
	}
	rec, err := NormalizeCreate(dom.Notes, "u1", "server", body, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "server", rec["id"])
	assert.Equal(t, "u1", rec["user_id"])
	assert.Equal(t, fixedNow, rec["created_at"])
	assert.NotContains(t, rec, "bogus")
}

func TestNormalizeCreateTypeChecks(t *testing.T) {
	cases := []struct {
		res   dom.Resource
		body  map[string]any
		field string
	}{
		{dom.Tasks, map[string]any{"titulo": 5}, "titulo"},
		{dom.Habits, map[string]any{"nome": "x", "streak_atual": json.Number("1.5")}, "streak_atual"},
		{dom.Habits, map[string]any{"nome": "x", "ativo": "yes"}, "ativo"},
		{dom.Tasks, map[string]any{"titulo": "x", "data_vencimento": "tomorrow"}, "data_vencimento"},
		{dom.HabitLogs, map[string]any{"habito_id": "h", "data": "2026-01-01", "quantidade": "a lot"}, "quantidade"},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			_, err := NormalizeCreate(tc.res, "u1", "id", tc.body, fixedNow)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, CodeInvalidField, verr.Code)
			assert.Equal(t, []string{tc.field}, verr.Fields)
		})
	}
}

func TestNormalizeCreateRejectsIntegersOutOfRange(t *testing.T) {
	for _, raw := range []any{json.Number("1e19"), json.Number("-1e19"), json.Number("9223372036854775808"), 1e19, -1e19} {
		_, err := NormalizeCreate(dom.Habits, "u1", "id", map[string]any{"nome": "x", "streak_atual": raw}, fixedNow)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "%v: got %v", raw, err)
		assert.Equal(t, CodeInvalidField, verr.Code)
		assert.Equal(t, []string{"streak_atual"}, verr.Fields)
	}
}

func TestNormalizeCreateAcceptsWholeFloatIntegers(t *testing.T) {
	rec, err := NormalizeCreate(dom.Habits, "u1", "id", map[string]any{"nome": "x", "streak_atual": json.Number("3e2")}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(300), rec["streak_atual"])

	rec, err = NormalizeCreate(dom.Habits, "u1", "id", map[string]any{"nome": "x", "streak_atual": json.Number("-9223372036854775808")}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), rec["streak_atual"])
}

func TestNormalizeCreateParsesDates(t *testing.T) {
	want := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-02-19", "2026-02-19T15:04:05Z", "2026-02-19T15:04:05"} {
		rec, err := NormalizeCreate(dom.Tasks, "u1", "t1", map[string]any{"titulo": "x", "data_vencimento": in}, fixedNow)
		require.NoError(t, err, in)
		assert.Equal(t, want, rec["data_vencimento"], in)
	}

	rec, err := NormalizeCreate(dom.Tasks, "u1", "t1", map[string]any{"titulo": "x", "data_vencimento": ""}, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, rec["data_vencimento"])
}

func TestNormalizeCreateKeepsJSONStructure(t *testing.T) {
	subtasks := []any{map[string]any{"titulo": "a", "feito": true}}
	rec, err := NormalizeCreate(dom.Tasks, "u1", "t1", map[string]any{"titulo": "x", "subtarefas": subtasks}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, subtasks, rec["subtarefas"])
}

func TestNormalizeUpdateStripsWriteOnceKeys(t *testing.T) {
	body := map[string]any{
		"id":         "evil",
		"user_id":    "u2",
		"created_at": "2000-01-01T00:00:00Z",
		"updated_at": "2000-01-01T00:00:00Z",
		"status":     "concluida",
	}
	patch, err := NormalizeUpdate(dom.Tasks, body, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dom.Record{"status": "concluida", "updated_at": fixedNow}, patch)
}

func TestNormalizeUpdateIsPartial(t *testing.T) {
	patch, err := NormalizeUpdate(dom.Habits, map[string]any{"ativo": false, "unknown": 1}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, dom.Record{"ativo": false, "updated_at": fixedNow}, patch)
}

func TestNormalizeUpdateRejectsBlankRequired(t *testing.T) {
	_, err := NormalizeUpdate(dom.Habits, map[string]any{"nome": ""}, fixedNow)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CodeInvalidField, verr.Code)
}

func TestNormalizeUpdateAllowsNullingOptional(t *testing.T) {
	patch, err := NormalizeUpdate(dom.Habits, map[string]any{"meta_diaria": nil}, fixedNow)
	require.NoError(t, err)
	v, ok := patch["meta_diaria"]
	assert.True(t, ok)
	assert.Nil(t, v)
}
