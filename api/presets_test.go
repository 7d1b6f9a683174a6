package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"cover-photo/preset"
)

func TestGetPresetsDefault(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/presets", "", nil)
	expectStatus(t, resp, http.StatusOK)

	var table preset.Table
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		t.Fatal(err)
	}
	if len(table.Breakpoints) != 6 || table.Breakpoints[0].Name != "mobile" {
		t.Fatalf("unexpected table %+v", table)
	}
}

func TestPutPresetsReselectsUneditedSessions(t *testing.T) {
	env := newTestEnv(t)
	fresh := env.create(t, 500)
	edited := env.create(t, 500)
	resp := env.do(t, http.MethodPatch, "/api/sessions/"+edited.ID+"/config", "application/json",
		strings.NewReader(`{"title":"Keep me"}`))
	expectStatus(t, resp, http.StatusOK)

	table := preset.Default()
	table.Breakpoints[0].Config.Title = "Fresh title"
	body, _ := json.Marshal(table)
	resp = env.do(t, http.MethodPut, "/api/presets", "application/json", bytes.NewReader(body))
	expectStatus(t, resp, http.StatusOK)

	s, _ := env.mgr.Get(fresh.ID)
	if s.Config().Title != "Fresh title" {
		t.Fatalf("unedited session not reselected: %q", s.Config().Title)
	}
	s, _ = env.mgr.Get(edited.ID)
	if s.Config().Title != "Keep me" {
		t.Fatalf("edited session overwritten: %q", s.Config().Title)
	}
	if env.presets.Get().Breakpoints[0].Config.Title != "Fresh title" {
		t.Fatal("table not saved")
	}
}

func TestPutPresetsInvalid(t *testing.T) {
	env := newTestEnv(t)
	for _, body := range []string{"nope", `{"breakpoints":[]}`} {
		resp := env.do(t, http.MethodPut, "/api/presets", "application/json", strings.NewReader(body))
		expectStatus(t, resp, http.StatusBadRequest)
	}
}
