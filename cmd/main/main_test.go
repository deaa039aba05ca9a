package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/lodexport/pkg/dictionary"
	"github.com/CTAG07/lodexport/pkg/lexicon"
)

const testDump = `{
  "events": [
    {"id": 1, "name": "Start", "annotation": "Initial", "suffix": "INIT"},
    {"id": 2, "name": "Reform", "annotation": "Reform of 1990", "suffix": "R90"}
  ],
  "words": [
    {"name": "mama", "type": "Prim", "event_start_id": 1,
     "definitions": [{"id": 1, "position": 1, "usage": "% ma", "body": "a «mother» of ..."}]},
    {"name": "pa", "type": "Prim", "event_start_id": 1, "event_end_id": 2,
     "definitions": [{"id": 2, "position": 1, "body": "«after»"}]}
  ],
  "keys": [
    {"word": "mother", "language": "en", "definition_ids": [1]},
    {"word": "after", "language": "en", "definition_ids": [2]}
  ],
  "settings": [{"db_release": "4.5"}]
}`

func TestLoadConfig_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Export.Style != "ultra" || config.Export.Language != "en" {
		t.Errorf("unexpected defaults: %+v", config.Export)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}
	var written Config
	if err = json.Unmarshal(data, &written); err != nil {
		t.Fatalf("default config file is not valid JSON: %v", err)
	}
	if written.App.DatabaseURL != DefaultAppConfig().DatabaseURL {
		t.Errorf("written database_url = %q", written.App.DatabaseURL)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"export_config": {"default_style": "normal", "default_language": "en", "export_dir": "from-file/"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("DEFAULT_LANGUAGE", "fr")
	t.Setenv("TEMPLATE_DIR", "/srv/templates")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Export.Style != "normal" {
		t.Errorf("style from file = %q, want normal", config.Export.Style)
	}
	if config.Export.Language != "fr" {
		t.Errorf("language = %q, want the environment value fr", config.Export.Language)
	}
	if config.Export.ExportDir != "from-file/" {
		t.Errorf("export dir = %q, want from-file/", config.Export.ExportDir)
	}
	if config.Templates.TemplateDir != "/srv/templates" {
		t.Errorf("template dir = %q", config.Templates.TemplateDir)
	}
	if config.Templates.KeyTag != "k" {
		t.Errorf("unset template options should keep their defaults, got %+v", config.Templates)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte(`{"app_config": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(badJSON); err == nil {
		t.Error("expected an error for malformed JSON")
	}

	t.Setenv("DEFAULT_STYLE", "baroque")
	if _, err := LoadConfig(filepath.Join(dir, "new.json")); !errors.Is(err, lexicon.ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "", "warn", "error"} {
		if _, err := parseLevel(level); err != nil {
			t.Errorf("parseLevel(%q) failed: %v", level, err)
		}
	}
	if _, err := parseLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestDataSource(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sqlite://", ":memory:"},
		{"sqlite:///lod.db", "lod.db"},
		{"sqlite:////var/lod.db", "/var/lod.db"},
		{"./lod.db?_busy_timeout=5", "./lod.db?_busy_timeout=5"},
	}
	for _, tt := range tests {
		if got := dataSource(tt.in); got != tt.want {
			t.Errorf("dataSource(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	f, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	jobs, err := f.jobs()
	if err != nil {
		t.Fatalf("jobs failed: %v", err)
	}
	want := dictionary.DefaultJobs()
	if len(jobs) != len(want) || jobs[0] != want[0] || jobs[1] != want[1] {
		t.Errorf("default jobs = %v, want %v", jobs, want)
	}

	f, err = parseFlags([]string{"--style", "normal,ultra", "--direction", "english", "--event", "3"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	jobs, err = f.jobs()
	if err != nil {
		t.Fatalf("jobs failed: %v", err)
	}
	if len(jobs) != 2 || jobs[1].Style != lexicon.StyleUltra || jobs[1].Direction != dictionary.DirectionEnglish {
		t.Errorf("unexpected jobs %v", jobs)
	}
	if f.eventID != 3 {
		t.Errorf("eventID = %d, want 3", f.eventID)
	}

	for _, args := range [][]string{
		{"--timestamp", "2024"},
		{"--import-only"},
		{"extra"},
	} {
		if _, err = parseFlags(args); err == nil {
			t.Errorf("parseFlags(%v) should fail", args)
		}
	}

	f, err = parseFlags([]string{"--style", "fancy"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if _, err = f.jobs(); !errors.Is(err, lexicon.ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestRun_ImportAndExport(t *testing.T) {
	dir := t.TempDir()
	exportDir := filepath.Join(dir, "export") + string(filepath.Separator)
	dumpPath := filepath.Join(dir, "dump.json")
	if err := os.WriteFile(dumpPath, []byte(testDump), 0644); err != nil {
		t.Fatalf("failed to write dump: %v", err)
	}

	t.Setenv("LOD_DATABASE_URL", "sqlite:///"+filepath.Join(dir, "lod.db"))
	t.Setenv("HTML_EXPORT_DIRECTORY_PATH_LOCAL", exportDir)
	t.Setenv("LOG_LEVEL", "error")

	args := []string{
		"--config", filepath.Join(dir, "config.json"),
		"--import", dumpPath,
		"--timestamp", "2401011200",
	}
	if err := run(args); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	loglan, err := os.ReadFile(exportDir + "L-to-E-4.5-2401011200_R90_n.html")
	if err != nil {
		t.Fatalf("Loglan document missing: %v", err)
	}
	// "pa" is retired at the latest event.
	if !strings.Contains(string(loglan), "mama") || strings.Contains(string(loglan), ">pa<") {
		t.Errorf("unexpected Loglan document:\n%s", loglan)
	}
	if !strings.Contains(string(loglan), "<k>mother</k>") {
		t.Errorf("Loglan document should mark keys:\n%s", loglan)
	}

	english, err := os.ReadFile(exportDir + "E-to-L-4.5-2401011200_R90_n.html")
	if err != nil {
		t.Fatalf("English document missing: %v", err)
	}
	if !strings.Contains(string(english), "after") || !strings.Contains(string(english), `<k class="key">mother</k>`) {
		t.Errorf("unexpected English document:\n%s", english)
	}

	// A second run against the same database exports a historical event.
	args = []string{
		"--config", filepath.Join(dir, "config.json"),
		"--event", "1",
		"--direction", "loglan",
		"--style", "ultra",
		"--timestamp", "2401011300",
	}
	if err = run(args); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	historical, err := os.ReadFile(exportDir + "L-to-E-4.5-2401011300_INIT_u.html")
	if err != nil {
		t.Fatalf("historical document missing: %v", err)
	}
	if !strings.Contains(string(historical), "<b>pa</b>") {
		t.Errorf("'pa' should be listed at event 1:\n%s", historical)
	}
}
