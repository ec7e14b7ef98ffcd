package synth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"vscch/internal/profile"
)

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return m
}

func synthFor(t *testing.T, ws string, mut func(*profile.Profile)) Artifact {
	t.Helper()
	p := profile.Default()
	p.WorkspacePath = ws
	if mut != nil {
		mut(&p)
	}
	a, err := Synthesize(p, target("12.2.0"), Latest)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestGenerateWritesWorkspace(t *testing.T) {
	ws := t.TempDir()
	vs := filepath.Join(ws, ".vscode")
	if err := os.MkdirAll(vs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(vs, "settings.json"), []byte(`{"editor.fontSize": 16}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := synthFor(t, ws, func(p *profile.Profile) { p.DbgStyle = profile.DebugExternal })
	res, err := Generate(a, GenerateOptions{Not64Bit: true, CompilerVersion: "12.2.0"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Files) != 6 || res.TestFile != filepath.Join(ws, "helloworld.cpp") {
		t.Fatalf("result: %+v", res)
	}

	settings := readJSON(t, filepath.Join(vs, "settings.json"))
	if settings["editor.fontSize"] != float64(16) || settings["files.defaultLanguage"] != "cpp" {
		t.Fatalf("settings not merged: %v", settings)
	}
	props := readJSON(t, filepath.Join(vs, "c_cpp_properties.json"))
	cfg := props["configurations"].([]any)[0].(map[string]any)
	if cfg["intelliSenseMode"] != "gcc-x86" || cfg["cppStandard"] != "c++23" || cfg["cStandard"] != "c18" {
		t.Fatalf("properties: %v", cfg)
	}
	launch := readJSON(t, filepath.Join(vs, "launch.json"))
	lc := launch["configurations"].([]any)[0].(map[string]any)
	if lc["externalConsole"] != true || lc["preLaunchTask"] != buildTaskLabel {
		t.Fatalf("launch: %v", lc)
	}
	tasks := readJSON(t, filepath.Join(vs, "tasks.json"))
	first := tasks["tasks"].([]any)
	if len(first) < 2 {
		t.Fatalf("tasks: %v", tasks)
	}
	opts := readJSON(t, filepath.Join(vs, OptionsFile))
	if _, ok := opts["ShouldInstallL10n"]; !ok {
		t.Fatalf("options file: %v", opts)
	}
}

func TestGenerateTestFileModes(t *testing.T) {
	ws := t.TempDir()
	if err := os.WriteFile(filepath.Join(ws, "main.c"), []byte("int main(){}"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := Generate(synthFor(t, ws, nil), GenerateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.TestFile != "" {
		t.Fatalf("auto mode wrote %s into a workspace with sources", res.TestFile)
	}

	res, err = Generate(synthFor(t, ws, func(p *profile.Profile) {
		p.GenTest = profile.TestFileAlways
		p.Language = profile.C
	}), GenerateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.TestFile != filepath.Join(ws, "helloworld.c") {
		t.Fatalf("always mode: %+v", res)
	}

	empty := t.TempDir()
	res, err = Generate(synthFor(t, empty, func(p *profile.Profile) { p.GenTest = profile.TestFileNever }), GenerateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.TestFile != "" {
		t.Fatalf("never mode wrote %s", res.TestFile)
	}
}
