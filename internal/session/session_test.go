package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vscch/internal/compiler"
	"vscch/internal/host"
	"vscch/internal/probe"
	"vscch/internal/profile"
	"vscch/internal/router"
	"vscch/internal/synth"
	appver "vscch/internal/version"
)

type fakeProber struct {
	editor    probe.Editor
	compilers []compiler.Info
	adhoc     map[string]compiler.Info
	verified  []string
}

func (f *fakeProber) ProbeEditor(context.Context) probe.Editor { return f.editor }

func (f *fakeProber) ProbeCompilers(context.Context) []compiler.Info {
	return append([]compiler.Info(nil), f.compilers...)
}

func (f *fakeProber) VerifyEditor(path string) bool {
	return f.editor.Resolved && probe.SamePath(path, f.editor.Path)
}

func (f *fakeProber) VerifyCompiler(_ context.Context, path string) probe.Verification {
	f.verified = append(f.verified, path)
	if strings.ContainsRune(path, os.PathListSeparator) {
		return probe.Verification{Reason: probe.ReasonSemicolon}
	}
	if c, ok := f.adhoc[probe.InstallDir(path)]; ok {
		return probe.Verification{Valid: true, Info: &c}
	}
	return probe.Verification{Reason: probe.ReasonNotFound}
}

type memStore struct {
	p     profile.Profile
	found bool
	err   error
	saves int
}

func (m *memStore) Load() (profile.Profile, bool, error) { return m.p, m.found, m.err }

func (m *memStore) Save(p profile.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.p, m.found = p, true
	m.saves++
	return nil
}

type fakePicker struct {
	dir string
	err error
	got string
}

func (f *fakePicker) PickFolder(_ context.Context, init string) (string, error) {
	f.got = init
	return f.dir, f.err
}

type recordActions struct{ calls int }

func (r *recordActions) Apply(context.Context, synth.Artifact, synth.Result) error {
	r.calls++
	return nil
}

func newTestSession(t *testing.T) (*Session, *router.Router, *fakeProber, *memStore) {
	t.Helper()
	base := t.TempDir()
	fp := &fakeProber{
		editor: probe.Editor{Path: filepath.Join(base, "code"), Resolved: true},
		compilers: []compiler.Info{
			{Path: filepath.Join(base, "mingw64"), VersionNumber: "8.1.0", PackageString: "x86_64-posix-seh-rev0"},
		},
		adhoc: map[string]compiler.Info{
			filepath.Join(base, "tdm"): {Path: filepath.Join(base, "tdm"), VersionNumber: "10.3.0", Not64Bit: true},
		},
	}
	st := &memStore{}
	s := New(context.Background(), Options{Prober: fp, Store: st, Picker: &fakePicker{dir: "/picked"}, Actions: &recordActions{}})
	r := router.New()
	s.Register(r)
	return s, r, fp, st
}

func finishBody(t *testing.T, cfg map[string]any) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{"success": true, "config": cfg})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRegisterOperations(t *testing.T) {
	_, r, _, _ := newTestSession(t)
	want := []string{OpGetEnvironment, OpGetFolder, OpVerifyEditor, OpVerifyCompiler, OpSaveProfile, OpLoadProfile, OpFinish}
	got := r.Operations()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v", got)
	}
}

func TestGetEnvironment(t *testing.T) {
	s, r, fp, _ := newTestSession(t)
	body, err := r.Dispatch(context.Background(), OpGetEnvironment, "")
	if err != nil {
		t.Fatal(err)
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if env["VscodePath"] != filepath.Join(fp.editor.Path, host.EditorLauncher) || env["VscodeStatus"] != probe.EditorResolved {
		t.Fatalf("editor fields: %s", body)
	}
	if env["Version"] != appver.AppVersion {
		t.Fatalf("version: %s", body)
	}
	if cs := env["Compilers"].([]any); len(cs) != 1 {
		t.Fatalf("compilers: %s", body)
	}
	if s.State() != Collecting {
		t.Fatalf("state %s", s.State())
	}

	s.env.Editor = probe.Editor{}
	body, _ = r.Dispatch(context.Background(), OpGetEnvironment, "")
	if !strings.Contains(body, `"VscodePath":null`) || !strings.Contains(body, `"unresolved"`) {
		t.Fatalf("unresolved editor: %s", body)
	}
}

func TestVerifyHandlers(t *testing.T) {
	_, r, fp, _ := newTestSession(t)
	ctx := context.Background()
	if got, _ := r.Dispatch(ctx, OpVerifyEditor, fp.editor.Path); got != probe.EditorValid {
		t.Fatalf("editor: %s", got)
	}
	if got, _ := r.Dispatch(ctx, OpVerifyEditor, "/nowhere"); got != probe.EditorInvalid {
		t.Fatalf("editor: %s", got)
	}
	got, err := r.Dispatch(ctx, OpVerifyCompiler, "a"+string(os.PathListSeparator)+"b")
	if err != nil || got != `{"valid":false,"reason":"semicolon"}` {
		t.Fatalf("compiler: %s %v", got, err)
	}
}

func TestGetFolder(t *testing.T) {
	s, r, _, _ := newTestSession(t)
	got, err := r.Dispatch(context.Background(), OpGetFolder, "/start")
	if err != nil || got != "/picked" {
		t.Fatalf("got %q %v", got, err)
	}
	if s.opts.Picker.(*fakePicker).got != "/start" {
		t.Fatal("initial dir not forwarded")
	}
	s.opts.Picker = &fakePicker{err: errors.New("no display")}
	if got, err := r.Dispatch(context.Background(), OpGetFolder, ""); err != nil || got != "" {
		t.Fatalf("picker failure: %q %v", got, err)
	}
}

func TestProfileHandlers(t *testing.T) {
	_, r, _, st := newTestSession(t)
	ctx := context.Background()
	if got, err := r.Dispatch(ctx, OpLoadProfile, ""); err != nil || got != "null" {
		t.Fatalf("empty load: %q %v", got, err)
	}
	if got, err := r.Dispatch(ctx, OpSaveProfile, `{"workspacePath":"/w","wall":true}`); err != nil || got != "ok" {
		t.Fatalf("save: %q %v", got, err)
	}
	if !st.p.Wall || !st.p.SetEnv || st.p.WorkspacePath != "/w" {
		t.Fatalf("saved profile lost defaults: %+v", st.p)
	}
	got, err := r.Dispatch(ctx, OpLoadProfile, "")
	if err != nil || !strings.Contains(got, `"workspacePath":"/w"`) {
		t.Fatalf("load: %q %v", got, err)
	}
	if _, err := r.Dispatch(ctx, OpSaveProfile, `{"wall":`); err == nil {
		t.Fatal("expected decode error")
	}
	st.err = errors.New("disk full")
	if _, err := r.Dispatch(ctx, OpSaveProfile, `{}`); err == nil {
		t.Fatal("expected persistence error")
	}
}

func TestFinishSynthesizesOnce(t *testing.T) {
	s, r, fp, st := newTestSession(t)
	ws := t.TempDir()
	body := finishBody(t, map[string]any{
		"workspacePath": ws,
		"wall":          true,
		"schemaVersion": "3.0.1",
		"compilerPath":  filepath.Join(fp.compilers[0].Path, "bin"),
	})
	got, err := r.Dispatch(context.Background(), OpFinish, body)
	if err != nil || got != "ok" {
		t.Fatalf("finish: %q %v", got, err)
	}
	if s.State() != Synthesized {
		t.Fatalf("state %s", s.State())
	}
	a, res, ok := s.Result()
	if !ok || a.Schema() != synth.SchemaV300 {
		t.Fatalf("result: %v %v", a, ok)
	}
	if want := []string{"-std=c++17", "-Wall"}; strings.Join(a.Options().CompileArgs, " ") != strings.Join(want, " ") {
		t.Fatalf("args %v", a.Options().CompileArgs)
	}
	if _, err := os.Stat(filepath.Join(ws, ".vscode", "tasks.json")); err != nil {
		t.Fatalf("tasks.json: %v", err)
	}
	if len(res.Files) == 0 || st.saves != 1 {
		t.Fatalf("files=%v saves=%d", res.Files, st.saves)
	}
	if len(fp.verified) != 0 {
		t.Fatalf("known compiler was re-verified: %v", fp.verified)
	}

	if _, err := r.Dispatch(context.Background(), OpFinish, body); !errors.Is(err, router.ErrClosed) {
		t.Fatalf("second finish: %v", err)
	}
	if err := s.Finish(context.Background(), FinishRequest{Success: true}); !errors.Is(err, ErrFinalized) {
		t.Fatalf("direct second finish: %v", err)
	}

	if err := s.RunPostActions(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.opts.Actions.(*recordActions).calls != 1 {
		t.Fatal("post actions not run")
	}
}

func TestFinishAdHocCompiler(t *testing.T) {
	s, r, fp, _ := newTestSession(t)
	ws := t.TempDir()
	tdm := ""
	for k := range fp.adhoc {
		tdm = k
	}
	got, _ := r.Dispatch(context.Background(), OpFinish, finishBody(t, map[string]any{
		"workspacePath": ws,
		"compilerPath":  tdm,
	}))
	if got != "ok" {
		t.Fatalf("finish: %s", got)
	}
	env := s.Environment()
	if len(env.Compilers) != 2 || env.Compilers[1].Path != tdm {
		t.Fatalf("environment not supplemented: %+v", env.Compilers)
	}
	a, _, _ := s.Result()
	if a.Options().LanguageStandard != "c++20" {
		t.Fatalf("standard %s", a.Options().LanguageStandard)
	}
}

func TestFinishAbort(t *testing.T) {
	s, r, _, _ := newTestSession(t)
	got, err := r.Dispatch(context.Background(), OpFinish, `{"success":false}`)
	if err != nil || got != "ok" {
		t.Fatalf("abort: %q %v", got, err)
	}
	if s.State() != Aborted {
		t.Fatalf("state %s", s.State())
	}
	if _, _, ok := s.Result(); ok {
		t.Fatal("aborted session has a result")
	}
	if err := s.RunPostActions(context.Background()); err != nil || s.opts.Actions.(*recordActions).calls != 0 {
		t.Fatal("post actions ran for aborted session")
	}
}

func TestFinishErrorsAreResponses(t *testing.T) {
	cases := map[string]string{
		"malformed":       `{"success":`,
		"missing config":  `{"success":true}`,
		"no workspace":    `{"success":true,"config":{}}`,
		"bad compiler":    `{"success":true,"config":{"workspacePath":"/w","compilerPath":"/nope"}}`,
		"missing success": `{"config":{}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s, r, _, _ := newTestSession(t)
			got, err := r.Dispatch(context.Background(), OpFinish, body)
			if err != nil {
				t.Fatalf("router error: %v", err)
			}
			if got == "ok" || got == "" {
				t.Fatalf("expected error text, got %q", got)
			}
			if s.State() != Aborted {
				t.Fatalf("state %s", s.State())
			}
		})
	}
}

func TestFinishWithoutEditor(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	s.env.Editor = probe.Editor{}
	err := s.Finish(context.Background(), FinishRequest{Success: true, Config: &FinishConfig{Profile: profile.Default()}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseFinishRequestKeepsDefaults(t *testing.T) {
	req, err := ParseFinishRequest(`{"success":true,"config":{"workspacePath":"/w","vscodePath":"/c"}}`)
	if err != nil {
		t.Fatal(err)
	}
	if req.Config == nil || !req.Config.SetEnv || !req.Config.OpenVscode || req.Config.VscodePath != "/c" {
		t.Fatalf("got %+v", req.Config)
	}
}
