// Package session owns one configuration run: the environment found at
// startup, the request handlers bound into the router and the finish step
// that writes the workspace.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"vscch/internal/compiler"
	"vscch/internal/probe"
	"vscch/internal/profile"
	"vscch/internal/synth"
	"vscch/internal/system"
	appver "vscch/internal/version"
)

// ErrFinalized is returned when finish is requested a second time.
var ErrFinalized = errors.New("session already finalized")

// State of the configuration run.
type State int

const (
	Collecting State = iota
	Finalizing
	Synthesized
	Aborted
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Finalizing:
		return "finalizing"
	case Synthesized:
		return "synthesized"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prober is the discovery and verification surface the session needs.
type Prober interface {
	ProbeEditor(ctx context.Context) probe.Editor
	ProbeCompilers(ctx context.Context) []compiler.Info
	VerifyEditor(path string) bool
	VerifyCompiler(ctx context.Context, path string) probe.Verification
}

// ProfileStore persists the user's choices.
type ProfileStore interface {
	Load() (profile.Profile, bool, error)
	Save(profile.Profile) error
}

// FolderPicker asks the user for a directory. An empty path means cancel.
type FolderPicker interface {
	PickFolder(ctx context.Context, initDir string) (string, error)
}

// Actions runs the host side effects after the workspace is written.
type Actions interface {
	Apply(ctx context.Context, a synth.Artifact, res synth.Result) error
}

type Options struct {
	Prober  Prober
	Store   ProfileStore
	Picker  FolderPicker
	Actions Actions
	GBK     bool
}

// FinishConfig is the profile plus the choices made on the last page.
type FinishConfig struct {
	profile.Profile
	SchemaVersion string `json:"schemaVersion,omitempty"`
	VscodePath    string `json:"vscodePath,omitempty"`
	CompilerPath  string `json:"compilerPath,omitempty"`
}

// FinishRequest ends the session. Config is required when Success is true.
type FinishRequest struct {
	Success bool          `json:"success"`
	Config  *FinishConfig `json:"config,omitempty"`
}

type Session struct {
	opts Options

	mu       sync.Mutex
	env      Environment
	state    State
	artifact synth.Artifact
	result   synth.Result
}

// New probes the host once and returns a session in the collecting state.
func New(ctx context.Context, opts Options) *Session {
	s := &Session{opts: opts}
	s.env = Environment{
		Editor:    opts.Prober.ProbeEditor(ctx),
		Compilers: opts.Prober.ProbeCompilers(ctx),
		Version:   appver.AppVersion,
		GBK:       opts.GBK,
	}
	system.Logger.Info("environment probed",
		"editor", s.env.Editor.Status(), "compilers", len(s.env.Compilers), "gbk", s.env.GBK)
	return s
}

// Environment returns a copy of the resolved environment.
func (s *Session) Environment() Environment {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.env
	e.Compilers = append([]compiler.Info(nil), s.env.Compilers...)
	return e
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns what finish wrote. ok is false unless the session reached
// the synthesized state.
func (s *Session) Result() (synth.Artifact, synth.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact, s.result, s.state == Synthesized
}

// Finish moves the session out of collecting. A failed request leaves the
// session aborted with nothing written.
func (s *Session) Finish(ctx context.Context, req FinishRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Collecting {
		return ErrFinalized
	}
	if !req.Success {
		s.state = Aborted
		system.Logger.Info("configuration aborted")
		return nil
	}
	s.state = Finalizing
	if err := s.finalize(ctx, req.Config); err != nil {
		s.state = Aborted
		return err
	}
	s.state = Synthesized
	return nil
}

func (s *Session) abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Collecting {
		s.state = Aborted
	}
}

func (s *Session) finalize(ctx context.Context, cfg *FinishConfig) error {
	if cfg == nil {
		return errors.New("finish: missing config")
	}
	editor, err := s.resolveEditor(cfg.VscodePath)
	if err != nil {
		return err
	}
	comp, err := s.resolveCompiler(ctx, cfg.CompilerPath)
	if err != nil {
		return err
	}
	t := synth.Target{EditorDir: editor, Compiler: comp, GBK: s.env.GBK}
	a, err := synth.Synthesize(cfg.Profile, t, synth.ParseSchema(cfg.SchemaVersion))
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	if s.opts.Store != nil {
		if err := s.opts.Store.Save(cfg.Profile); err != nil {
			system.Logger.Warn("profile not saved", "err", err)
		}
	}
	gopts := synth.GenerateOptions{}
	if comp != nil {
		gopts.Not64Bit = comp.Not64Bit
		gopts.CompilerVersion = comp.VersionNumber
	}
	res, err := synth.Generate(a, gopts)
	if err != nil {
		return fmt.Errorf("generate workspace: %w", err)
	}
	s.artifact, s.result = a, res
	system.Logger.Info("workspace configured",
		"workspace", a.Options().WorkspacePath, "schema", a.Schema(), "standard", a.Options().LanguageStandard)
	return nil
}

func (s *Session) resolveEditor(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		if !s.opts.Prober.VerifyEditor(path) {
			return "", fmt.Errorf("editor not found at %s", path)
		}
		return probe.InstallDir(path), nil
	}
	if !s.env.Editor.Resolved {
		return "", synth.ErrNoEditor
	}
	return s.env.Editor.Path, nil
}

// resolveCompiler prefers a discovered entry and otherwise verifies the
// path, adding it to the environment.
func (s *Session) resolveCompiler(ctx context.Context, path string) (*compiler.Info, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if c, ok := s.env.FindCompiler(path); ok {
		return &c, nil
	}
	v := s.opts.Prober.VerifyCompiler(ctx, path)
	if !v.Valid {
		return nil, fmt.Errorf("compiler at %s rejected: %s", path, v.Reason)
	}
	s.env.Compilers = append(s.env.Compilers, *v.Info)
	return v.Info, nil
}

// RunPostActions applies host side effects for a synthesized session.
func (s *Session) RunPostActions(ctx context.Context) error {
	a, res, ok := s.Result()
	if !ok || s.opts.Actions == nil {
		return nil
	}
	return s.opts.Actions.Apply(ctx, a, res)
}
