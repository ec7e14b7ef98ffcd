// Package probe discovers editor and compiler installations and validates
// paths typed in by the user.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vscch/internal/compiler"
	"vscch/internal/host"
	"vscch/internal/system"
)

// DefaultTimeout bounds a single `g++ --version` invocation.
const DefaultTimeout = 3 * time.Second

// Editor states reported to the front end.
const (
	EditorResolved   = "resolved"
	EditorUnresolved = "unresolved"
	EditorValid      = "valid"
	EditorInvalid    = "invalid"
)

// Editor is the outcome of editor auto-discovery.
type Editor struct {
	Path     string
	Resolved bool
}

// Status is EditorResolved or EditorUnresolved.
func (e Editor) Status() string {
	if e.Resolved {
		return EditorResolved
	}
	return EditorUnresolved
}

// Reason explains why a compiler path was rejected.
type Reason string

const (
	ReasonNotFound  Reason = "not_found"
	ReasonSemicolon Reason = "semicolon"
	ReasonInvalid   Reason = "invalid"
)

// Verification is the answer to a verify-compiler request.
type Verification struct {
	Valid  bool           `json:"valid"`
	Info   *compiler.Info `json:"info,omitempty"`
	Reason Reason         `json:"reason,omitempty"`
}

// Prober runs discovery against a set of candidate sources.
type Prober struct {
	CompilerSources []CandidateSource
	EditorSources   []CandidateSource
	// Timeout bounds each compiler invocation; zero means DefaultTimeout.
	Timeout time.Duration
}

// NewProber returns a prober wired to the host sources.
func NewProber(timeout time.Duration) *Prober {
	return &Prober{
		CompilerSources: DefaultCompilerSources(),
		EditorSources:   DefaultEditorSources(),
		Timeout:         timeout,
	}
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

// ProbeEditor returns the first candidate that holds the editor launcher.
func (p *Prober) ProbeEditor(ctx context.Context) Editor {
	for _, src := range p.EditorSources {
		for _, dir := range src.Candidates(ctx) {
			if p.VerifyEditor(dir) {
				return Editor{Path: InstallDir(dir), Resolved: true}
			}
		}
	}
	return Editor{}
}

// VerifyEditor accepts the installation directory or its bin folder.
func (p *Prober) VerifyEditor(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	dir := InstallDir(path)
	return isDir(dir) && isFile(filepath.Join(dir, host.EditorLauncher))
}

// ProbeCompilers tests every candidate directory once, in discovery order.
// Candidates that time out or do not identify as GCC are skipped.
func (p *Prober) ProbeCompilers(ctx context.Context) []compiler.Info {
	seen := map[string]bool{}
	var out []compiler.Info
	for _, src := range p.CompilerSources {
		for _, cand := range src.Candidates(ctx) {
			if strings.TrimSpace(cand) == "" {
				continue
			}
			dir := InstallDir(cand)
			key := pathKey(dir)
			if seen[key] {
				continue
			}
			seen[key] = true
			if !isFile(compilerExe(dir)) {
				continue
			}
			info, err := p.testCompiler(ctx, dir)
			if err != nil {
				system.Logger.Debug("skip compiler candidate", "dir", dir, "err", err)
				continue
			}
			system.Logger.Debug("found compiler", "dir", dir, "version", info.VersionNumber)
			out = append(out, info)
		}
	}
	return out
}

// VerifyCompiler checks a user supplied installation or bin directory.
func (p *Prober) VerifyCompiler(ctx context.Context, path string) Verification {
	path = strings.TrimSpace(path)
	// The bin folder ends up in a separator-delimited PATH value.
	if strings.ContainsRune(path, os.PathListSeparator) {
		return Verification{Reason: ReasonSemicolon}
	}
	if path == "" {
		return Verification{Reason: ReasonInvalid}
	}
	dir := InstallDir(path)
	if !isFile(compilerExe(dir)) {
		return Verification{Reason: ReasonNotFound}
	}
	info, err := p.testCompiler(ctx, dir)
	if err != nil {
		system.Logger.Debug("compiler verification failed", "dir", dir, "err", err)
		return Verification{Reason: ReasonInvalid}
	}
	return Verification{Valid: true, Info: &info}
}

func (p *Prober) testCompiler(ctx context.Context, dir string) (compiler.Info, error) {
	cctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	out, err := runCmd(cctx, compilerExe(dir), "--version")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return compiler.Info{}, fmt.Errorf("no answer within %s: %w", p.timeout(), err)
		}
		return compiler.Info{}, err
	}
	return compiler.NewInfo(dir, compiler.DecodeOutput(out))
}

func compilerExe(dir string) string {
	return filepath.Join(dir, host.BinDir, host.CompilerExe)
}
