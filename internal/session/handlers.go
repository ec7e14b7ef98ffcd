package session

import (
	"context"
	"encoding/json"
	"fmt"

	"vscch/internal/probe"
	"vscch/internal/profile"
	"vscch/internal/router"
	"vscch/internal/system"
)

// Operation names served over the request channel.
const (
	OpGetEnvironment = "get-environment"
	OpGetFolder      = "get-folder"
	OpVerifyEditor   = "verify-editor"
	OpVerifyCompiler = "verify-compiler"
	OpSaveProfile    = "save-profile"
	OpLoadProfile    = "load-profile"
	OpFinish         = "finish"
)

// Register binds the session's handlers. finish is the terminal operation.
func (s *Session) Register(r *router.Router) {
	r.Handle(OpGetEnvironment, s.handleGetEnvironment)
	r.Handle(OpGetFolder, s.handleGetFolder)
	r.Handle(OpVerifyEditor, s.handleVerifyEditor)
	r.Handle(OpVerifyCompiler, s.handleVerifyCompiler)
	r.Handle(OpSaveProfile, s.handleSaveProfile)
	r.Handle(OpLoadProfile, s.handleLoadProfile)
	r.HandleTerminal(OpFinish, s.handleFinish)
}

func (s *Session) handleGetEnvironment(context.Context, string) (string, error) {
	b, err := json.Marshal(s.Environment())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Session) handleGetFolder(ctx context.Context, initDir string) (string, error) {
	if s.opts.Picker == nil {
		return "", nil
	}
	dir, err := s.opts.Picker.PickFolder(ctx, initDir)
	if err != nil {
		system.Logger.Warn("folder picker failed", "err", err)
		return "", nil
	}
	return dir, nil
}

func (s *Session) handleVerifyEditor(_ context.Context, path string) (string, error) {
	if s.opts.Prober.VerifyEditor(path) {
		return probe.EditorValid, nil
	}
	return probe.EditorInvalid, nil
}

func (s *Session) handleVerifyCompiler(ctx context.Context, path string) (string, error) {
	v := s.opts.Prober.VerifyCompiler(ctx, path)
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Session) handleSaveProfile(_ context.Context, body string) (string, error) {
	if s.opts.Store == nil {
		return "", fmt.Errorf("save profile: no store configured")
	}
	p := profile.Default()
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	if err := s.opts.Store.Save(p); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *Session) handleLoadProfile(context.Context, string) (string, error) {
	if s.opts.Store == nil {
		return "null", nil
	}
	p, found, err := s.opts.Store.Load()
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return "null", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// handleFinish answers "ok" or the failure text. Failures are part of the
// response, the router still closes afterwards.
func (s *Session) handleFinish(ctx context.Context, body string) (string, error) {
	req, err := ParseFinishRequest(body)
	if err != nil {
		s.abort()
	} else {
		err = s.Finish(ctx, req)
	}
	if err != nil {
		system.Logger.Error("finish failed", "err", err)
		return err.Error(), nil
	}
	return "ok", nil
}

// ParseFinishRequest decodes a finish body. Profile fields missing from the
// config keep their defaults.
func ParseFinishRequest(body string) (FinishRequest, error) {
	var raw struct {
		Success *bool           `json:"success"`
		Config  json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return FinishRequest{}, fmt.Errorf("malformed finish request: %w", err)
	}
	if raw.Success == nil {
		return FinishRequest{}, fmt.Errorf("malformed finish request: missing success")
	}
	req := FinishRequest{Success: *raw.Success}
	if len(raw.Config) == 0 || string(raw.Config) == "null" {
		return req, nil
	}
	cfg := FinishConfig{Profile: profile.Default()}
	if err := json.Unmarshal(raw.Config, &cfg); err != nil {
		return FinishRequest{}, fmt.Errorf("malformed finish config: %w", err)
	}
	req.Config = &cfg
	return req, nil
}
