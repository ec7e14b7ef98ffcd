package synth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vscch/internal/compiler"
	"vscch/internal/host"
	"vscch/internal/profile"
	"vscch/internal/store"
)

const (
	buildTaskLabel = "single file build"
	runTaskLabel   = "run and pause"
	checkTaskLabel = "check non-ASCII path"
	// OptionsFile records the options a workspace was configured with.
	OptionsFile = "vscch.json"
)

// GenerateOptions carries compiler facts that the options document does
// not record.
type GenerateOptions struct {
	Not64Bit        bool
	CompilerVersion string
}

// Result lists what Generate wrote.
type Result struct {
	Files []string
	// TestFile is the generated source file, empty when none was written.
	TestFile string
}

// Generate writes the .vscode folder of the workspace. Each file is
// replaced atomically; settings.json keeps keys it does not manage.
func Generate(a Artifact, opts GenerateOptions) (Result, error) {
	o := a.Options()
	if strings.TrimSpace(o.WorkspacePath) == "" {
		return Result{}, ErrNoWorkspace
	}
	dir := filepath.Join(o.WorkspacePath, ".vscode")
	var res Result
	write := func(name string, v any) error {
		p := filepath.Join(dir, name)
		if err := store.WriteJSON(p, v); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		res.Files = append(res.Files, p)
		return nil
	}
	if err := write("tasks.json", tasksJSON(o)); err != nil {
		return res, err
	}
	if err := write("launch.json", launchJSON(o)); err != nil {
		return res, err
	}
	if err := write("c_cpp_properties.json", propertiesJSON(o, opts)); err != nil {
		return res, err
	}
	settings, err := mergeSettings(filepath.Join(dir, "settings.json"), o)
	if err != nil {
		return res, err
	}
	if err := write("settings.json", settings); err != nil {
		return res, err
	}
	if err := write(OptionsFile, a); err != nil {
		return res, err
	}
	tf, err := writeTestFile(o)
	if err != nil {
		return res, err
	}
	if tf != "" {
		res.TestFile = tf
		res.Files = append(res.Files, tf)
	}
	return res, nil
}

func toolPath(o Common, name string) string {
	exe := host.Exe(name)
	if o.MingwPath == nil {
		return exe
	}
	return filepath.Join(*o.MingwPath, exe)
}

func driverName(o Common) string {
	if o.Language == profile.C {
		return "gcc"
	}
	return "g++"
}

func programPath() string {
	return "${fileDirname}/${fileBasenameNoExtension}" + host.ProgramSuffix
}

type task map[string]any

func tasksJSON(o Common) map[string]any {
	args := []string{"-g", "${file}", "-o", programPath()}
	args = append(args, o.CompileArgs...)
	build := task{
		"type":    "process",
		"label":   buildTaskLabel,
		"command": toolPath(o, driverName(o)),
		"args":    args,
		"options": map[string]any{"cwd": "${fileDirname}"},
		"group":   map[string]any{"kind": "build", "isDefault": true},
		"presentation": map[string]any{
			"reveal": "silent",
			"focus":  false,
			"echo":   false,
			"clear":  true,
		},
		"problemMatcher": "$gcc",
	}
	tasks := []task{}
	if o.ApplyNonAsciiCheck && host.Windows {
		script := `if ('${file}' -match '[^\x00-\x7F]') { Write-Error 'Path contains non-ASCII characters'; exit 1 }`
		tasks = append(tasks, task{
			"type":           "process",
			"label":          checkTaskLabel,
			"command":        "powershell",
			"args":           []string{"-NoProfile", "-Command", script},
			"presentation":   map[string]any{"reveal": "silent"},
			"problemMatcher": []string{},
		})
		build["dependsOn"] = checkTaskLabel
	}
	tasks = append(tasks, build, runTask(o))
	return map[string]any{"version": "2.0.0", "tasks": tasks}
}

func runTask(o Common) task {
	t := task{
		"label":     runTaskLabel,
		"dependsOn": buildTaskLabel,
		"group":     map[string]any{"kind": "test", "isDefault": true},
		"presentation": map[string]any{
			"reveal": "always",
			"focus":  true,
			"panel":  "new",
		},
		"problemMatcher": []string{},
	}
	switch {
	case o.UseExternalTerminal && host.Windows:
		t["type"] = "shell"
		t["command"] = "START"
		t["args"] = []string{"cmd", "/C", `"${fileDirname}\${fileBasenameNoExtension}.exe" & pause`}
	default:
		t["type"] = "shell"
		t["command"] = programPath()
		t["options"] = map[string]any{"cwd": "${fileDirname}"}
	}
	return t
}

func launchJSON(o Common) map[string]any {
	cfg := map[string]any{
		"name":                   "(gdb) Launch",
		"type":                   "cppdbg",
		"request":                "launch",
		"program":                programPath(),
		"args":                   []string{},
		"stopAtEntry":            false,
		"cwd":                    "${fileDirname}",
		"environment":            []string{},
		"externalConsole":        o.UseExternalTerminal,
		"internalConsoleOptions": "neverOpen",
		"MIMode":                 "gdb",
		"miDebuggerPath":         toolPath(o, "gdb"),
		"setupCommands": []map[string]any{{
			"description":    "Enable pretty-printing for gdb",
			"text":           "-enable-pretty-printing",
			"ignoreFailures": true,
		}},
		"preLaunchTask": buildTaskLabel,
	}
	return map[string]any{"version": "0.2.0", "configurations": []any{cfg}}
}

func propertiesJSON(o Common, opts GenerateOptions) map[string]any {
	sel := compiler.SelectStandards(opts.CompilerVersion)
	cStd, cppStd := sel.C, sel.Cpp
	if o.Language == profile.C {
		cStd = o.LanguageStandard
	} else {
		cppStd = o.LanguageStandard
	}
	mode := "gcc-x64"
	if opts.Not64Bit {
		mode = "gcc-x86"
	}
	cfg := map[string]any{
		"name":             "GCC",
		"intelliSenseMode": mode,
		"compilerPath":     toolPath(o, driverName(o)),
		"cStandard":        cStd,
		"cppStandard":      cppStd,
		"compilerArgs":     o.CompileArgs,
		"includePath":      []string{"${workspaceFolder}/**"},
	}
	return map[string]any{"version": 4, "configurations": []any{cfg}}
}

func mergeSettings(path string, o Common) (map[string]any, error) {
	cur := map[string]any{}
	if _, err := store.ReadJSON(path, &cur); err != nil {
		return nil, err
	}
	if cur == nil {
		cur = map[string]any{}
	}
	lang := "cpp"
	if o.Language == profile.C {
		lang = "c"
	}
	cur["files.defaultLanguage"] = lang
	cur["editor.formatOnType"] = true
	cur["debug.onTaskErrors"] = "abort"
	cur["C_Cpp.default.compilerPath"] = toolPath(o, driverName(o))
	return cur, nil
}

const cppHello = `#include <iostream>

int main() {
    std::cout << "Hello, world!" << std::endl;
    return 0;
}
`

const cHello = `#include <stdio.h>

int main(void) {
    printf("Hello, world!\n");
    return 0;
}
`

var sourceExts = map[string]bool{".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".c++": true}

func writeTestFile(o Common) (string, error) {
	switch o.GenerateTestFile {
	case profile.TestFileNever:
		return "", nil
	case profile.TestFileAuto:
		has, err := hasSources(o.WorkspacePath)
		if err != nil || has {
			return "", err
		}
	}
	name, body := "helloworld.cpp", cppHello
	if o.Language == profile.C {
		name, body = "helloworld.c", cHello
	}
	p := filepath.Join(o.WorkspacePath, name)
	if err := store.WriteFileAtomic(p, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return p, nil
}

func hasSources(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	for _, e := range entries {
		if !e.IsDir() && sourceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			return true, nil
		}
	}
	return false, nil
}
