// Package host collects the file-naming conventions of the machine the
// tool runs on: executable suffixes, the editor launcher and the layout of
// a compiler installation.
package host

// BinDir is the sub-folder of an installation that holds its executables.
const BinDir = "bin"

// Exe appends the host executable suffix to name.
func Exe(name string) string { return name + ExeSuffix }

// CompilerExe is the C++ driver every probed installation must provide.
var CompilerExe = Exe("g++")
