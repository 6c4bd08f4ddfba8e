// Package hltdiff wraps the hltDiff comparison tool as a subprocess.
package hltdiff

import "strconv"

// DefaultBinary is the tool name looked up on PATH when none is configured.
const DefaultBinary = "hltDiff"

// Request describes one hltDiff invocation comparing the same process name
// in a reference and a target file.
type Request struct {
	MaxEvents  int
	Reference  string
	Target     string
	Process    string
	OutputBase string
}

// Args returns the hltDiff command line arguments for r.
// -j asks for the JSON side artifact, written under OutputBase.
func (r Request) Args() []string {
	return []string{
		"-m", strconv.Itoa(r.MaxEvents),
		"-o", r.Reference, "-O", r.Process,
		"-n", r.Target, "-N", r.Process,
		"-j", "-F", r.OutputBase,
	}
}

// Output is what hltDiff wrote while comparing.
type Output struct {
	Stdout []byte
	Stderr []byte
}
