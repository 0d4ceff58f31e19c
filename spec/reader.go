package spec

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
)

type (
	// Reader turns the text of a composition file into a document.
	Reader interface {
		Read(text []byte) (*Spec, error)
	}

	// YAMLReader reads the text as a single YAML document.
	YAMLReader struct{}

	// ScriptReader runs the text as a program with Interpreter -c <text> and
	// reads the standard output of the program as YAML. The directory of the
	// running executable is appended to PATH so helper programs installed next
	// to it are found.
	ScriptReader struct {
		Interpreter string
	}

	// TemplateReader renders the text as a Go text/template, with the sprig
	// function library available, and reads the result as YAML. Data is
	// passed to the template as dot.
	TemplateReader struct {
		Data any
	}
)

// DefaultInterpreter is used by ScriptReader when no interpreter is set.
const DefaultInterpreter = "python3"

// ReaderNames lists the names accepted by NewReader.
var ReaderNames = []string{"yaml", "script", "template"}

// NewReader returns the reader with the given name.
func NewReader(name string) (Reader, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml", "y":
		return YAMLReader{}, nil
	case "script", "python", "p":
		return ScriptReader{}, nil
	case "template", "tmpl", "t":
		return TemplateReader{}, nil
	}
	return nil, &BadValueError{Field: "reader", Value: name, Reason: "expected one of " + strings.Join(ReaderNames, ", ")}
}

func (YAMLReader) Read(text []byte) (*Spec, error) {
	return ParseYAMLSpec(text)
}

func (r ScriptReader) Read(text []byte) (*Spec, error) {
	interpreter := r.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	cmd := exec.Command(interpreter, "-c", string(text))
	cmd.Env = append(os.Environ(), "PATH="+extendedPath())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ExecutionError{
			Command: interpreter,
			Err:     err,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
		}
	}
	s, err := ParseYAMLSpec(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not parse the output of %s: %w", interpreter, err)
	}
	return s, nil
}

func extendedPath() string {
	path := os.Getenv("PATH")
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	dir := filepath.Dir(exe)
	if path == "" {
		return dir
	}
	return path + string(os.PathListSeparator) + dir
}

func (r TemplateReader) Read(text []byte) (*Spec, error) {
	tmpl, err := template.New("spec").Funcs(sprig.TxtFuncMap()).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}
	var b bytes.Buffer
	if err := tmpl.Execute(&b, r.Data); err != nil {
		return nil, fmt.Errorf("could not execute template: %w", err)
	}
	return ParseYAMLSpec(b.Bytes())
}
