package spec_test

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"github.com/composer-audio/composer/spec"
)

const waveYAML = `
name: combiner
children:
  - name: wave
    frequency: 440
    fn: sine
  - name: wave
    frequency: 220.5
    fn: saw
    enabled: true
`

func TestParseYAMLKeepsOrder(t *testing.T) {
	s, err := spec.ParseYAMLSpec([]byte(waveYAML))
	if err != nil {
		t.Fatalf("ParseYAMLSpec failed: %v", err)
	}
	children, err := spec.ConsumeList[*spec.Spec](s, "children")
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("wrong number of children, got: %v expected: %v", len(children), 2)
	}
	if got, expected := children[1].Names(), []string{"name", "frequency", "fn", "enabled"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("order not kept, got: %v expected: %v", got, expected)
	}
	if v, _ := children[0].Get("frequency"); v != spec.Int(440) {
		t.Fatalf("got: %#v expected: %#v", v, spec.Int(440))
	}
	if v, _ := children[1].Get("frequency"); v != spec.Float(220.5) {
		t.Fatalf("got: %#v expected: %#v", v, spec.Float(220.5))
	}
	if v, _ := children[1].Get("enabled"); v != spec.Bool(true) {
		t.Fatalf("got: %#v expected: %#v", v, spec.Bool(true))
	}
}

func TestParseYAMLAliases(t *testing.T) {
	text := `
base: &w {name: wave, fn: sine}
other:
  <<: *w
  frequency: 2
`
	s, err := spec.ParseYAMLSpec([]byte(text))
	if err != nil {
		t.Fatalf("ParseYAMLSpec failed: %v", err)
	}
	other, _ := s.Get("other")
	if got := spec.Format(other); got != `{name: "wave", fn: "sine", frequency: 2}` {
		t.Fatalf("merge not applied: %v", got)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	for _, text := range []string{"", "a: ~", "a: 1\n---\nb: 2\n", "[1, 2"} {
		if _, err := spec.ParseYAML([]byte(text)); err == nil {
			t.Fatalf("expected error parsing %q", text)
		}
	}
	if _, err := spec.ParseYAMLSpec([]byte("- 1\n- 2\n")); err == nil {
		t.Fatalf("expected error for a list root")
	}
}

func TestTemplateReader(t *testing.T) {
	text := `
name: combiner
children:
{{- range $f := list 220 440 }}
  - name: wave
    frequency: {{ $f }}
{{- end }}
`
	s, err := spec.TemplateReader{}.Read([]byte(text))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	children, err := spec.ConsumeList[*spec.Spec](s, "children")
	if err != nil || len(children) != 2 {
		t.Fatalf("expected two children, got: %v, %v", children, err)
	}
}

func TestScriptReaderFailure(t *testing.T) {
	if _, err := exec.LookPath(spec.DefaultInterpreter); err != nil {
		t.Skip("no interpreter available")
	}
	_, err := spec.ScriptReader{}.Read([]byte("import sys\nprint('oops')\nsys.exit(3)"))
	var exe *spec.ExecutionError
	if !errors.As(err, &exe) {
		t.Fatalf("expected ExecutionError, got: %v", err)
	}
	if exe.Stdout != "oops\n" {
		t.Fatalf("stdout not captured, got: %q", exe.Stdout)
	}
}

func TestScriptReader(t *testing.T) {
	if _, err := exec.LookPath(spec.DefaultInterpreter); err != nil {
		t.Skip("no interpreter available")
	}
	s, err := spec.ScriptReader{}.Read([]byte("print('name: empty')"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := spec.Format(s); got != `{name: "empty"}` {
		t.Fatalf("got: %v", got)
	}
}

func TestNewReader(t *testing.T) {
	if _, err := spec.NewReader("yaml"); err != nil {
		t.Fatal(err)
	}
	_, err := spec.NewReader("json")
	var bad *spec.BadValueError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadValueError, got: %v", err)
	}
}

func TestHashChanges(t *testing.T) {
	if spec.Hash([]byte("a: 1")) == spec.Hash([]byte("a: 2")) {
		t.Fatalf("different texts hash equal")
	}
	if spec.Hash([]byte("a: 1")) != spec.Hash([]byte("a: 1")) {
		t.Fatalf("hash not deterministic")
	}
}
