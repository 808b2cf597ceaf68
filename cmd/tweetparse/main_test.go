package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

func originalLine(id int64, text string) string {
	return fmt.Sprintf(`{"id":%d,"id_str":"%d","created_at":"Wed May 24 20:17:19 +0000 2017","user":{"screen_name":"u%d"},"text":%q}`, id, id, id, text)
}

const activityLine = `{"id":"tag:search.twitter.com,2005:867474613139156993","postedTime":"2017-05-24T20:17:19.000Z","actor":{"preferredUsername":"as"},"body":"hi"}`

func testConfig(workers int) Config {
	c := DefaultConfig()
	c.Workers = workers
	return c
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_OverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweetparse.yaml")
	yml := "fields: [id, lang]\nworkers: 3\nduplicate_keys: warn\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Fields = []string{"id", "lang"}
	want.Workers = 3
	want.DuplicateKeys = "warn"
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TWEETPARSE_FIELDS":  "id, text",
		"TWEETPARSE_WORKERS": "2",
		"TWEETPARSE_STRICT":  "true",
	}
	c := DefaultConfig()
	if err := c.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"id", "text"}, c.Fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
	if c.Workers != 2 || !c.Strict {
		t.Fatalf("workers=%d strict=%v", c.Workers, c.Strict)
	}

	env["TWEETPARSE_WORKERS"] = "many"
	if err := c.ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Fatalf("expected error for non-numeric workers")
	}
}

func TestValidateConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	bad := []func(*Config){
		func(c *Config) { c.Fields = []string{"nope"} },
		func(c *Config) { c.Fields = nil },
		func(c *Config) { c.Workers = 0 },
		func(c *Config) { c.DuplicateKeys = "sometimes" },
	}
	for i, mutate := range bad {
		c := DefaultConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestConfigNormalize_FieldNames(t *testing.T) {
	c := DefaultConfig()
	c.Fields = []string{"ID", " text ", " "}
	if err := c.Validate(); err != nil {
		t.Fatalf("mixed-case names should validate: %v", err)
	}
	c.Normalize()
	if diff := cmp.Diff([]string{"id", "text"}, c.Fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
	if got := splitCSV("Screen_Name, ID ,,"); !cmp.Equal(got, []string{"screen_name", "id"}) {
		t.Fatalf("splitCSV = %v", got)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

type eofReader struct {
	r   io.Reader
	eof bool
}

func (r *eofReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err == io.EOF {
		r.eof = true
	}
	return n, err
}

func TestWriteFields_StopsOnWriteError(t *testing.T) {
	var in strings.Builder
	for i := 1; i <= 4000; i++ {
		in.WriteString(originalLine(int64(867474613139156993+i), strings.Repeat("x", 100)))
		in.WriteByte('\n')
	}
	src := &eofReader{r: strings.NewReader(in.String())}
	errDiskFull := errors.New("disk full")
	c := testConfig(1)
	c.Fields = []string{"id", "text"}

	err := writeFields(context.Background(), failingWriter{errDiskFull}, src, nil, c, zap.NewNop())
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected write error, got %v", err)
	}
	if src.eof {
		t.Fatalf("input was read to the end after the output failed")
	}
}

func TestWriteFields_PreservesOrder(t *testing.T) {
	var in strings.Builder
	const n = 200
	for i := 1; i <= n; i++ {
		in.WriteString(originalLine(int64(867474613139156993+i), fmt.Sprintf("t%d", i)))
		in.WriteString("\n\n")
	}
	c := testConfig(8)
	c.Fields = []string{"id", "text"}
	var out bytes.Buffer
	if err := writeFields(context.Background(), &out, strings.NewReader(in.String()), nil, c, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}
	for i, l := range lines {
		want := fmt.Sprintf(`{"id":"%d","text":"t%d"}`, 867474613139156993+i+1, i+1)
		if l != want {
			t.Fatalf("line %d = %s, want %s", i, l, want)
		}
	}
}

func TestWriteFields_NotAvailableIsNull(t *testing.T) {
	c := testConfig(1)
	c.Fields = []string{"id", "poll_options", "klout_score"}
	var out bytes.Buffer
	if err := writeFields(context.Background(), &out, strings.NewReader(activityLine), nil, c, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := j.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"id": "867474613139156993", "poll_options": nil, "klout_score": nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("row (-want +got):\n%s", diff)
	}
}

func TestWriteFields_InvalidLine(t *testing.T) {
	in := originalLine(1, "a") + "\n" + `{"foo":1}` + "\n" + originalLine(2, "b") + "\n"
	c := testConfig(2)
	c.Fields = []string{"text"}

	err := writeFields(context.Background(), &bytes.Buffer{}, strings.NewReader(in), nil, c, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected error naming line 2, got %v", err)
	}

	c.SkipInvalid = true
	var out bytes.Buffer
	if err := writeFields(context.Background(), &out, strings.NewReader(in), nil, c, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if out.String() != "{\"text\":\"a\"}\n{\"text\":\"b\"}\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestOpenInput_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.jsonl.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	fmt.Fprintln(zw, originalLine(867474613139156993, "zipped"))
	fmt.Fprintln(zw, activityLine)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s, err := validateInputs(context.Background(), nil, []string{path}, testConfig(2), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(summary{Original: 1, ActivityStreams: 1}, s); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}
}

func TestValidateInputs_Summary(t *testing.T) {
	in := strings.Join([]string{
		originalLine(867474613139156993, "a"),
		activityLine,
		`{"foo":1}`,
		`not json`,
	}, "\n")
	s, err := validateInputs(context.Background(), strings.NewReader(in), nil, testConfig(4), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(summary{Original: 1, ActivityStreams: 1, Invalid: 2}, s); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}
	var out bytes.Buffer
	s.print(&out)
	if !strings.Contains(out.String(), "invalid: 2") {
		t.Fatalf("summary output = %q", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	if !strings.HasPrefix(out.String(), "tweetparse ") {
		t.Fatalf("output = %q", out.String())
	}
}
