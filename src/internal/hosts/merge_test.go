package hosts

import (
	"bytes"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	hostsfile "github.com/kevinburke/hostsfile/lib"

	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/log"
)

var fixedNow = func() time.Time {
	return time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
}

type mergeFixture struct {
	seeds     []string
	local     string
	hardCoded string
	untrusted string
	external  string
	opts      Options
}

func source(name, content string) Source {
	if content == "" {
		return Source{Name: name}
	}
	return Source{Name: name, Reader: strings.NewReader(content)}
}

// runMerge merges the fixture and returns the document and the warnings logged.
func runMerge(t *testing.T, f mergeFixture) (string, *Result, []string, error) {
	t.Helper()

	var stdout, stderr, out bytes.Buffer
	logger := log.New(&stdout, &stderr, log.LevelWarn)

	opts := f.opts
	opts.Now = fixedNow
	m := NewMerger(opts, logger)

	res, err := m.Merge(&out, Sources{
		LocalSeeds: f.seeds,
		Local:      source("local.hosts", f.local),
		HardCoded:  source("hardcoded.hosts", f.hardCoded),
		Untrusted:  source("untrusted.hosts", f.untrusted),
		External:   source("hosts.txt", f.external),
	})

	var warnings []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.Contains(line, "[WRN]") {
			warnings = append(warnings, line)
		}
	}
	return out.String(), res, warnings, err
}

// entries decodes the document as a hosts file and maps hostname to addresses.
func entries(t *testing.T, doc string) map[string][]string {
	t.Helper()

	hf, err := hostsfile.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("output is not a valid hosts file: %v", err)
	}

	m := make(map[string][]string)
	for _, r := range hf.Records() {
		for h := range r.Hostnames {
			m[h] = append(m[h], r.IpAddress.IP.String())
		}
	}
	return m
}

func TestMerge_Golden(t *testing.T) {
	doc, res, warnings, err := runMerge(t, mergeFixture{
		seeds:     []string{"localhost"},
		local:     "foo\n# comment\n\nfoo\nFOO\n",
		hardCoded: "10.0.0.5  db.internal  # primary db\n192.168.1.1\tRouter.lan\n",
		untrusted: "ads.example.com\nrouter.lan\n",
		external:  "# downloaded\n0.0.0.0 localhost\n127.0.0.1 tracker.example.net\n0.0.0.0 ads.example.com\n",
		opts:      Options{ExternalSkip: []string{"localhost"}},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	golden := `# Hosts file generated by MergeHosts (Tue Jan  2 03:04:05 2024)
#
# Local Hosts
#
127.0.0.1	localhost
::1	localhost
127.0.0.1	foo
::1	foo
#
# Hard Coded Hosts
#
10.0.0.5	db.internal
192.168.1.1	router.lan
#
# Untrusted Hosts
#
0.0.0.0	ads.example.com
#
# External Hosts
#
0.0.0.0	tracker.example.net
# 6 host entries
`
	if diff := cmp.Diff(golden, doc); diff != "" {
		t.Errorf("unexpected document (-want +got):\n%s", diff)
	}

	if len(warnings) != 2 {
		t.Errorf("Expected 2 duplicate warnings, got %d: %v", len(warnings), warnings)
	}

	want := []SourceStats{
		{Kind: KindLocal, Category: "local", Source: "local.hosts", Written: 4},
		{Kind: KindHardCoded, Category: "hard-coded", Source: "hardcoded.hosts", Written: 2},
		{Kind: KindUntrusted, Category: "untrusted", Source: "untrusted.hosts", Written: 1, Duplicates: 1},
		{Kind: KindExternal, Category: "external", Source: "hosts.txt", Written: 1, Duplicates: 1, Skipped: 1},
	}
	if diff := cmp.Diff(want, res.Sources); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
	if res.Total != 6 {
		t.Errorf("Expected total 6, got %d", res.Total)
	}
}

func TestMerge_SummaryMatchesDistinctHostnames(t *testing.T) {
	doc, res, _, err := runMerge(t, mergeFixture{
		seeds:     []string{"localhost", "workstation"},
		local:     "printer.lan\nnas.lan\n",
		hardCoded: "10.0.0.1 nas.lan\n10.0.0.2 git.lan\n",
		untrusted: "a.example.com\nb.example.com\nA.example.com\n",
		external:  "0.0.0.0 b.example.com\n0.0.0.0 c.example.com\n0.0.0.0 d.example.com\n",
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	distinct := len(entries(t, doc))
	if distinct != res.Total {
		t.Errorf("Expected %d distinct hostnames, summary says %d", distinct, res.Total)
	}

	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	summary := lines[len(lines)-1]
	if summary != "# 9 host entries" {
		t.Errorf("Unexpected summary line %q", summary)
	}
}

func TestMerge_FirstWriterWins(t *testing.T) {
	doc, _, warnings, err := runMerge(t, mergeFixture{
		hardCoded: "10.1.2.3 shared.example.com\n",
		untrusted: "shared.example.com\n",
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	got := entries(t, doc)["shared.example.com"]
	if diff := cmp.Diff([]string{"10.1.2.3"}, got); diff != "" {
		t.Errorf("unexpected addresses (-want +got):\n%s", diff)
	}

	if len(warnings) != 1 {
		t.Fatalf("Expected exactly one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "untrusted") || !strings.Contains(warnings[0], "shared.example.com") {
		t.Errorf("Expected warning to reference untrusted and the hostname, got %q", warnings[0])
	}
}

func TestMerge_HardCodedBeatsExternal(t *testing.T) {
	doc, res, warnings, err := runMerge(t, mergeFixture{
		hardCoded: "192.168.0.10 media.lan\n",
		external:  "0.0.0.0 MEDIA.lan\n",
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if diff := cmp.Diff([]string{"192.168.0.10"}, entries(t, doc)["media.lan"]); diff != "" {
		t.Errorf("unexpected addresses (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "external") {
		t.Errorf("Expected one external duplicate warning, got %v", warnings)
	}
	if res.Stats(KindExternal).Duplicates != 1 {
		t.Errorf("Expected one external duplicate, got %+v", res.Stats(KindExternal))
	}
}

func TestMerge_SinkholeInvariant(t *testing.T) {
	doc, _, _, err := runMerge(t, mergeFixture{
		untrusted: "bad.example.com\n",
		external:  "127.0.0.1 tracker.example.net\n10.0.0.1 ads.example.org\n",
		opts:      Options{Sinkhole: "0.0.0.0"},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	got := entries(t, doc)
	for _, h := range []string{"bad.example.com", "tracker.example.net", "ads.example.org"} {
		if diff := cmp.Diff([]string{"0.0.0.0"}, got[h]); diff != "" {
			t.Errorf("%s: unexpected addresses (-want +got):\n%s", h, diff)
		}
	}
}

func TestMerge_CustomSinkhole(t *testing.T) {
	doc, _, _, err := runMerge(t, mergeFixture{
		untrusted: "bad.example.com\n",
		opts:      Options{Sinkhole: "127.0.0.2"},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if !strings.Contains(doc, "127.0.0.2\tbad.example.com\n") {
		t.Errorf("Expected custom sinkhole entry, got:\n%s", doc)
	}
}

func TestMerge_LocalMultiAddressExpansion(t *testing.T) {
	doc, res, warnings, err := runMerge(t, mergeFixture{
		local: "foo\nfoo\nFoo\n",
		opts:  Options{LocalAddresses: []string{"127.0.0.1", "::1"}},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if diff := cmp.Diff([]string{"127.0.0.1", "::1"}, entries(t, doc)["foo"]); diff != "" {
		t.Errorf("unexpected addresses (-want +got):\n%s", diff)
	}
	if strings.Count(doc, "\tfoo\n") != 2 {
		t.Errorf("Expected exactly two entries for foo, got:\n%s", doc)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings for repeated local hosts, got %v", warnings)
	}
	if res.Total != 1 {
		t.Errorf("Expected total 1, got %d", res.Total)
	}
}

func TestMerge_LocalSeedAlsoInLocalFile(t *testing.T) {
	doc, _, warnings, err := runMerge(t, mergeFixture{
		seeds: []string{"localhost", "box"},
		local: "box\n",
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if strings.Count(doc, "\tbox\n") != 2 {
		t.Errorf("Expected box to be written once per local address, got:\n%s", doc)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestMerge_CommentStripping(t *testing.T) {
	doc, _, _, err := runMerge(t, mergeFixture{
		hardCoded: "10.0.0.5  db.internal  # primary db\n",
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if strings.Count(doc, "db.internal") != 1 {
		t.Errorf("Expected exactly one db.internal entry, got:\n%s", doc)
	}
	if !strings.Contains(doc, "10.0.0.5\tdb.internal\n") {
		t.Errorf("Expected stripped entry, got:\n%s", doc)
	}
}

func TestMerge_MalformedLineAborts(t *testing.T) {
	tests := []struct {
		name     string
		fixture  mergeFixture
		wantKind string
		wantFile string
		wantLine string
	}{
		{
			name:     "hard-coded single token",
			fixture:  mergeFixture{hardCoded: "10.0.0.1 ok.lan\nbroken.lan\n"},
			wantKind: "hard-coded",
			wantFile: "hardcoded.hosts",
			wantLine: "broken.lan",
		},
		{
			name:     "external three tokens",
			fixture:  mergeFixture{external: "0.0.0.0 a.example.com b.example.com\n"},
			wantKind: "external",
			wantFile: "hosts.txt",
			wantLine: "0.0.0.0 a.example.com b.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, res, _, err := runMerge(t, tt.fixture)
			if err == nil {
				t.Fatal("Expected malformed line to abort the merge")
			}
			if !stderrors.Is(err, errors.ErrFormat) {
				t.Errorf("Expected format error, got %v", err)
			}
			for _, want := range []string{tt.wantKind, tt.wantFile, tt.wantLine} {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Expected error to mention %q, got %v", want, err)
				}
			}
			if res != nil {
				t.Errorf("Expected no result, got %+v", res)
			}
			if strings.Contains(doc, "host entries") {
				t.Errorf("Expected no summary after abort, got:\n%s", doc)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, stderrors.New("disk on fire") }

func TestMerge_ReadErrorIsIOError(t *testing.T) {
	m := NewMerger(Options{Now: fixedNow}, nil)

	_, err := m.Merge(io.Discard, Sources{
		Untrusted: Source{Name: "untrusted.hosts", Reader: failingReader{}},
	})
	if !stderrors.Is(err, errors.ErrIO) {
		t.Fatalf("Expected IO error, got %v", err)
	}
	if !strings.Contains(err.Error(), "untrusted.hosts") {
		t.Errorf("Expected error to name the source, got %v", err)
	}
}

func TestMerge_EmptySources(t *testing.T) {
	doc, res, _, err := runMerge(t, mergeFixture{})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	for _, kind := range Kinds {
		if !strings.Contains(doc, "# "+kind.Title()+"\n") {
			t.Errorf("Expected banner for %s, got:\n%s", kind.Title(), doc)
		}
	}
	if res.Total != 0 || !strings.HasSuffix(doc, "# 0 host entries\n") {
		t.Errorf("Expected empty summary, got total=%d doc:\n%s", res.Total, doc)
	}
}

func TestMerger_Reusable(t *testing.T) {
	m := NewMerger(Options{Now: fixedNow}, nil)

	for i := 0; i < 2; i++ {
		res, err := m.Merge(io.Discard, Sources{
			Untrusted: Source{Name: "untrusted.hosts", Reader: strings.NewReader("a.example.com\n")},
		})
		if err != nil {
			t.Fatalf("run %d: Merge() error = %v", i, err)
		}
		if res.Stats(KindUntrusted).Duplicates != 0 {
			t.Errorf("run %d: registry leaked between runs: %+v", i, res.Stats(KindUntrusted))
		}
	}
}
