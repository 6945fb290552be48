package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/votecloud/votecloud/pkg/score"
)

func TestPrinterStats(t *testing.T) {
	tests := []struct {
		name    string
		placed  int
		dropped int
		ranking score.RankedList
		want    []string
		notWant []string
	}{
		{
			name:    "leader",
			placed:  3,
			ranking: score.Aggregate([]string{"Alice", "Bob", "Carol"}, []string{"Bob", "Bob", "Carol"}),
			want:    []string{"3 labels", "3 votes", "3 placed", "Bob leads with 2"},
			notWant: []string{"dropped"},
		},
		{
			name:    "drops",
			placed:  1,
			dropped: 2,
			ranking: score.Aggregate([]string{"Alice", "Bob", "Carol"}, []string{"Alice"}),
			want:    []string{"2 dropped", "Alice leads with 1"},
		},
		{
			name:    "no votes",
			placed:  2,
			ranking: score.Aggregate([]string{"Alice", "Bob"}, nil),
			want:    []string{"0 votes"},
			notWant: []string{"leads"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer{w: &buf}.stats(tt.placed, tt.dropped, tt.ranking)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("stats() = %q, missing %q", out, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("stats() = %q, should not contain %q", out, w)
				}
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	c := New(&bytes.Buffer{}, LogInfo)
	c.Out = &out

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path", "--config", dir + "/missing.toml"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.Contains(out.String(), "data/cache") {
		t.Errorf("cache path output = %q, want default directory", out.String())
	}
}
