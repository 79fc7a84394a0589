package tool

import "testing"

func TestResolveName(t *testing.T) {
	cases := []struct {
		explicit string
		id       string
		source   string
		out      string
	}{
		{"md5", "Md5sum", "tools/dockstore-tool-md5sum.cwl", "md5"},
		{"my tool", "", "tools/x.cwl", "my tool"},
		{"", "Md5sum", "tools/dockstore-tool-md5sum.cwl", "Md5sum"},
		{"", "#main", "tools/packed.cwl", "main"},
		{"", "file:///tools/bwa.cwl#bwa-mem", "tools/bwa.cwl", "bwa-mem"},
		{"", "", "tools/dockstore-tool-md5sum.cwl", "dockstore-tool-md5sum"},
		{"", "", "/data/samtools view.cwl", "samtools_view"},
		{"", "", "tools/tool.v2.yaml", "tool_v2"},
	}

	for i, tc := range cases {
		if got := ResolveName(tc.explicit, tc.id, tc.source); got != tc.out {
			t.Fatalf("case %d: ResolveName(%q, %q, %q) = %q, want %q", i, tc.explicit, tc.id, tc.source, got, tc.out)
		}
	}
}
