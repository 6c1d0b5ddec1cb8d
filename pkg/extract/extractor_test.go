package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "windows line endings unified",
			text: "第一行\r\n第二行",
			want: "第一行\n第二行",
		},
		{
			name: "blank line runs collapsed",
			text: "第一段\n\n\n\n第二段",
			want: "第一段\n\n第二段",
		},
		{
			name: "edges trimmed",
			text: "\n\n  内容  \n\n",
			want: "内容",
		},
		{
			name: "double newline preserved",
			text: "第一段\n\n第二段",
			want: "第一段\n\n第二段",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.text); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestStripDocumentXML(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "tags removed",
			xml:  `<w:document><w:body><w:t>年假政策</w:t></w:body></w:document>`,
			want: "年假政策",
		},
		{
			name: "paragraphs and breaks become separators",
			xml:  `<w:p><w:t>第一段</w:t></w:p><w:p><w:t>第二段</w:t></w:p>`,
			want: "第一段 第二段",
		},
		{
			name: "line break tag",
			xml:  `<w:t>上半句</w:t><w:br/><w:t>下半句</w:t>`,
			want: "上半句 下半句",
		},
		{
			name: "entities decoded",
			xml:  `<w:t>A&amp;B &lt;标签&gt; &quot;引用&quot;</w:t>`,
			want: `A&B <标签> "引用"`,
		},
		{
			name: "whitespace runs collapsed",
			xml:  "<w:t>词一</w:t>   \n\t  <w:t>词二</w:t>",
			want: "词一 词二",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripDocumentXML(tt.xml); got != tt.want {
				t.Errorf("stripDocumentXML(%q) = %q, want %q", tt.xml, got, tt.want)
			}
		})
	}
}

func TestFromFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stored-name")
	content := "报销流程说明\r\n\r\n\r\n第一步：提交申请。\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FromFile(path, "报销指南.txt")
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	want := "报销流程说明\n\n第一步：提交申请。"
	if got != want {
		t.Errorf("FromFile() = %q, want %q", got, want)
	}
}

func TestFromFileUnsupportedFormat(t *testing.T) {
	got, err := FromFile("/nonexistent", "图片.png")
	if err != nil {
		t.Fatalf("FromFile() error = %v, want unsupported formats to be silently empty", err)
	}
	if got != "" {
		t.Errorf("FromFile() = %q, want empty text", got)
	}
}

func TestFromFileUsesOriginalNameExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload-uuid.bin")
	if err := os.WriteFile(path, []byte("markdown 内容"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FromFile(path, "说明.md")
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if got != "markdown 内容" {
		t.Errorf("FromFile() = %q, want extension taken from display name", got)
	}
}
