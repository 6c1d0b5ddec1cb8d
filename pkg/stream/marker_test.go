package stream

import "testing"

func TestExtractMarker(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantFound bool
	}{
		{
			name:      "no marker",
			text:      "年假为5天。",
			wantFound: false,
		},
		{
			name:      "trailing marker",
			text:      "年假为5天。\n\n【来源：员工手册】",
			wantLabel: "员工手册",
			wantFound: true,
		},
		{
			name:      "first of several markers wins",
			text:      "【来源：员工手册】内容【来源：公司政策】",
			wantLabel: "员工手册",
			wantFound: true,
		},
		{
			name:      "empty label never matches",
			text:      "【来源：】",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, found := ExtractMarker(tt.text)
			if found != tt.wantFound {
				t.Fatalf("ExtractMarker(%q) found = %v, want %v", tt.text, found, tt.wantFound)
			}
			if label != tt.wantLabel {
				t.Errorf("ExtractMarker(%q) label = %q, want %q", tt.text, label, tt.wantLabel)
			}
		})
	}
}

func TestStripMarkers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no marker unchanged",
			text: "年假为5天。",
			want: "年假为5天。",
		},
		{
			name: "trailing marker removed with surrounding space",
			text: "年假为5天。\n\n【来源：员工手册】",
			want: "年假为5天。",
		},
		{
			name: "every occurrence removed",
			text: "【来源：A手册】正文【来源：B手册】",
			want: "正文",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkers(tt.text); got != tt.want {
				t.Errorf("StripMarkers(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolveSource(t *testing.T) {
	kbs := []KnowledgeBaseRef{
		{Name: "公司政策", UpdatedLabel: "2小时前"},
		{Name: "员工手册", UpdatedLabel: "1天前"},
	}

	tests := []struct {
		name          string
		label         string
		wantName      string
		wantUpdatedAt string
	}{
		{
			name:          "exact match",
			label:         "员工手册",
			wantName:      "员工手册",
			wantUpdatedAt: "1天前",
		},
		{
			name:          "label contains knowledge base name",
			label:         "公司员工手册福利章节",
			wantName:      "员工手册",
			wantUpdatedAt: "1天前",
		},
		{
			name:          "knowledge base name contains label",
			label:         "政策",
			wantName:      "公司政策",
			wantUpdatedAt: "2小时前",
		},
		{
			name:          "first match wins",
			label:         "公司政策与员工手册",
			wantName:      "公司政策",
			wantUpdatedAt: "2小时前",
		},
		{
			name:          "unknown label kept verbatim",
			label:         "外部资料",
			wantName:      "外部资料",
			wantUpdatedAt: "刚刚更新",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSource(tt.label, kbs)
			if got.Name != tt.wantName || got.UpdatedAt != tt.wantUpdatedAt {
				t.Errorf("ResolveSource(%q) = {%q, %q}, want {%q, %q}",
					tt.label, got.Name, got.UpdatedAt, tt.wantName, tt.wantUpdatedAt)
			}
		})
	}
}
