package service

import "testing"

func TestSessionTitle(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "short message used whole",
			message: "我想了解年假规定",
			want:    "我想了解年假规定",
		},
		{
			name:    "exactly twenty runes used whole",
			message: "一二三四五六七八九十一二三四五六七八九十",
			want:    "一二三四五六七八九十一二三四五六七八九十",
		},
		{
			name:    "long message cut at twenty runes with ellipsis",
			message: "我想了解公司的休假政策，尤其是年假的规定和申请流程。",
			want:    "我想了解公司的休假政策，尤其是年假的规定…",
		},
		{
			name:    "empty message kept empty",
			message: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessionTitle(tt.message); got != tt.want {
				t.Errorf("sessionTitle(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
