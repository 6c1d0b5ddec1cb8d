package serverutils

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=6"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         sampleRequest
		wantErr     bool
		wantInError []string
	}{
		{
			name:    "valid request",
			req:     sampleRequest{Username: "admin", Password: "admin123"},
			wantErr: false,
		},
		{
			name:        "missing field reported",
			req:         sampleRequest{Username: "admin"},
			wantErr:     true,
			wantInError: []string{"Password", "required"},
		},
		{
			name:        "all violations collected",
			req:         sampleRequest{Username: "ab", Password: "123"},
			wantErr:     true,
			wantInError: []string{"Username", "Password", "min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, frag := range tt.wantInError {
				if !strings.Contains(err.Error(), frag) {
					t.Errorf("error %q missing %q", err.Error(), frag)
				}
			}
		})
	}
}
