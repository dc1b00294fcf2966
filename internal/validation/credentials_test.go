package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   Registration
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid registration",
			input: Registration{Username: "alice", Password: "Secret1!", ConfirmPassword: "Secret1!"},
		},
		{
			name:    "empty username",
			input:   Registration{Username: "", Password: "Secret1!", ConfirmPassword: "Secret1!"},
			wantErr: true,
			errMsg:  "username: cannot be blank",
		},
		{
			name:    "whitespace username",
			input:   Registration{Username: "   ", Password: "Secret1!", ConfirmPassword: "Secret1!"},
			wantErr: true,
			errMsg:  "username: cannot be blank",
		},
		{
			name:    "empty password",
			input:   Registration{Username: "alice", Password: "", ConfirmPassword: "Secret1!"},
			wantErr: true,
			errMsg:  "password: cannot be blank",
		},
		{
			name:    "empty confirmation",
			input:   Registration{Username: "alice", Password: "Secret1!", ConfirmPassword: ""},
			wantErr: true,
			errMsg:  "confirmPassword: cannot be blank",
		},
		{
			name:    "passwords do not match",
			input:   Registration{Username: "alice", Password: "Secret1!", ConfirmPassword: "Secret2!"},
			wantErr: true,
			errMsg:  "confirmPassword: passwords do not match",
		},
		{
			name:    "username too long",
			input:   Registration{Username: strings.Repeat("a", MaxUsernameLen+1), Password: "pw", ConfirmPassword: "pw"},
			wantErr: true,
			errMsg:  "username:",
		},
		{
			name:    "password too long",
			input:   Registration{Username: "alice", Password: strings.Repeat("p", MaxPasswordLen+1), ConfirmPassword: strings.Repeat("p", MaxPasswordLen+1)},
			wantErr: true,
			errMsg:  "password:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLogin_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   Login
		wantErr bool
	}{
		{name: "valid", input: Login{Username: "alice", Password: "Secret1!"}},
		{name: "empty username", input: Login{Password: "Secret1!"}, wantErr: true},
		{name: "blank password", input: Login{Username: "alice", Password: "  "}, wantErr: true},
		{name: "both empty", input: Login{}, wantErr: true},
		{name: "very long username is not a validation error", input: Login{Username: strings.Repeat("a", 500), Password: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
