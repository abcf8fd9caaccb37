package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		input    string
		expected string
	}{
		{
			name:     "no expressions",
			input:    "workers: 4",
			expected: "workers: 4",
		},
		{
			name:     "single expression",
			env:      map[string]string{"FLUXCOST_WORKERS": "8"},
			input:    "workers: ${env.FLUXCOST_WORKERS}",
			expected: "workers: 8",
		},
		{
			name:     "repeated expressions",
			env:      map[string]string{"A": "1", "B": "2"},
			input:    "${env.A}-${env.B}-${env.A}",
			expected: "1-2-1",
		},
		{
			name:     "unset variable",
			input:    "file: ${env.FLUXCOST_UNSET}.json",
			expected: "file: .json",
		},
		{
			name:     "missing closing brace",
			env:      map[string]string{"X": "x", "Y": "y"},
			input:    "start ${env.X and ${env.Y} end",
			expected: "start ${env.X and y end",
		},
		{
			name:     "empty name",
			input:    "oops ${env.} done",
			expected: "oops  done",
		},
		{
			name:     "invalid name left as is",
			input:    "${env.A-B}",
			expected: "${env.A-B}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("FLUXCOST_UNSET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tc.expected, string(expandEnv([]byte(tc.input))))
		})
	}
}
