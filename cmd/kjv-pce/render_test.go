// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChapter(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "150", want: 150},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "two", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseChapter(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "positive integer")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderArgs(t *testing.T) {
	assert.Error(t, renderCmd.Args(renderCmd, nil))
	assert.NoError(t, renderCmd.Args(renderCmd, []string{"Acts"}))
	assert.NoError(t, renderCmd.Args(renderCmd, []string{"Acts", "2"}))
	assert.Error(t, renderCmd.Args(renderCmd, []string{"Acts", "2", "3"}))
}

func TestPrintChapters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printChapters(&buf, "Jude", []int{1}))
	assert.Equal(t, "Jude 1\n", buf.String())

	buf.Reset()
	require.NoError(t, printChapters(&buf, "Empty", nil))
	assert.Equal(t, "Empty has no chapters\n", buf.String())
}
