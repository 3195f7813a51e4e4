package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldWait(t *testing.T) {
	tests := []struct {
		name          string
		once          bool
		updated       bool
		attachPending bool
		want          bool
	}{
		{name: "idle", updated: true, want: true},
		{name: "work queued", updated: false, want: false},
		{name: "surface missing", updated: true, attachPending: true, want: false},
		{name: "once never blocks", once: true, updated: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldWait(tt.once, tt.updated, tt.attachPending))
		})
	}
}
