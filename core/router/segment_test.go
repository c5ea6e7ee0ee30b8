package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weftlabs/weft/core/router"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want []router.Segment
	}{
		{
			name: "static segments",
			path: "/users/list",
			want: []router.Segment{
				{Name: "users", Kind: router.SegmentStatic},
				{Name: "list", Kind: router.SegmentStatic},
			},
		},
		{
			name: "parameter marker stripped",
			path: "/users/:id",
			want: []router.Segment{
				{Name: "users", Kind: router.SegmentStatic},
				{Name: "id", Kind: router.SegmentParam},
			},
		},
		{
			name: "wildcard",
			path: "/files/*",
			want: []router.Segment{
				{Name: "files", Kind: router.SegmentStatic},
				{Name: "*", Kind: router.SegmentWildcard},
			},
		},
		{
			name: "repeated separators skipped",
			path: "//users///list//",
			want: []router.Segment{
				{Name: "users", Kind: router.SegmentStatic},
				{Name: "list", Kind: router.SegmentStatic},
			},
		},
		{
			name: "backslash separators",
			path: `\users\:id\posts`,
			want: []router.Segment{
				{Name: "users", Kind: router.SegmentStatic},
				{Name: "id", Kind: router.SegmentParam},
				{Name: "posts", Kind: router.SegmentStatic},
			},
		},
		{
			name: "query suffix discarded",
			path: "/users/42?x=1&y=2",
			want: []router.Segment{
				{Name: "users", Kind: router.SegmentStatic},
				{Name: "42", Kind: router.SegmentStatic},
			},
		},
		{
			name: "no percent decoding at tokenize time",
			path: "/files/a%20b",
			want: []router.Segment{
				{Name: "files", Kind: router.SegmentStatic},
				{Name: "a%20b", Kind: router.SegmentStatic},
			},
		},
		{
			name: "root",
			path: "/",
			want: nil,
		},
		{
			name: "empty",
			path: "",
			want: nil,
		},
		{
			name: "query only",
			path: "?x=1",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, router.Tokenize(tt.path))
		})
	}
}

func TestTokenizeStarPrefixIsStatic(t *testing.T) {
	t.Parallel()

	// Only an exact "*" segment is a wildcard.
	segs := router.Tokenize("/files/*.png")
	assert.Equal(t, []router.Segment{
		{Name: "files", Kind: router.SegmentStatic},
		{Name: "*.png", Kind: router.SegmentStatic},
	}, segs)
}
