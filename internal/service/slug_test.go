package service

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{header: "Hello World", want: "hello-world"},
		{header: "  Leading and trailing  ", want: "leading-and-trailing"},
		{header: "Go's “new” release!", want: "gos-new-release"},
		{header: "multi   space -- dash", want: "multi-space-dash"},
		{header: "--Edge--", want: "edge"},
		{header: "Привет, мир 2024", want: "привет-мир-2024"},
		{header: "हिन्दी समाचार", want: "हिन्दी-समाचार"},
		{header: "Café déjà vu", want: "café-déjà-vu"},
		{header: "!!!", want: ""},
		{header: "C++ & Rust: a/b", want: "c-rust-ab"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.header); got != tc.want {
			t.Fatalf("Slugify(%q) want %q got %q", tc.header, tc.want, got)
		}
	}
}

func TestReadingTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	cases := []struct {
		content string
		want    int
	}{
		{content: "", want: 1},
		{content: words(1), want: 1},
		{content: words(200), want: 1},
		{content: words(201), want: 2},
		{content: words(400), want: 2},
		{content: words(401), want: 3},
		{content: "spread\n\tacross   lines", want: 1},
	}
	for _, tc := range cases {
		if got := ReadingTime(tc.content); got != tc.want {
			t.Fatalf("ReadingTime(%d words) want %d got %d", len(strings.Fields(tc.content)), tc.want, got)
		}
	}
}
