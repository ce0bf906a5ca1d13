package media

import (
	"context"
	"reflect"
	"testing"
	"time"

	"admission-assistant-be/pkg/retry"
)

func TestParseSelection(t *testing.T) {
	raw := `{
		"selected_images": ["https://cdn.example.edu/a.jpg"],
		"selected_videos": [],
		"image_descriptions": ["Main gate", "Library hall"],
		"video_descriptions": []
	}`

	got, err := ParseSelection(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.SelectedImages, []string{"https://cdn.example.edu/a.jpg"}) {
		t.Errorf("SelectedImages = %v", got.SelectedImages)
	}
	if got.ImageDescriptions != "Main gate, Library hall" {
		t.Errorf("ImageDescriptions = %q", got.ImageDescriptions)
	}
}

func TestParseSelectionToleratesCodeFence(t *testing.T) {
	raw := "```json\n{\"selected_images\":[\"u\"],\"selected_videos\":[\"v\"],\"image_descriptions\":[],\"video_descriptions\":[\"tour\"]}\n```"
	got, err := ParseSelection(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.SelectedImages) != 1 || len(got.SelectedVideos) != 1 {
		t.Errorf("selection = %+v", got)
	}
	if got.VideoDescriptions != "tour" {
		t.Errorf("VideoDescriptions = %q", got.VideoDescriptions)
	}
}

func TestParseSelectionRejectsProse(t *testing.T) {
	if _, err := ParseSelection("I would pick the first image."); err == nil {
		t.Error("prose should fail to parse")
	}
}

func TestFallbackSelection(t *testing.T) {
	images := []Candidate{
		{URL: "i1", Description: "one"},
		{URL: "i2", Description: "two"},
		{URL: "i3", Description: "three"},
		{URL: "i4", Description: "four"},
	}
	videos := []Candidate{{URL: "v1", Description: "clip"}}

	got := fallbackSelection(images, videos)
	if !reflect.DeepEqual(got.SelectedImages, []string{"i1", "i2", "i3"}) {
		t.Errorf("SelectedImages = %v, want first three", got.SelectedImages)
	}
	if got.ImageDescriptions != "one, two, three" {
		t.Errorf("ImageDescriptions = %q", got.ImageDescriptions)
	}
	if !reflect.DeepEqual(got.SelectedVideos, []string{"v1"}) {
		t.Errorf("SelectedVideos = %v", got.SelectedVideos)
	}
}

func TestSelectWithoutProviderFallsBack(t *testing.T) {
	s := NewSelector(nil, retry.Policy{Retries: 1, BaseDelay: time.Millisecond}, nopLogger{})

	images := []Candidate{
		{URL: "a.jpg", Description: "Main gate"},
		{URL: "b.jpg", Description: "Library"},
	}
	got := s.Select(context.Background(), "show me the campus", images, nil)
	if !reflect.DeepEqual(got.SelectedImages, []string{"a.jpg", "b.jpg"}) {
		t.Errorf("SelectedImages = %v", got.SelectedImages)
	}
	if got.ImageDescriptions != "Main gate, Library" {
		t.Errorf("ImageDescriptions = %q", got.ImageDescriptions)
	}
}
