package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/retry"
)

const fallbackTake = 3

// selectionPayload is the JSON shape the selection prompt asks for.
type selectionPayload struct {
	SelectedImages    []string `json:"selected_images"`
	SelectedVideos    []string `json:"selected_videos"`
	ImageDescriptions []string `json:"image_descriptions"`
	VideoDescriptions []string `json:"video_descriptions"`
}

// Selector narrows search candidates to the subset actually shown with the
// answer. Any failure degrades to a deterministic fallback: the first
// fallbackTake candidates of each kind with their stored descriptions.
type Selector struct {
	llmProvider llm.LLMProvider
	retryPolicy retry.Policy
	log         logger.ILogger
}

func NewSelector(llmProvider llm.LLMProvider, retryPolicy retry.Policy, log logger.ILogger) *Selector {
	return &Selector{
		llmProvider: llmProvider,
		retryPolicy: retryPolicy,
		log:         log,
	}
}

func (s *Selector) Select(ctx context.Context, userQuery string, images, videos []Candidate) Selection {
	if len(images) == 0 && len(videos) == 0 {
		return Selection{}
	}
	if s.llmProvider == nil {
		return fallbackSelection(images, videos)
	}

	prompt := fmt.Sprintf(constant.MediaSelectionPromptV1,
		userQuery,
		renderCandidates(images),
		renderCandidates(videos),
	)

	raw, err := retry.Do(ctx, s.retryPolicy, func() (string, error) {
		return s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	})
	if err != nil {
		s.log.Warn("media_selection", "model call failed, using fallback selection", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackSelection(images, videos)
	}

	selection, err := ParseSelection(raw)
	if err != nil {
		s.log.Warn("media_selection", "unparseable selection response, using fallback", map[string]interface{}{
			"error":    err.Error(),
			"response": truncate(raw, 200),
		})
		return fallbackSelection(images, videos)
	}
	return selection
}

// ParseSelection decodes the model's JSON answer. Markdown code fences are
// tolerated since the model wraps JSON in them often enough.
func ParseSelection(raw string) (Selection, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var payload selectionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return Selection{}, fmt.Errorf("decode selection: %w", err)
	}

	return Selection{
		SelectedImages:    payload.SelectedImages,
		SelectedVideos:    payload.SelectedVideos,
		ImageDescriptions: strings.Join(payload.ImageDescriptions, ", "),
		VideoDescriptions: strings.Join(payload.VideoDescriptions, ", "),
	}, nil
}

func fallbackSelection(images, videos []Candidate) Selection {
	imgs := images
	if len(imgs) > fallbackTake {
		imgs = imgs[:fallbackTake]
	}
	vids := videos
	if len(vids) > fallbackTake {
		vids = vids[:fallbackTake]
	}

	var sel Selection
	imgDescs := make([]string, 0, len(imgs))
	for _, c := range imgs {
		sel.SelectedImages = append(sel.SelectedImages, c.URL)
		imgDescs = append(imgDescs, c.Description)
	}
	vidDescs := make([]string, 0, len(vids))
	for _, c := range vids {
		sel.SelectedVideos = append(sel.SelectedVideos, c.URL)
		vidDescs = append(vidDescs, c.Description)
	}
	sel.ImageDescriptions = strings.Join(imgDescs, ", ")
	sel.VideoDescriptions = strings.Join(vidDescs, ", ")
	return sel
}

func renderCandidates(candidates []Candidate) string {
	if len(candidates) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.URL, c.Description))
	}
	return strings.Join(parts, ", ")
}

func stripCodeFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
