package ui

import (
	"testing"
	"time"

	"damasgochi/internal/pet"
)

func TestAnimationTypes(t *testing.T) {
	tests := []struct {
		name     string
		action   pet.Action
		expected int // minimum expected frames
	}{
		{"Feed animation has frames", pet.ActionFeed, 3},
		{"Play animation has frames", pet.ActionPlay, 4},
		{"Sleep animation has frames", pet.ActionSleep, 3},
		{"Clean animation has frames", pet.ActionClean, 3},
		{"Deliver only flashes", pet.ActionDeliver, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := AnimationTotalFrames(tt.action)
			if frames < tt.expected {
				t.Errorf("Expected at least %d frames for %q, got %d", tt.expected, tt.action, frames)
			}
		})
	}

	if HasAnimation(pet.ActionDeliver) {
		t.Error("Deliveries should not block input with an animation")
	}
}

func TestGetAnimationFrame(t *testing.T) {
	anim := Animation{
		Action:    pet.ActionFeed,
		Frame:     0,
		StartTime: time.Now(),
	}

	frame := GetAnimationFrame(anim)
	if frame == "" {
		t.Error("Expected non-empty frame for feed at frame 0")
	}

	// Test frame beyond total
	anim.Frame = 100
	frame = GetAnimationFrame(anim)
	if frame == "" {
		t.Error("Expected last frame for out-of-bounds frame index")
	}

	if GetAnimationFrame(Animation{}) != "" {
		t.Error("Expected no frame without an animation")
	}
}

func TestIsAnimationComplete(t *testing.T) {
	tests := []struct {
		name     string
		anim     Animation
		expected bool
	}{
		{
			name: "Animation at start is not complete",
			anim: Animation{
				Action: pet.ActionFeed,
				Frame:  0,
			},
			expected: false,
		},
		{
			name: "Animation at middle is not complete",
			anim: Animation{
				Action: pet.ActionFeed,
				Frame:  1,
			},
			expected: false,
		},
		{
			name: "Animation past end is complete",
			anim: Animation{
				Action: pet.ActionFeed,
				Frame:  AnimationTotalFrames(pet.ActionFeed),
			},
			expected: true,
		},
		{
			name: "No animation is complete",
			anim: Animation{
				Action: pet.ActionNone,
				Frame:  0,
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsAnimationComplete(tt.anim)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestAnimationFitsInFlash(t *testing.T) {
	// Animations should finish before the action flash clears
	for action := range AnimationFrames {
		total := time.Duration(AnimationTotalFrames(action)) * AnimationFrameDuration
		if total > 1500*time.Millisecond {
			t.Errorf("Animation for %q runs %v, longer than the action flash", action, total)
		}
	}
}

func TestAllAnimationsHaveContent(t *testing.T) {
	for action, frames := range AnimationFrames {
		if len(frames) == 0 {
			t.Errorf("Animation for %q has no frames", action)
			continue
		}

		for i, frame := range frames {
			if frame == "" {
				t.Errorf("Animation for %q has empty frame at index %d", action, i)
			}
		}
	}
}
