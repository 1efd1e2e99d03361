package ui

import (
	"time"

	"damasgochi/internal/pet"
)

// Animation holds the action animation currently playing
type Animation struct {
	Action    pet.Action
	Frame     int
	StartTime time.Time
}

// AnimationFrames contains the frames played after each action. Deliveries have no
// frames; they only flash the delivery effect line.
var AnimationFrames = map[pet.Action][]string{
	pet.ActionFeed: {
		`
   🍎
     \
      🐥
`,
		`

   🍎→🐥

`,
		`

     🐥
   *nom*
`,
		`

     😊
   *munch*
`,
	},
	pet.ActionPlay: {
		`
  🎾        🐥
`,
		`
     🎾     🐥
`,
		`
        🎾  🐥
`,
		`
     🎾     😊
              *boing*
`,
		`
  🎾        😊  ❤️
              *catch!*
`,
	},
	pet.ActionSleep: {
		`
     🐥
`,
		`
     😪
      z
`,
		`
     💤
     z
      z
`,
		`
     💤
    z
     z
      z
`,
	},
	pet.ActionClean: {
		`
  🧹       💩
`,
		`
     🧹    💩
`,
		`
       🧹✨
`,
		`
           🐥
        ✨ +50 XP ✨
`,
	},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 200 * time.Millisecond

// HasAnimation reports whether action has frames to play
func HasAnimation(action pet.Action) bool {
	return len(AnimationFrames[action]) > 0
}

// GetAnimationFrame returns the current frame for an animation
func GetAnimationFrame(anim Animation) string {
	frames := AnimationFrames[anim.Action]
	if len(frames) == 0 {
		return ""
	}
	if anim.Frame >= len(frames) {
		return frames[len(frames)-1]
	}
	return frames[anim.Frame]
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	frames := AnimationFrames[anim.Action]
	return anim.Frame >= len(frames)
}

// AnimationTotalFrames returns the number of frames for an action
func AnimationTotalFrames(action pet.Action) int {
	return len(AnimationFrames[action])
}
