package writing

import "github.com/gonewx/diary/pkg/config"

// LetterFadeDuration 单个字符从透明到不透明的时长（秒）
const LetterFadeDuration = 0.3

// LetterRevealStart 第 index 个字符开始显现的时间（秒）
func LetterRevealStart(index int) float64 {
	return config.LetterRevealDelay + float64(index)*config.CharRevealUnit
}

// LetterOpacity 第 index 个字符在 elapsed 秒时的不透明度 [0,1]
func LetterOpacity(index int, elapsed float64) float64 {
	t := (elapsed - LetterRevealStart(index)) / LetterFadeDuration
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	default:
		return t
	}
}

// RevealDuration 所有字符完全显现所需时间（秒）
func RevealDuration(letters int) float64 {
	if letters <= 0 {
		return 0
	}
	return LetterRevealStart(letters-1) + LetterFadeDuration
}
