package insights

import "github.com/ripplepay/ripple/internal/model"

var patternMessages = map[model.Category]string{
	model.CategoryFood:          "Most of your ripple comes from food expenses. Consider meal planning to reduce impulse purchases.",
	model.CategoryShopping:      "Your biggest ripple is from shopping. Try implementing a 24-hour waiting period for non-essential purchases.",
	model.CategoryEntertainment: "Entertainment is your main expense category. Look for free or low-cost alternatives to reduce your ripple.",
	model.CategoryImpulse:       "Impulse buying is creating significant ripples. Try the envelope method or budget tracking apps.",
	model.CategoryOther:         "Your spending is well-distributed. Focus on reducing high-stress impact purchases.",
}

// PatternMessage returns the advice shown when c is the dominant category.
// Travel, Snacking, Utilities and the None sentinel have no message.
func PatternMessage(c model.Category) (string, bool) {
	msg, ok := patternMessages[c]
	return msg, ok
}
