package assistant

import "fmt"

const apologyText = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment, or contact our support team if the issue persists."

const defaultAckText = "Thank you for your feedback! I'll use this to improve future responses."

// Synthetic prompts sent to the backend to obtain a dynamic acknowledgement
// for each feedback kind.
var feedbackPrompts = map[string]string{
	"positive": "Thank you for the positive feedback!",
	"negative": "I didn't find your answer helpful.",
	"report":   "I want to report an issue with your suggestion.",
}

// Static acknowledgements used when the dynamic call fails.
var feedbackFallbacks = map[string]string{
	"positive": "Thank you for your positive feedback! 😊",
	"negative": "Thank you for the feedback! I'll work to improve my responses.",
	"report":   "Thank you for reporting this. We'll review the response and work to improve.",
}

func welcomeText(name, skills string) string {
	return fmt.Sprintf("Welcome back, %s! Based on your skills (%s), let me find some relevant job opportunities for you.", name, skills)
}

func welcomeFallbackText(name string) string {
	return fmt.Sprintf("Welcome back, %s! I'm having trouble accessing job recommendations right now, but I'm here to help with your career journey.", name)
}

func skillQuestion(skills, experience string) string {
	if experience == "" {
		experience = "not specified"
	}
	return fmt.Sprintf("Find job opportunities that match my skills: %s. Experience level: %s. Please show relevant positions.", skills, experience)
}
