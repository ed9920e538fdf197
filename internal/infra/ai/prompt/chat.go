package prompt

import "fmt"

// chatSystemPrompt keeps link generation client-derived: the model hands
// back search phrases, never URLs.
const chatSystemPrompt = `You are a patient programming mentor in an ongoing conversation about code. Answer concisely in markdown. If the user asks for learning resources, respond with plain search-engine query phrases on "- " bulleted lines, never URLs.`

const chatWithCodePrompt = `The conversation is about this code:

%s

Answer the question with reference to that code.

%s`

func buildChat(message, code string) (system, user string) {
	system = chatSystemPrompt
	if code == "" {
		return system, message
	}
	return system, fmt.Sprintf(chatWithCodePrompt, fence(code), message)
}
